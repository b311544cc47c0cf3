//go:build gogl

package gogl

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// hiddenWindow is an invisible 1x1 window holding a GL 3.3 core context.
type hiddenWindow struct {
	win *glfw.Window
}

// openHiddenWindow must be called on the main OS thread.
func openHiddenWindow() (*hiddenWindow, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	win, err := glfw.CreateWindow(1, 1, "glemu", nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw window: %w", err)
	}
	win.MakeContextCurrent()
	return &hiddenWindow{win: win}, nil
}

func (w *hiddenWindow) destroy() {
	w.win.Destroy()
	glfw.Terminate()
}

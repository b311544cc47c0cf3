//go:build gogl

// Package gogl provides a glemu.GL20 backed by a real OpenGL 3.3 core
// context through go-gl.
//
// A Backend from NewBackend uses the host's GL context. Make the context
// current on the calling thread before Init, and keep every glemu call on
// that thread:
//
//	runtime.LockOSThread()
//	window.MakeContextCurrent()
//	b := gogl.NewBackend()
//	err := b.Init()
//
// The registered "gogl" backend is headless: Init opens a hidden glfw
// window and owns its context until Close.
//
// Build with -tags gogl; the package needs cgo and the system GL headers.
package gogl

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"

	"github.com/gogpu/glemu"
	"github.com/gogpu/glemu/backend"
)

func init() {
	backend.Register(backend.BackendGoGL, func() backend.ContextBackend {
		return NewHeadlessBackend()
	})
}

// Backend loads GL function pointers for the current context.
type Backend struct {
	headless bool
	window   *hiddenWindow
	ctx      *Context
}

// NewBackend returns a backend over the host's current GL context.
func NewBackend() *Backend { return &Backend{} }

// NewHeadlessBackend returns a backend that creates its own hidden window.
// Init and every later call must run on the main OS thread.
func NewHeadlessBackend() *Backend { return &Backend{headless: true} }

var _ backend.ContextBackend = (*Backend)(nil)

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.BackendGoGL }

// Init loads the GL entry points. Unless the backend is headless a GL
// context must be current.
func (b *Backend) Init() error {
	if b.ctx != nil {
		return nil
	}
	if b.headless {
		w, err := openHiddenWindow()
		if err != nil {
			return fmt.Errorf("gogl: %w: %w", backend.ErrBackendNotAvailable, err)
		}
		b.window = w
	}
	if err := gl.Init(); err != nil {
		b.closeWindow()
		return fmt.Errorf("gogl: %w: %w", backend.ErrBackendNotAvailable, err)
	}
	b.ctx = &Context{}
	glemu.Logger().Info("gogl: context ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	return nil
}

// Close drops the context wrapper and, for a headless backend, destroys
// the hidden window. A host context is left alone.
func (b *Backend) Close() {
	b.ctx = nil
	b.closeWindow()
}

func (b *Backend) closeWindow() {
	if b.window != nil {
		b.window.destroy()
		b.window = nil
	}
}

// GL returns the context, or nil before Init.
func (b *Backend) GL() glemu.GL20 {
	if b.ctx == nil {
		return nil
	}
	return b.ctx
}

// Context forwards GL20 calls to the current OpenGL context.
type Context struct{}

var (
	_ glemu.GL20            = (*Context)(nil)
	_ backend.ErrorReporter = (*Context)(nil)
)

// GenBuffer wraps glGenBuffers.
func (*Context) GenBuffer() glemu.Handle {
	var id uint32
	gl.GenBuffers(1, &id)
	return glemu.Handle(id)
}

// BindBuffer wraps glBindBuffer.
func (*Context) BindBuffer(target glemu.Enum, h glemu.Handle) {
	gl.BindBuffer(uint32(target), uint32(h))
}

// BufferData wraps glBufferData.
func (*Context) BufferData(target glemu.Enum, size int, data []byte, usage glemu.Enum) {
	if len(data) == 0 {
		gl.BufferData(uint32(target), size, nil, uint32(usage))
		return
	}
	gl.BufferData(uint32(target), size, gl.Ptr(data), uint32(usage))
}

// DeleteBuffer wraps glDeleteBuffers.
func (*Context) DeleteBuffer(h glemu.Handle) {
	id := uint32(h)
	gl.DeleteBuffers(1, &id)
}

// Error maps glGetError to the backend error values.
func (*Context) Error() error {
	switch code := gl.GetError(); code {
	case gl.NO_ERROR:
		return nil
	case gl.INVALID_ENUM:
		return backend.ErrInvalidEnum
	case gl.INVALID_VALUE:
		return backend.ErrInvalidValue
	case gl.INVALID_OPERATION:
		return backend.ErrInvalidOperation
	case gl.OUT_OF_MEMORY:
		return backend.ErrOutOfMemory
	default:
		return fmt.Errorf("gl: error 0x%04X", code)
	}
}

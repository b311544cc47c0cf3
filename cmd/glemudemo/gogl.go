//go:build gogl

package main

import (
	"runtime"

	_ "github.com/gogpu/glemu/backend/gogl"
)

// The headless gogl backend owns a glfw window, which must stay on the
// main thread.
func init() { runtime.LockOSThread() }

// Package backend provides pluggable GL context backends for glemu.
//
// The backend package lets the same index buffer code run on different
// graphics contexts. The in-memory backend is always available; others
// register themselves when their package is imported.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The memory backend is automatically registered on import:
//
//	import _ "github.com/gogpu/glemu/backend"
//
// The WebGPU HAL backend registers from backend/native, and the OpenGL
// backend needs cgo and the gogl build tag:
//
//	import _ "github.com/gogpu/glemu/backend/native"
//	import _ "github.com/gogpu/glemu/backend/gogl"
//
// # Backend Selection
//
// Use Default() to get the best available backend, or Get() to request
// a specific backend by name:
//
//	b := backend.Default()
//	if err := b.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	ia := glemu.NewIndexArray(b.GL(), true, 1024)
//
// # Available Backends
//
//   - "memory": in-memory GL20 context (always available)
//   - "native": emulated GL over a standalone Vulkan device (gogpu/wgpu)
//   - "gogl": OpenGL 3.3 core via go-gl, in a hidden glfw window (build
//     tag gogl, main thread only)
//
// InitDefault tries them in the order gogl, native, memory and returns the
// first one whose Init succeeds. A host that already owns a WebGPU device
// builds an emulated context with native.NewContext instead.
package backend

// Package glemu emulates GL20 index buffer objects on top of a pluggable
// graphics context.
//
// # Overview
//
// Code written against a GL20 desktop toolkit expects index buffers that
// keep a CPU copy, upload lazily on bind and survive context loss. glemu
// provides that object, [IndexArray], over any [GL20] implementation:
//
//   - backend.MemoryContext: in-memory context for tests and headless runs
//   - backend/emulated: GL20 emulated over a WebGPU-style buffer adapter,
//     with backend/native supplying the gogpu/wgpu HAL device
//   - backend/gogl: a real OpenGL 3.3 context (build tag gogl)
//
// # Quick Start
//
//	gl := backend.NewMemoryContext()
//	ia := glemu.NewIndexArray(gl, true, 6)
//	_ = ia.SetIndices([]uint16{0, 1, 2, 2, 3, 0}, 0, 6)
//	if err := ia.Bind(); err != nil {
//	    log.Fatal(err)
//	}
//	// draw ...
//	ia.Unbind()
//
// # Context Loss
//
// When the host reports a lost context, every handle is stale. Register
// arrays with a [Resources] and call [Resources.InvalidateAll] once the new
// context is current; the next Bind of each array re-uploads its content.
//
// # Threading
//
// Like the GL contexts they wrap, index arrays are not safe for concurrent
// use. The context is passed explicitly; there is no global GL state.
package glemu

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)

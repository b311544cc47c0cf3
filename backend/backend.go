package backend

import (
	"errors"

	"github.com/gogpu/glemu"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// GL errors recorded by emulated contexts. They mirror glGetError codes.
var (
	// ErrInvalidEnum is recorded for an unsupported target or usage.
	ErrInvalidEnum = errors.New("gl: invalid enum")

	// ErrInvalidValue is recorded for a negative or inconsistent size.
	ErrInvalidValue = errors.New("gl: invalid value")

	// ErrInvalidOperation is recorded for calls that are not allowed in the
	// current state, such as BufferData with nothing bound.
	ErrInvalidOperation = errors.New("gl: invalid operation")

	// ErrOutOfMemory is recorded when the device cannot allocate a store.
	ErrOutOfMemory = errors.New("gl: out of memory")
)

// ContextBackend is the interface for GL context backends.
// It abstracts the graphics context implementation, allowing index arrays
// to run against an in-memory context, an OpenGL context, or an emulated
// context over a GPU device.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type ContextBackend interface {
	// Name returns the backend identifier (e.g., "memory", "gogl").
	Name() string

	// Init initializes the backend.
	// This should be called before GL.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// GL returns the backend's context. It is nil before Init.
	GL() glemu.GL20
}

// Loser is implemented by backends that can simulate a context loss.
// After Lose every handle issued by the context is invalid.
type Loser interface {
	Lose()
}

// ErrorReporter is implemented by contexts that record GL errors.
type ErrorReporter interface {
	// Error returns the first error recorded since the last call and
	// clears it, like glGetError.
	Error() error
}

package glemu

import "fmt"

// Enum is a GL enumeration value.
type Enum uint32

// GL enumeration values used by buffer objects.
const (
	// ArrayBuffer is the vertex attribute buffer target.
	ArrayBuffer Enum = 0x8892

	// ElementArrayBuffer is the index buffer target used by indexed draws.
	ElementArrayBuffer Enum = 0x8893

	// StaticDraw hints that the buffer is written once and drawn many times.
	StaticDraw Enum = 0x88E4

	// DynamicDraw hints that the buffer is rewritten frequently.
	DynamicDraw Enum = 0x88E8
)

// String returns the GL name of e.
func (e Enum) String() string {
	switch e {
	case ArrayBuffer:
		return "ARRAY_BUFFER"
	case ElementArrayBuffer:
		return "ELEMENT_ARRAY_BUFFER"
	case StaticDraw:
		return "STATIC_DRAW"
	case DynamicDraw:
		return "DYNAMIC_DRAW"
	default:
		return fmt.Sprintf("0x%04X", uint32(e))
	}
}

// Handle is the name of a GPU buffer object.
// The zero Handle is never a valid buffer.
type Handle uint32

// NoHandle is the zero handle. Binding it clears the target.
const NoHandle Handle = 0

// Valid reports whether h names an allocated buffer.
func (h Handle) Valid() bool {
	return h != NoHandle
}

// GL20 is the subset of a GL 2.0 context used by buffer objects.
//
// Calls follow GL semantics: they never fail synchronously. Implementations
// that detect misuse record the error and keep going. GenBuffer returns
// NoHandle when no name could be allocated.
//
// A GL20 is not safe for concurrent use. All calls happen on the thread
// that owns the context.
type GL20 interface {
	// GenBuffer allocates a new buffer name.
	GenBuffer() Handle

	// BindBuffer binds h to target. Binding NoHandle clears the target.
	BindBuffer(target Enum, h Handle)

	// BufferData replaces the store of the buffer bound to target.
	// size is in bytes; data holds little-endian element bytes and is
	// copied before BufferData returns.
	BufferData(target Enum, size int, data []byte, usage Enum)

	// DeleteBuffer releases h. Deleting NoHandle is a no-op.
	DeleteBuffer(h Handle)
}

package gpucore

// BufferAdapter abstracts over different GPU backend implementations.
//
// Implementations must be thread-safe for concurrent use.
//
// Resource lifecycle:
//   - Buffers are created via CreateBuffer with a fixed size
//   - Buffers must be explicitly destroyed via DestroyBuffer
//   - IDs become invalid after destruction and must not be reused
type BufferAdapter interface {
	// MaxBufferSize returns the maximum buffer size in bytes.
	MaxBufferSize() uint64

	// CreateBuffer creates a GPU buffer.
	//
	// Parameters:
	//   - label: optional debug label
	//   - size: buffer size in bytes, a multiple of CopyBufferAlignment
	//   - usage: buffer usage flags (bitmask of BufferUsage*)
	//
	// Returns the buffer ID or an error if allocation fails.
	CreateBuffer(label string, size uint64, usage BufferUsage) (BufferID, error)

	// DestroyBuffer releases a GPU buffer. Unknown IDs are ignored.
	DestroyBuffer(id BufferID)

	// WriteBuffer writes data to a buffer.
	// The data is copied before WriteBuffer returns; the upload itself may
	// be staged. len(data) must be a multiple of CopyBufferAlignment.
	WriteBuffer(id BufferID, offset uint64, data []byte) error
}

package glemu

// IndexData is a CPU-side list of 16-bit vertex indices mirrored into a GPU
// element array buffer.
//
// Implementations are not safe for concurrent use; they share the GL
// context's thread affinity.
type IndexData interface {
	// NumIndices returns the number of indices currently stored.
	NumIndices() int

	// NumMaxIndices returns the fixed capacity.
	NumMaxIndices() int

	// SetIndices replaces the content with src[offset:offset+count].
	// Between Bind and Unbind the data is uploaded immediately.
	SetIndices(src []uint16, offset, count int) error

	// SetIndicesFrom replaces the content with the remaining elements of
	// src and advances src's position past them.
	SetIndicesFrom(src *ShortBuffer) error

	// Buffer returns the backing buffer for direct editing. Changes are
	// uploaded on the next Bind.
	Buffer() *ShortBuffer

	// Bind makes the buffer the active element array, uploading pending
	// changes first.
	Bind() error

	// Unbind clears the element array binding.
	Unbind()

	// Invalidate allocates a fresh GPU handle after a context loss.
	Invalidate()

	// Dispose releases the GPU handle.
	Dispose()
}

package gpucore

// BufferID is an opaque handle to a GPU buffer.
// Each adapter implementation maintains a mapping between IDs and actual
// backend resources. IDs are uint64 to accommodate various backend handle
// sizes.
type BufferID uint64

// InvalidID is the zero value, representing an invalid/null resource.
const InvalidID = 0

// BufferUsage is a bitmask specifying how a buffer will be used.
type BufferUsage uint32

// Buffer usage flags.
const (
	// BufferUsageMapRead indicates the buffer can be mapped for reading.
	BufferUsageMapRead BufferUsage = 1 << 0

	// BufferUsageMapWrite indicates the buffer can be mapped for writing.
	BufferUsageMapWrite BufferUsage = 1 << 1

	// BufferUsageCopySrc indicates the buffer can be used as a copy source.
	BufferUsageCopySrc BufferUsage = 1 << 2

	// BufferUsageCopyDst indicates the buffer can be used as a copy destination.
	BufferUsageCopyDst BufferUsage = 1 << 3

	// BufferUsageIndex indicates the buffer can be used as an index buffer.
	BufferUsageIndex BufferUsage = 1 << 4

	// BufferUsageVertex indicates the buffer can be used as a vertex buffer.
	BufferUsageVertex BufferUsage = 1 << 5
)

// Contains reports whether all flags in other are set in u.
func (u BufferUsage) Contains(other BufferUsage) bool {
	return u&other == other
}

// CopyBufferAlignment is the required alignment, in bytes, of buffer sizes
// and write lengths.
const CopyBufferAlignment = 4

// AlignSize rounds size up to CopyBufferAlignment.
func AlignSize(size uint64) uint64 {
	return (size + CopyBufferAlignment - 1) &^ (CopyBufferAlignment - 1)
}

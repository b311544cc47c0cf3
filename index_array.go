package glemu

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/valyala/bytebufferpool"
)

// bytesPerIndex is the size of one uint16 index in the uploaded store.
const bytesPerIndex = 2

// uploadPool supplies scratch buffers for encoding indices before upload.
var uploadPool bytebufferpool.Pool

// IndexArray keeps 16-bit indices on the CPU and mirrors them into a GPU
// element array buffer obtained from a GL20 context.
//
// Uploads are lazy: edits mark the array dirty and the next Bind uploads
// the whole content once. SetIndices between Bind and Unbind uploads
// immediately instead.
//
// After a context loss every handle is stale; call Invalidate (or
// Resources.InvalidateAll) before binding again.
type IndexArray struct {
	gl      GL20
	buffer  *ShortBuffer
	handle  Handle
	usage   Enum
	dirty   bool
	bound   bool
	label   string
	tracker *Resources
}

var _ IndexData = (*IndexArray)(nil)

// NewIndexArray creates an index array holding at most maxIndices indices
// and allocates its GPU handle from gl. isStatic selects the StaticDraw
// usage hint, otherwise DynamicDraw is used.
//
// NewIndexArray panics if maxIndices is negative.
func NewIndexArray(gl GL20, isStatic bool, maxIndices int, opts ...Option) *IndexArray {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	usage := DynamicDraw
	if isStatic {
		usage = StaticDraw
	}

	buf := NewShortBuffer(maxIndices)
	buf.Flip()

	ia := &IndexArray{
		gl:     gl,
		buffer: buf,
		handle: gl.GenBuffer(),
		usage:  usage,
		dirty:  true,
		label:  o.label,
	}
	ia.logger().Debug("glemu: index array created",
		"handle", uint32(ia.handle), "capacity", maxIndices, "usage", usage)

	if o.resources != nil {
		o.resources.Track(ia)
		ia.tracker = o.resources
	}
	return ia
}

// NewStaticIndexArray creates an index array with the StaticDraw usage hint.
func NewStaticIndexArray(gl GL20, maxIndices int, opts ...Option) *IndexArray {
	return NewIndexArray(gl, true, maxIndices, opts...)
}

// NumIndices returns the number of indices currently stored.
func (ia *IndexArray) NumIndices() int {
	return ia.buffer.Limit()
}

// NumMaxIndices returns the maximum number of indices the array can store.
func (ia *IndexArray) NumMaxIndices() int {
	return ia.buffer.Capacity()
}

// SetIndices discards the old indices and copies count indices from src
// starting at offset.
//
// It may be called between Bind and Unbind, in which case the data is
// uploaded before SetIndices returns. An invalid range or a count above
// capacity leaves the array unchanged.
func (ia *IndexArray) SetIndices(src []uint16, offset, count int) error {
	if offset < 0 || count < 0 || offset > len(src) || count > len(src)-offset {
		return fmt.Errorf("%w: offset %d, count %d, source length %d",
			ErrOutOfRange, offset, count, len(src))
	}
	return ia.replace(src[offset : offset+count])
}

// SetIndicesFrom discards the old indices and copies the remaining
// elements of src. src's position is advanced past the copied elements.
// src must not be the array's own buffer.
func (ia *IndexArray) SetIndicesFrom(src *ShortBuffer) error {
	if src == ia.buffer {
		return fmt.Errorf("%w: source is the array's own buffer", ErrOutOfRange)
	}
	if err := ia.replace(src.remainingSlice()); err != nil {
		return err
	}
	src.position = src.limit
	return nil
}

func (ia *IndexArray) replace(indices []uint16) error {
	if len(indices) > ia.buffer.Capacity() {
		return fmt.Errorf("%w: %d indices, capacity %d",
			ErrBufferOverflow, len(indices), ia.buffer.Capacity())
	}

	ia.dirty = true
	ia.buffer.Clear()
	ia.buffer.position += copy(ia.buffer.data, indices)
	ia.buffer.Flip()

	if ia.bound {
		ia.upload()
	}
	return nil
}

// Buffer returns the backing buffer. Changes made through it are uploaded
// on the next Bind; for an immediate upload use SetIndices.
//
// The array cannot tell whether the caller writes, so every call marks it
// dirty.
func (ia *IndexArray) Buffer() *ShortBuffer {
	ia.dirty = true
	return ia.buffer
}

// Bind binds the array as the element array buffer for indexed draws and
// uploads pending changes. It returns ErrNoBuffer if the array has no
// handle.
func (ia *IndexArray) Bind() error {
	if !ia.handle.Valid() {
		return ErrNoBuffer
	}

	ia.gl.BindBuffer(ElementArrayBuffer, ia.handle)
	if ia.dirty {
		ia.upload()
	}
	ia.bound = true
	return nil
}

// Unbind clears the element array binding.
func (ia *IndexArray) Unbind() {
	ia.gl.BindBuffer(ElementArrayBuffer, NoHandle)
	ia.bound = false
}

// Invalidate requests a new GPU handle so the array survives a context
// loss. The old handle is not deleted; the lost context already dropped
// it. The next Bind re-uploads the content.
func (ia *IndexArray) Invalidate() {
	ia.handle = ia.gl.GenBuffer()
	ia.dirty = true
	ia.bound = false
	ia.logger().Debug("glemu: index array invalidated", "handle", uint32(ia.handle))
}

// Dispose clears the element array binding and deletes the GPU handle.
// Bind fails with ErrNoBuffer afterwards.
func (ia *IndexArray) Dispose() {
	ia.gl.BindBuffer(ElementArrayBuffer, NoHandle)
	ia.gl.DeleteBuffer(ia.handle)
	ia.logger().Debug("glemu: index array disposed", "handle", uint32(ia.handle))
	ia.handle = NoHandle
	ia.bound = false

	if ia.tracker != nil {
		ia.tracker.Untrack(ia)
		ia.tracker = nil
	}
}

// Handle returns the current GPU handle, NoHandle once disposed.
func (ia *IndexArray) Handle() Handle { return ia.handle }

// Usage returns the usage hint passed to every upload.
func (ia *IndexArray) Usage() Enum { return ia.usage }

// Dirty reports whether the CPU content differs from the last upload.
func (ia *IndexArray) Dirty() bool { return ia.dirty }

// Bound reports whether the array is between Bind and Unbind.
func (ia *IndexArray) Bound() bool { return ia.bound }

// upload sends [0, limit) to the bound element array buffer.
func (ia *IndexArray) upload() {
	indices := ia.buffer.Slice()

	bb := uploadPool.Get()
	for _, v := range indices {
		bb.B = binary.LittleEndian.AppendUint16(bb.B, v)
	}
	ia.gl.BufferData(ElementArrayBuffer, len(bb.B), bb.B, ia.usage)
	uploadPool.Put(bb)

	ia.dirty = false
	ia.logger().Debug("glemu: index upload",
		"handle", uint32(ia.handle), "indices", len(indices), "bytes", len(indices)*bytesPerIndex)
}

func (ia *IndexArray) logger() *slog.Logger {
	l := Logger()
	if ia.label != "" {
		l = l.With("label", ia.label)
	}
	return l
}

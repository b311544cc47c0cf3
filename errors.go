package glemu

import "errors"

// Index buffer errors.
var (
	// ErrNoBuffer is returned by Bind when the buffer has no GPU handle,
	// either because allocation failed or because it was disposed.
	ErrNoBuffer = errors.New("glemu: no buffer allocated")

	// ErrBufferOverflow is returned when a write would exceed capacity.
	ErrBufferOverflow = errors.New("glemu: buffer overflow")

	// ErrBufferUnderflow is returned when a read runs past the limit.
	ErrBufferUnderflow = errors.New("glemu: buffer underflow")

	// ErrOutOfRange is returned for offsets or counts outside a slice.
	ErrOutOfRange = errors.New("glemu: index out of range")
)

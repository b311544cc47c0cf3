package native

import "errors"

// Package errors for the native backend.
var (
	// ErrNoGPU is returned when no GPU adapter is available.
	ErrNoGPU = errors.New("native: no GPU adapter available")

	// ErrNoHAL is returned when a device provider does not expose HAL types.
	ErrNoHAL = errors.New("native: provider does not expose HAL device and queue")

	// ErrInvalidBufferSize is returned for zero or unaligned buffer sizes.
	ErrInvalidBufferSize = errors.New("native: invalid buffer size")

	// ErrUnknownBuffer is returned when a buffer ID is not tracked.
	ErrUnknownBuffer = errors.New("native: unknown buffer")
)

// Package native provides a Pure Go GPU buffer backend using gogpu/wgpu.
//
// HALAdapter implements gpucore.BufferAdapter over a hal.Device and
// hal.Queue. Combined with backend/emulated it gives glemu a GL20 context
// whose buffer objects live on a WebGPU device:
//
//	ctx, adapter := native.NewContext(device, queue)
//	defer adapter.Close()
//	ia := glemu.NewIndexArray(ctx, true, 1024)
package native

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/glemu"
	"github.com/gogpu/glemu/backend/emulated"
	"github.com/gogpu/glemu/gpucore"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// HALAdapter implements gpucore.BufferAdapter using gogpu/wgpu/hal directly.
// It provides a bridge between the gpucore abstraction and the HAL layer.
//
// Thread Safety: HALAdapter is safe for concurrent use from multiple goroutines.
// All resource operations are protected by a mutex.
type HALAdapter struct {
	mu     sync.RWMutex
	device hal.Device
	queue  hal.Queue

	maxBufferSz uint64

	// ID generation
	nextID atomic.Uint64

	// Resource tracking maps gpucore IDs to hal resources
	buffers map[gpucore.BufferID]hal.Buffer
}

var _ gpucore.BufferAdapter = (*HALAdapter)(nil)

// NewHALAdapter creates a new HALAdapter wrapping the given device and queue.
// The limits parameter provides the adapter's capability limits.
// If limits is nil, default limits are used.
func NewHALAdapter(device hal.Device, queue hal.Queue, limits *gputypes.Limits) *HALAdapter {
	var lim gputypes.Limits
	if limits != nil {
		lim = *limits
	} else {
		lim = gputypes.DefaultLimits()
	}

	adapter := &HALAdapter{
		device:      device,
		queue:       queue,
		maxBufferSz: lim.MaxBufferSize,
		buffers:     make(map[gpucore.BufferID]hal.Buffer),
	}

	// Start ID generation at 1 (0 is invalid)
	adapter.nextID.Store(1)

	return adapter
}

// NewHALAdapterFromProvider creates a HALAdapter on a device shared by the
// host application. The provider must also implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewHALAdapterFromProvider(provider gpucontext.DeviceProvider) (*HALAdapter, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return NewHALAdapter(device, queue, nil), nil
}

// NewContext returns an emulated GL20 context whose buffers are allocated
// on device. Close the returned adapter to release them.
func NewContext(device hal.Device, queue hal.Queue) (*emulated.Context, *HALAdapter) {
	adapter := NewHALAdapter(device, queue, nil)
	return emulated.New(adapter), adapter
}

// newID generates a unique resource ID.
func (a *HALAdapter) newID() uint64 {
	return a.nextID.Add(1) - 1
}

// MaxBufferSize returns the maximum buffer size in bytes.
func (a *HALAdapter) MaxBufferSize() uint64 {
	return a.maxBufferSz
}

// CreateBuffer creates a GPU buffer.
func (a *HALAdapter) CreateBuffer(label string, size uint64, usage gpucore.BufferUsage) (gpucore.BufferID, error) {
	if size == 0 || size%gpucore.CopyBufferAlignment != 0 {
		return gpucore.InvalidID, fmt.Errorf("%w: %d", ErrInvalidBufferSize, size)
	}

	desc := &hal.BufferDescriptor{
		Label: label,
		Size:  size,
		Usage: convertBufferUsage(usage),
	}

	buffer, err := a.device.CreateBuffer(desc)
	if err != nil {
		return gpucore.InvalidID, fmt.Errorf("failed to create buffer: %w", err)
	}

	id := gpucore.BufferID(a.newID())

	a.mu.Lock()
	a.buffers[id] = buffer
	a.mu.Unlock()

	glemu.Logger().Debug("native: buffer created", "id", uint64(id), "label", label, "size", size)
	return id, nil
}

// DestroyBuffer releases a GPU buffer.
func (a *HALAdapter) DestroyBuffer(id gpucore.BufferID) {
	a.mu.Lock()
	buffer, ok := a.buffers[id]
	if ok {
		delete(a.buffers, id)
	}
	a.mu.Unlock()

	if ok {
		a.device.DestroyBuffer(buffer)
	}
}

// WriteBuffer writes data to a buffer through the queue.
func (a *HALAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	if len(data)%gpucore.CopyBufferAlignment != 0 {
		return fmt.Errorf("%w: write of %d bytes", ErrInvalidBufferSize, len(data))
	}

	a.mu.RLock()
	buffer, ok := a.buffers[id]
	a.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownBuffer, id)
	}
	if len(data) > 0 {
		a.queue.WriteBuffer(buffer, offset, data)
	}
	return nil
}

// Len returns the number of live buffers.
func (a *HALAdapter) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.buffers)
}

// Close destroys every buffer created by the adapter. The device and queue
// are owned by the caller and stay open.
func (a *HALAdapter) Close() {
	a.mu.Lock()
	buffers := a.buffers
	a.buffers = make(map[gpucore.BufferID]hal.Buffer)
	a.mu.Unlock()

	for _, buffer := range buffers {
		a.device.DestroyBuffer(buffer)
	}
}

// convertBufferUsage converts gpucore.BufferUsage to gputypes.BufferUsage.
func convertBufferUsage(usage gpucore.BufferUsage) gputypes.BufferUsage {
	var result gputypes.BufferUsage

	if usage&gpucore.BufferUsageMapRead != 0 {
		result |= gputypes.BufferUsageMapRead
	}
	if usage&gpucore.BufferUsageMapWrite != 0 {
		result |= gputypes.BufferUsageMapWrite
	}
	if usage&gpucore.BufferUsageCopySrc != 0 {
		result |= gputypes.BufferUsageCopySrc
	}
	if usage&gpucore.BufferUsageCopyDst != 0 {
		result |= gputypes.BufferUsageCopyDst
	}
	if usage&gpucore.BufferUsageIndex != 0 {
		result |= gputypes.BufferUsageIndex
	}
	if usage&gpucore.BufferUsageVertex != 0 {
		result |= gputypes.BufferUsageVertex
	}

	return result
}

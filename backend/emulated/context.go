// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package emulated implements glemu.GL20 over a gpucore.BufferAdapter.
//
// GL buffer objects are named by integers, can be bound to targets and are
// resized by every BufferData call. WebGPU-style devices only offer
// fixed-size buffers written through a queue. Context keeps the GL view and
// maps each name to a device buffer that is recreated whenever a larger
// store is needed.
package emulated

import (
	"fmt"
	"sync"

	"github.com/gogpu/glemu"
	"github.com/gogpu/glemu/backend"
	"github.com/gogpu/glemu/gpucore"
)

// object is the device side of one GL buffer name.
type object struct {
	id       gpucore.BufferID
	capacity uint64 // allocated device bytes, aligned
	size     int    // logical GL size in bytes
	usage    glemu.Enum
	target   glemu.Enum // first target the name was bound to
}

// Context is a GL20 context emulated over a BufferAdapter.
//
// Errors follow GL rules: the failing call has no effect and the first
// error is kept until Error is called.
//
// Methods lock an internal mutex so a Context can be shared with a
// renderer goroutine, but index arrays using it are still single-threaded.
type Context struct {
	mu       sync.Mutex
	adapter  gpucore.BufferAdapter
	nextName glemu.Handle
	objects  map[glemu.Handle]*object
	bindings map[glemu.Enum]glemu.Handle
	err      error
	losses   int
}

var (
	_ glemu.GL20            = (*Context)(nil)
	_ backend.ErrorReporter = (*Context)(nil)
	_ backend.Loser         = (*Context)(nil)
)

// New creates a context that allocates buffers from adapter.
func New(adapter gpucore.BufferAdapter) *Context {
	return &Context{
		adapter:  adapter,
		nextName: 1, // 0 is NoHandle
		objects:  make(map[glemu.Handle]*object),
		bindings: make(map[glemu.Enum]glemu.Handle),
	}
}

// GenBuffer allocates a buffer name. No device memory is used until the
// first BufferData.
func (c *Context) GenBuffer() glemu.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()

	h := c.nextName
	c.nextName++
	c.objects[h] = &object{}
	return h
}

// BindBuffer binds h to target. Binding NoHandle clears the target.
func (c *Context) BindBuffer(target glemu.Enum, h glemu.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !backend.ValidTarget(target) {
		c.record(fmt.Errorf("%w: BindBuffer target %v", backend.ErrInvalidEnum, target))
		return
	}
	if !h.Valid() {
		delete(c.bindings, target)
		return
	}
	obj, ok := c.objects[h]
	if !ok {
		c.record(fmt.Errorf("%w: BindBuffer unknown buffer %d", backend.ErrInvalidOperation, h))
		return
	}
	if obj.target == 0 {
		obj.target = target
	}
	c.bindings[target] = h
}

// BufferData replaces the store of the buffer bound to target.
//
// The device buffer is reused when it is large enough; otherwise it is
// destroyed and a larger one is created. Data is padded with zeros to the
// copy alignment.
func (c *Context) BufferData(target glemu.Enum, size int, data []byte, usage glemu.Enum) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !backend.ValidTarget(target) {
		c.record(fmt.Errorf("%w: BufferData target %v", backend.ErrInvalidEnum, target))
		return
	}
	if !backend.ValidUsage(usage) {
		c.record(fmt.Errorf("%w: BufferData usage %v", backend.ErrInvalidEnum, usage))
		return
	}
	if size < 0 || (data != nil && len(data) < size) {
		c.record(fmt.Errorf("%w: BufferData size %d, data %d bytes", backend.ErrInvalidValue, size, len(data)))
		return
	}
	h, ok := c.bindings[target]
	if !ok {
		c.record(fmt.Errorf("%w: BufferData with no buffer bound to %v", backend.ErrInvalidOperation, target))
		return
	}
	obj := c.objects[h]

	aligned := gpucore.AlignSize(uint64(size))
	if aligned > c.adapter.MaxBufferSize() {
		c.record(fmt.Errorf("%w: %d bytes exceeds device limit %d",
			backend.ErrOutOfMemory, size, c.adapter.MaxBufferSize()))
		return
	}

	if aligned > obj.capacity || obj.id == gpucore.InvalidID {
		if err := c.realloc(h, obj, aligned); err != nil {
			c.record(err)
			return
		}
	}
	obj.size = size
	obj.usage = usage

	if size == 0 {
		return
	}
	padded := make([]byte, aligned)
	copy(padded, data[:min(size, len(data))])
	if err := c.adapter.WriteBuffer(obj.id, 0, padded); err != nil {
		c.record(fmt.Errorf("%w: write buffer %d: %w", backend.ErrOutOfMemory, h, err))
		return
	}
	glemu.Logger().Debug("emulated: buffer data",
		"handle", uint32(h), "target", target, "bytes", size, "usage", usage)
}

// realloc replaces obj's device buffer with one of at least capacity bytes.
// WebGPU rejects zero-sized writes, so empty stores still get one aligned
// slot.
func (c *Context) realloc(h glemu.Handle, obj *object, capacity uint64) error {
	if capacity == 0 {
		capacity = gpucore.CopyBufferAlignment
	}
	if obj.id != gpucore.InvalidID {
		c.adapter.DestroyBuffer(obj.id)
		obj.id = gpucore.InvalidID
		obj.capacity = 0
		obj.size = 0
	}

	id, err := c.adapter.CreateBuffer(fmt.Sprintf("glemu-buffer-%d", h), capacity, deviceUsage(obj.target))
	if err != nil {
		return fmt.Errorf("%w: create buffer %d: %w", backend.ErrOutOfMemory, h, err)
	}
	obj.id = id
	obj.capacity = capacity
	return nil
}

// DeleteBuffer releases h and its device buffer. Unknown names are ignored.
func (c *Context) DeleteBuffer(h glemu.Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()

	obj, ok := c.objects[h]
	if !ok {
		return
	}
	if obj.id != gpucore.InvalidID {
		c.adapter.DestroyBuffer(obj.id)
	}
	delete(c.objects, h)
	for target, bound := range c.bindings {
		if bound == h {
			delete(c.bindings, target)
		}
	}
}

// Lose simulates a context loss. Device buffers are released and every
// name issued so far becomes invalid.
func (c *Context) Lose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.releaseAll()
	c.losses++
	glemu.Logger().Info("emulated: context lost", "losses", c.losses)
}

// Close releases all device buffers. The context stays usable; new names
// allocate new buffers.
func (c *Context) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.releaseAll()
}

func (c *Context) releaseAll() {
	for _, obj := range c.objects {
		if obj.id != gpucore.InvalidID {
			c.adapter.DestroyBuffer(obj.id)
		}
	}
	clear(c.objects)
	clear(c.bindings)
}

// Error returns the first recorded GL error and clears it.
func (c *Context) Error() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.err
	c.err = nil
	return err
}

// BufferInfo describes the device side of a buffer name.
type BufferInfo struct {
	ID       gpucore.BufferID
	Capacity uint64
	Size     int
	Usage    glemu.Enum
}

// Info returns the device state of h.
func (c *Context) Info(h glemu.Handle) (BufferInfo, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	obj, ok := c.objects[h]
	if !ok {
		return BufferInfo{}, false
	}
	return BufferInfo{ID: obj.id, Capacity: obj.capacity, Size: obj.size, Usage: obj.usage}, true
}

// Bound returns the name bound to target.
func (c *Context) Bound(target glemu.Enum) glemu.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bindings[target]
}

// record must be called with c.mu held.
func (c *Context) record(err error) {
	glemu.Logger().Warn("emulated: gl error", "err", err)
	if c.err == nil {
		c.err = err
	}
}

// deviceUsage maps a GL target to device usage flags. GL lets one name be
// bound to either target, but devices fix usage at creation, so the target
// of the first bind decides.
func deviceUsage(target glemu.Enum) gpucore.BufferUsage {
	if target == glemu.ArrayBuffer {
		return gpucore.BufferUsageVertex | gpucore.BufferUsageCopyDst
	}
	return gpucore.BufferUsageIndex | gpucore.BufferUsageCopyDst
}

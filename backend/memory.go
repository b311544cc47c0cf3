package backend

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/glemu"
)

// MemoryBackend is a CPU-only backend whose context keeps buffer stores in
// memory. It is always available and is the fallback when no driver-backed
// backend is registered.
type MemoryBackend struct {
	ctx *MemoryContext
}

// init registers the memory backend on package import.
func init() {
	Register(BackendMemory, func() ContextBackend {
		return &MemoryBackend{}
	})
}

// NewMemoryBackend creates a new memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Name returns the backend identifier.
func (b *MemoryBackend) Name() string {
	return BackendMemory
}

// Init creates a fresh context.
func (b *MemoryBackend) Init() error {
	b.ctx = NewMemoryContext()
	return nil
}

// Close drops the context.
func (b *MemoryBackend) Close() {
	b.ctx = nil
}

// GL returns the context, or nil before Init.
func (b *MemoryBackend) GL() glemu.GL20 {
	if b.ctx == nil {
		return nil
	}
	return b.ctx
}

// Lose simulates a context loss on the current context.
func (b *MemoryBackend) Lose() {
	if b.ctx != nil {
		b.ctx.Lose()
	}
}

// Stats counts calls made on a MemoryContext.
type Stats struct {
	Gens          int // GenBuffer calls that returned a name
	Binds         int // BindBuffer calls, including unbinds
	Uploads       int // successful BufferData calls
	UploadedBytes int // total bytes stored by BufferData
	Deletes       int // DeleteBuffer calls on live names
}

type memBuffer struct {
	data  []byte
	usage glemu.Enum
}

// MemoryContext is a glemu.GL20 that stores buffer objects in memory.
//
// It validates calls the way a GL driver does and records the first error
// until Error is called. Names are allocated monotonically and are never
// reused, so a handle from before Lose stays invalid.
//
// MemoryContext is not safe for concurrent use.
type MemoryContext struct {
	nextName glemu.Handle
	buffers  map[glemu.Handle]*memBuffer
	bindings map[glemu.Enum]glemu.Handle
	err      error
	stats    Stats
	losses   int
}

var (
	_ glemu.GL20    = (*MemoryContext)(nil)
	_ ErrorReporter = (*MemoryContext)(nil)
)

// NewMemoryContext returns an empty context.
func NewMemoryContext() *MemoryContext {
	return &MemoryContext{
		nextName: 1, // 0 is NoHandle
		buffers:  make(map[glemu.Handle]*memBuffer),
		bindings: make(map[glemu.Enum]glemu.Handle),
	}
}

// GenBuffer allocates a new buffer name.
func (c *MemoryContext) GenBuffer() glemu.Handle {
	h := c.nextName
	c.nextName++
	c.buffers[h] = &memBuffer{}
	c.stats.Gens++
	return h
}

// BindBuffer binds h to target.
func (c *MemoryContext) BindBuffer(target glemu.Enum, h glemu.Handle) {
	if !ValidTarget(target) {
		c.record(fmt.Errorf("%w: BindBuffer target %v", ErrInvalidEnum, target))
		return
	}
	if h.Valid() {
		if _, ok := c.buffers[h]; !ok {
			c.record(fmt.Errorf("%w: BindBuffer unknown buffer %d", ErrInvalidOperation, h))
			return
		}
	}
	c.stats.Binds++
	if h.Valid() {
		c.bindings[target] = h
	} else {
		delete(c.bindings, target)
	}
}

// BufferData replaces the store of the buffer bound to target.
func (c *MemoryContext) BufferData(target glemu.Enum, size int, data []byte, usage glemu.Enum) {
	if !ValidTarget(target) {
		c.record(fmt.Errorf("%w: BufferData target %v", ErrInvalidEnum, target))
		return
	}
	if !ValidUsage(usage) {
		c.record(fmt.Errorf("%w: BufferData usage %v", ErrInvalidEnum, usage))
		return
	}
	if size < 0 || (data != nil && len(data) < size) {
		c.record(fmt.Errorf("%w: BufferData size %d, data %d bytes", ErrInvalidValue, size, len(data)))
		return
	}
	h, ok := c.bindings[target]
	if !ok {
		c.record(fmt.Errorf("%w: BufferData with no buffer bound to %v", ErrInvalidOperation, target))
		return
	}

	store := make([]byte, size)
	copy(store, data)
	b := c.buffers[h]
	b.data = store
	b.usage = usage

	c.stats.Uploads++
	c.stats.UploadedBytes += size
}

// DeleteBuffer releases h and clears any binding that refers to it.
func (c *MemoryContext) DeleteBuffer(h glemu.Handle) {
	if _, ok := c.buffers[h]; !ok {
		return
	}
	delete(c.buffers, h)
	for target, bound := range c.bindings {
		if bound == h {
			delete(c.bindings, target)
		}
	}
	c.stats.Deletes++
}

// Lose simulates a context loss: every buffer and binding is dropped.
func (c *MemoryContext) Lose() {
	clear(c.buffers)
	clear(c.bindings)
	c.losses++
	glemu.Logger().Info("backend: memory context lost", "losses", c.losses)
}

// Losses returns how many times Lose was called.
func (c *MemoryContext) Losses() int { return c.losses }

// Error returns the first recorded GL error and clears it.
func (c *MemoryContext) Error() error {
	err := c.err
	c.err = nil
	return err
}

// Stats returns the call counters.
func (c *MemoryContext) Stats() Stats { return c.stats }

// ResetStats zeroes the call counters.
func (c *MemoryContext) ResetStats() { c.stats = Stats{} }

// IsBuffer reports whether h names a live buffer.
func (c *MemoryContext) IsBuffer(h glemu.Handle) bool {
	_, ok := c.buffers[h]
	return ok
}

// Bound returns the buffer bound to target.
func (c *MemoryContext) Bound(target glemu.Enum) glemu.Handle {
	return c.bindings[target]
}

// Contents returns a copy of h's store.
func (c *MemoryContext) Contents(h glemu.Handle) ([]byte, bool) {
	b, ok := c.buffers[h]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b.data...), true
}

// Indices decodes h's store as little-endian uint16 values.
func (c *MemoryContext) Indices(h glemu.Handle) []uint16 {
	b, ok := c.buffers[h]
	if !ok {
		return nil
	}
	out := make([]uint16, len(b.data)/2)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(b.data[2*i:])
	}
	return out
}

// Usage returns the usage hint of h's last upload, 0 if never uploaded.
func (c *MemoryContext) Usage(h glemu.Handle) glemu.Enum {
	if b, ok := c.buffers[h]; ok {
		return b.usage
	}
	return 0
}

func (c *MemoryContext) record(err error) {
	glemu.Logger().Warn("backend: gl error", "err", err)
	if c.err == nil {
		c.err = err
	}
}

// ValidTarget reports whether target is a buffer target glemu supports.
func ValidTarget(target glemu.Enum) bool {
	return target == glemu.ArrayBuffer || target == glemu.ElementArrayBuffer
}

// ValidUsage reports whether usage is a supported usage hint.
func ValidUsage(usage glemu.Enum) bool {
	return usage == glemu.StaticDraw || usage == glemu.DynamicDraw
}

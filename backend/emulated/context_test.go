// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package emulated

import (
	"encoding/binary"
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/glemu"
	"github.com/gogpu/glemu/backend"
	"github.com/gogpu/glemu/gpucore"
)

// mockAdapter is an in-memory gpucore.BufferAdapter.
type mockAdapter struct {
	next      gpucore.BufferID
	maxSize   uint64
	buffers   map[gpucore.BufferID][]byte
	usages    map[gpucore.BufferID]gpucore.BufferUsage
	created   int
	destroyed int
	writes    int
	failNext  bool
}

func newMockAdapter() *mockAdapter {
	return &mockAdapter{
		next:    1,
		maxSize: 1 << 20,
		buffers: make(map[gpucore.BufferID][]byte),
		usages:  make(map[gpucore.BufferID]gpucore.BufferUsage),
	}
}

func (m *mockAdapter) MaxBufferSize() uint64 { return m.maxSize }

func (m *mockAdapter) CreateBuffer(_ string, size uint64, usage gpucore.BufferUsage) (gpucore.BufferID, error) {
	if m.failNext {
		m.failNext = false
		return gpucore.InvalidID, errors.New("device out of memory")
	}
	if size%gpucore.CopyBufferAlignment != 0 {
		return gpucore.InvalidID, errors.New("unaligned size")
	}
	id := m.next
	m.next++
	m.buffers[id] = make([]byte, size)
	m.usages[id] = usage
	m.created++
	return id, nil
}

func (m *mockAdapter) DestroyBuffer(id gpucore.BufferID) {
	if _, ok := m.buffers[id]; ok {
		delete(m.buffers, id)
		m.destroyed++
	}
}

func (m *mockAdapter) WriteBuffer(id gpucore.BufferID, offset uint64, data []byte) error {
	buf, ok := m.buffers[id]
	if !ok {
		return errors.New("unknown buffer")
	}
	if len(data)%gpucore.CopyBufferAlignment != 0 {
		return errors.New("unaligned write")
	}
	copy(buf[offset:], data)
	m.writes++
	return nil
}

func (m *mockAdapter) indices(id gpucore.BufferID, n int) []uint16 {
	buf := m.buffers[id]
	out := make([]uint16, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint16(buf[2*i:])
	}
	return out
}

func TestContextIndexArrayUpload(t *testing.T) {
	m := newMockAdapter()
	ctx := New(m)
	ia := glemu.NewIndexArray(ctx, true, 16)

	if m.created != 0 {
		t.Fatalf("GenBuffer allocated device memory")
	}

	if err := ia.SetIndices([]uint16{0, 1, 2}, 0, 3); err != nil {
		t.Fatal(err)
	}
	if err := ia.Bind(); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Error(); err != nil {
		t.Fatalf("GL error: %v", err)
	}

	info, ok := ctx.Info(ia.Handle())
	if !ok {
		t.Fatal("no info for bound handle")
	}
	if info.Size != 6 || info.Capacity != 8 {
		t.Errorf("Info = %+v, want size 6 capacity 8", info)
	}
	if info.Usage != glemu.StaticDraw {
		t.Errorf("Usage = %v, want STATIC_DRAW", info.Usage)
	}
	if got := m.indices(info.ID, 3); !slices.Equal(got, []uint16{0, 1, 2}) {
		t.Errorf("device indices = %v", got)
	}
	if !m.usages[info.ID].Contains(gpucore.BufferUsageIndex | gpucore.BufferUsageCopyDst) {
		t.Errorf("device usage = %b, want Index|CopyDst", m.usages[info.ID])
	}
}

func TestContextReusesLargeEnoughBuffer(t *testing.T) {
	m := newMockAdapter()
	ctx := New(m)
	ia := glemu.NewIndexArray(ctx, false, 16)
	if err := ia.Bind(); err != nil {
		t.Fatal(err)
	}

	_ = ia.SetIndices([]uint16{1, 2, 3, 4, 5, 6, 7, 8}, 0, 8)
	first, _ := ctx.Info(ia.Handle())

	_ = ia.SetIndices([]uint16{9, 9}, 0, 2)
	second, _ := ctx.Info(ia.Handle())

	if first.ID != second.ID {
		t.Errorf("shrinking store reallocated: %d -> %d", first.ID, second.ID)
	}
	if second.Size != 4 {
		t.Errorf("Size = %d, want 4", second.Size)
	}

	big := make([]uint16, 16)
	_ = ia.SetIndices(big, 0, 16)
	third, _ := ctx.Info(ia.Handle())
	if third.ID == second.ID {
		t.Error("growing store did not reallocate")
	}
	if _, ok := m.buffers[second.ID]; ok {
		t.Error("old device buffer not destroyed")
	}
}

func TestContextEmptyUploadAllocatesSlot(t *testing.T) {
	m := newMockAdapter()
	ctx := New(m)
	ia := glemu.NewIndexArray(ctx, true, 4)
	if err := ia.Bind(); err != nil {
		t.Fatal(err)
	}
	info, _ := ctx.Info(ia.Handle())
	if info.ID == gpucore.InvalidID || info.Capacity != gpucore.CopyBufferAlignment {
		t.Errorf("Info = %+v, want one aligned slot", info)
	}
	if m.writes != 0 {
		t.Errorf("empty upload wrote %d times", m.writes)
	}
}

func TestContextErrors(t *testing.T) {
	tests := []struct {
		name string
		call func(c *Context, m *mockAdapter)
		want error
	}{
		{
			name: "no binding",
			call: func(c *Context, _ *mockAdapter) {
				c.BufferData(glemu.ElementArrayBuffer, 2, []byte{1, 0}, glemu.StaticDraw)
			},
			want: backend.ErrInvalidOperation,
		},
		{
			name: "unknown name",
			call: func(c *Context, _ *mockAdapter) { c.BindBuffer(glemu.ElementArrayBuffer, 42) },
			want: backend.ErrInvalidOperation,
		},
		{
			name: "bad target",
			call: func(c *Context, _ *mockAdapter) { c.BindBuffer(0x8CA9, c.GenBuffer()) },
			want: backend.ErrInvalidEnum,
		},
		{
			name: "negative size",
			call: func(c *Context, _ *mockAdapter) {
				c.BindBuffer(glemu.ArrayBuffer, c.GenBuffer())
				c.BufferData(glemu.ArrayBuffer, -1, nil, glemu.StaticDraw)
			},
			want: backend.ErrInvalidValue,
		},
		{
			name: "over device limit",
			call: func(c *Context, m *mockAdapter) {
				m.maxSize = 4
				c.BindBuffer(glemu.ArrayBuffer, c.GenBuffer())
				c.BufferData(glemu.ArrayBuffer, 8, nil, glemu.StaticDraw)
			},
			want: backend.ErrOutOfMemory,
		},
		{
			name: "device allocation failure",
			call: func(c *Context, m *mockAdapter) {
				m.failNext = true
				c.BindBuffer(glemu.ArrayBuffer, c.GenBuffer())
				c.BufferData(glemu.ArrayBuffer, 4, nil, glemu.DynamicDraw)
			},
			want: backend.ErrOutOfMemory,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newMockAdapter()
			c := New(m)
			tt.call(c, m)
			if err := c.Error(); !errors.Is(err, tt.want) {
				t.Errorf("Error() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestContextFailedGrowDropsStore(t *testing.T) {
	m := newMockAdapter()
	c := New(m)
	h := c.GenBuffer()
	c.BindBuffer(glemu.ElementArrayBuffer, h)
	c.BufferData(glemu.ElementArrayBuffer, 4, []byte{1, 0, 2, 0}, glemu.StaticDraw)

	m.failNext = true
	c.BufferData(glemu.ElementArrayBuffer, 8, make([]byte, 8), glemu.StaticDraw)
	if err := c.Error(); !errors.Is(err, backend.ErrOutOfMemory) {
		t.Fatalf("Error() = %v, want ErrOutOfMemory", err)
	}

	info, ok := c.Info(h)
	if !ok {
		t.Fatal("name dropped after failed BufferData")
	}
	if info.ID != gpucore.InvalidID || info.Capacity != 0 || info.Size != 0 {
		t.Errorf("Info = %+v, want no store", info)
	}
	if len(m.buffers) != 0 {
		t.Errorf("device buffers = %d, want 0", len(m.buffers))
	}
}

func TestContextVertexUsage(t *testing.T) {
	m := newMockAdapter()
	c := New(m)
	h := c.GenBuffer()
	c.BindBuffer(glemu.ArrayBuffer, h)
	c.BufferData(glemu.ArrayBuffer, 4, []byte{1, 2, 3, 4}, glemu.StaticDraw)

	info, _ := c.Info(h)
	if !m.usages[info.ID].Contains(gpucore.BufferUsageVertex) {
		t.Errorf("device usage = %b, want Vertex", m.usages[info.ID])
	}
}

func TestContextDeleteAndLose(t *testing.T) {
	m := newMockAdapter()
	c := New(m)
	res := glemu.NewResources()

	a := glemu.NewIndexArray(c, true, 4, glemu.WithResources(res))
	b := glemu.NewIndexArray(c, true, 4, glemu.WithResources(res))
	for _, ia := range []*glemu.IndexArray{a, b} {
		_ = ia.SetIndices([]uint16{1, 2}, 0, 2)
		if err := ia.Bind(); err != nil {
			t.Fatal(err)
		}
		ia.Unbind()
	}
	if len(m.buffers) != 2 {
		t.Fatalf("device buffers = %d, want 2", len(m.buffers))
	}

	a.Dispose()
	if len(m.buffers) != 1 {
		t.Errorf("device buffers after Dispose = %d, want 1", len(m.buffers))
	}

	c.Lose()
	if len(m.buffers) != 0 {
		t.Errorf("device buffers after Lose = %d, want 0", len(m.buffers))
	}
	if _, ok := c.Info(b.Handle()); ok {
		t.Error("name survived Lose")
	}

	if n := res.InvalidateAll(); n != 1 {
		t.Errorf("InvalidateAll = %d, want 1", n)
	}
	if err := b.Bind(); err != nil {
		t.Fatal(err)
	}
	if err := c.Error(); err != nil {
		t.Errorf("GL error after recovery: %v", err)
	}
	info, _ := c.Info(b.Handle())
	if got := m.indices(info.ID, 2); !slices.Equal(got, []uint16{1, 2}) {
		t.Errorf("indices after recovery = %v", got)
	}
	if c.Bound(glemu.ElementArrayBuffer) != b.Handle() {
		t.Error("recovered array not bound")
	}

	c.Close()
	if len(m.buffers) != 0 {
		t.Errorf("device buffers after Close = %d", len(m.buffers))
	}
}

package glemu

import (
	"errors"
	"slices"
	"testing"
)

func TestNewShortBuffer(t *testing.T) {
	b := NewShortBuffer(5)
	if b.Capacity() != 5 || b.Limit() != 5 || b.Position() != 0 {
		t.Errorf("NewShortBuffer(5): cap=%d limit=%d pos=%d", b.Capacity(), b.Limit(), b.Position())
	}
}

func TestShortBufferPutFlip(t *testing.T) {
	b := NewShortBuffer(4)
	for _, v := range []uint16{1, 2, 3} {
		if err := b.Put(v); err != nil {
			t.Fatalf("Put(%d) = %v", v, err)
		}
	}
	b.Flip()

	if b.Limit() != 3 || b.Position() != 0 {
		t.Errorf("after Flip: limit=%d pos=%d, want 3/0", b.Limit(), b.Position())
	}
	if !slices.Equal(b.Slice(), []uint16{1, 2, 3}) {
		t.Errorf("Slice = %v", b.Slice())
	}

	for i, want := range []uint16{1, 2, 3} {
		got, err := b.Get()
		if err != nil || got != want {
			t.Errorf("Get #%d = %d, %v; want %d", i, got, err, want)
		}
	}
	if _, err := b.Get(); !errors.Is(err, ErrBufferUnderflow) {
		t.Errorf("Get past limit = %v, want ErrBufferUnderflow", err)
	}
}

func TestShortBufferOverflow(t *testing.T) {
	b := NewShortBuffer(2)
	if err := b.PutSlice([]uint16{1, 2, 3}); !errors.Is(err, ErrBufferOverflow) {
		t.Errorf("PutSlice = %v, want ErrBufferOverflow", err)
	}
	if b.Position() != 0 {
		t.Errorf("failed PutSlice moved position to %d", b.Position())
	}

	_ = b.PutSlice([]uint16{1, 2})
	if err := b.Put(3); !errors.Is(err, ErrBufferOverflow) {
		t.Errorf("Put on full buffer = %v, want ErrBufferOverflow", err)
	}
}

func TestShortBufferClearKeepsData(t *testing.T) {
	b := NewShortBuffer(3)
	_ = b.PutSlice([]uint16{7, 8})
	b.Flip()
	b.Clear()

	if b.Limit() != 3 || b.Position() != 0 {
		t.Errorf("after Clear: limit=%d pos=%d", b.Limit(), b.Position())
	}
	if v, _ := b.Index(1); v != 8 {
		t.Errorf("Index(1) after Clear = %d, want 8", v)
	}
}

func TestShortBufferLimitAndPosition(t *testing.T) {
	b := NewShortBuffer(4)
	_ = b.SetPosition(3)

	if err := b.SetLimit(2); err != nil {
		t.Fatal(err)
	}
	if b.Position() != 2 {
		t.Errorf("position = %d, want clamped to 2", b.Position())
	}
	if err := b.SetLimit(5); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetLimit(5) = %v, want ErrOutOfRange", err)
	}
	if err := b.SetPosition(3); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetPosition past limit = %v, want ErrOutOfRange", err)
	}
	if b.Remaining() != 0 {
		t.Errorf("Remaining = %d, want 0", b.Remaining())
	}
}

func TestShortBufferIndexBounds(t *testing.T) {
	b := WrapShortBuffer([]uint16{1, 2, 3})
	_ = b.SetLimit(2)

	if err := b.SetIndex(1, 9); err != nil {
		t.Fatal(err)
	}
	if err := b.SetIndex(2, 9); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SetIndex at limit = %v, want ErrOutOfRange", err)
	}
	if _, err := b.Index(-1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Index(-1) = %v, want ErrOutOfRange", err)
	}
}

func TestWrapShortBufferSharesStorage(t *testing.T) {
	s := []uint16{0, 0}
	b := WrapShortBuffer(s)
	_ = b.Put(5)
	if s[0] != 5 {
		t.Errorf("backing slice = %v, want write visible", s)
	}
}

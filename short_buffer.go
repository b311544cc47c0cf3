package glemu

import "fmt"

// ShortBuffer is a fixed-capacity sequence of uint16 values with a
// position and a limit.
//
// The elements in [0, Limit) are the logical content. Put and Get work
// relative to Position and advance it. The usual write cycle is:
//
//	buf.Clear()
//	buf.PutSlice(indices)
//	buf.Flip()
//
// Invariant: 0 <= Position <= Limit <= Capacity.
type ShortBuffer struct {
	data     []uint16
	position int
	limit    int
}

// NewShortBuffer returns a buffer with the given capacity.
// Position is 0 and limit equals capacity.
func NewShortBuffer(capacity int) *ShortBuffer {
	if capacity < 0 {
		panic(fmt.Sprintf("glemu: negative buffer capacity %d", capacity))
	}
	return &ShortBuffer{
		data:  make([]uint16, capacity),
		limit: capacity,
	}
}

// WrapShortBuffer returns a buffer backed by s with limit len(s).
// Writes through the buffer are visible in s.
func WrapShortBuffer(s []uint16) *ShortBuffer {
	return &ShortBuffer{data: s, limit: len(s)}
}

// Capacity returns the fixed number of elements the buffer can hold.
func (b *ShortBuffer) Capacity() int { return len(b.data) }

// Limit returns the index of the first element that should not be read
// or written.
func (b *ShortBuffer) Limit() int { return b.limit }

// Position returns the index of the next element to read or write.
func (b *ShortBuffer) Position() int { return b.position }

// Remaining returns Limit - Position.
func (b *ShortBuffer) Remaining() int { return b.limit - b.position }

// SetLimit sets the limit. If the position is past the new limit it is
// moved back to it.
func (b *ShortBuffer) SetLimit(n int) error {
	if n < 0 || n > len(b.data) {
		return fmt.Errorf("%w: limit %d, capacity %d", ErrOutOfRange, n, len(b.data))
	}
	b.limit = n
	if b.position > n {
		b.position = n
	}
	return nil
}

// SetPosition sets the position.
func (b *ShortBuffer) SetPosition(n int) error {
	if n < 0 || n > b.limit {
		return fmt.Errorf("%w: position %d, limit %d", ErrOutOfRange, n, b.limit)
	}
	b.position = n
	return nil
}

// Clear makes the whole capacity writable: position 0, limit capacity.
// Element values are not touched.
func (b *ShortBuffer) Clear() {
	b.position = 0
	b.limit = len(b.data)
}

// Flip sets the limit to the current position and the position to 0, so
// the elements just written become the logical content.
func (b *ShortBuffer) Flip() {
	b.limit = b.position
	b.position = 0
}

// Put writes v at the position and advances it.
func (b *ShortBuffer) Put(v uint16) error {
	if b.position >= b.limit {
		return ErrBufferOverflow
	}
	b.data[b.position] = v
	b.position++
	return nil
}

// PutSlice writes all of s at the position and advances it. Nothing is
// written if s does not fit.
func (b *ShortBuffer) PutSlice(s []uint16) error {
	if len(s) > b.Remaining() {
		return fmt.Errorf("%w: %d elements, %d remaining", ErrBufferOverflow, len(s), b.Remaining())
	}
	b.position += copy(b.data[b.position:], s)
	return nil
}

// Get reads the element at the position and advances it.
func (b *ShortBuffer) Get() (uint16, error) {
	if b.position >= b.limit {
		return 0, ErrBufferUnderflow
	}
	v := b.data[b.position]
	b.position++
	return v, nil
}

// Index returns the element at i, which must be below the limit.
func (b *ShortBuffer) Index(i int) (uint16, error) {
	if i < 0 || i >= b.limit {
		return 0, fmt.Errorf("%w: index %d, limit %d", ErrOutOfRange, i, b.limit)
	}
	return b.data[i], nil
}

// SetIndex stores v at i, which must be below the limit. The position is
// not changed.
func (b *ShortBuffer) SetIndex(i int, v uint16) error {
	if i < 0 || i >= b.limit {
		return fmt.Errorf("%w: index %d, limit %d", ErrOutOfRange, i, b.limit)
	}
	b.data[i] = v
	return nil
}

// Slice returns the logical content [0, Limit) without copying.
// Writes to the returned slice modify the buffer.
func (b *ShortBuffer) Slice() []uint16 {
	return b.data[:b.limit]
}

// remainingSlice returns [Position, Limit).
func (b *ShortBuffer) remainingSlice() []uint16 {
	return b.data[b.position:b.limit]
}

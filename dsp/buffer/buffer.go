package buffer

import (
	"fmt"
	"math"
	"sync/atomic"
)

// memory is the storage shared by every handle of one allocation.
type memory struct {
	samples []float64
	refs    atomic.Int32
	alloc   Allocator
}

// Buffer is a reference-counted handle to float64 storage.
//
// The zero Buffer is empty: Len returns 0 and Data returns nil.
type Buffer struct {
	mem *memory
}

// New allocates a zero-filled buffer of length elements from the default allocator.
func New(length int) (*Buffer, error) {
	return NewWith(DefaultAllocator(), length)
}

// New2D allocates a zero-filled buffer of rows*cols elements.
func New2D(rows, cols int) (*Buffer, error) {
	if rows < 0 || cols < 0 {
		return nil, fmt.Errorf("%w: negative shape %dx%d", ErrAllocation, rows, cols)
	}
	if cols != 0 && rows > math.MaxInt/cols {
		return nil, fmt.Errorf("%w: shape %dx%d overflows", ErrAllocation, rows, cols)
	}
	return New(rows * cols)
}

// NewWith allocates a zero-filled buffer from alloc.
// A nil alloc selects the default allocator.
func NewWith(alloc Allocator, length int) (*Buffer, error) {
	if alloc == nil {
		alloc = DefaultAllocator()
	}

	samples, err := alloc.Alloc(length)
	if err != nil {
		return nil, err
	}

	m := &memory{samples: samples, alloc: alloc}
	m.refs.Store(1)

	return &Buffer{mem: m}, nil
}

// Empty returns an empty buffer handle.
func Empty() *Buffer {
	return &Buffer{}
}

// Share returns a new handle to the same memory and increments the reference count.
// Sharing an empty buffer returns another empty buffer.
func (b *Buffer) Share() *Buffer {
	if b == nil || b.mem == nil {
		return &Buffer{}
	}
	b.mem.refs.Add(1)
	return &Buffer{mem: b.mem}
}

// Release drops this handle. The memory is freed through its allocator when the
// last handle is released. Releasing a handle twice is a no-op.
func (b *Buffer) Release() {
	if b == nil || b.mem == nil {
		return
	}

	m := b.mem
	b.mem = nil

	if m.refs.Add(-1) == 0 {
		m.alloc.Free(m.samples)
		m.samples = nil
	}
}

// Data returns the underlying storage. The slice is only valid while the
// handle is held.
func (b *Buffer) Data() []float64 {
	if b == nil || b.mem == nil {
		return nil
	}
	return b.mem.samples
}

// Len returns the buffer length in float64 elements.
func (b *Buffer) Len() int {
	return len(b.Data())
}

// Refs returns the number of live handles sharing this memory.
func (b *Buffer) Refs() int {
	if b == nil || b.mem == nil {
		return 0
	}
	return int(b.mem.refs.Load())
}

// IsEmpty reports whether the handle refers to no storage.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// Same reports whether b and other alias the same allocation.
func (b *Buffer) Same(other *Buffer) bool {
	if b == nil || other == nil || b.mem == nil {
		return false
	}
	return b.mem == other.mem
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	clear(b.Data())
}

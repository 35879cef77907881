package buffer

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrAllocation is returned when storage cannot be allocated.
var ErrAllocation = errors.New("buffer: allocation failed")

const (
	// DefaultAlignment is the byte alignment of blocks handed out by the
	// default allocator. It matches a cache line and the widest SIMD loads
	// used by the FFT kernels.
	DefaultAlignment = 64

	// DefaultMaxLength caps a single allocation (2 GiB of float64).
	DefaultMaxLength = 1 << 28

	float64Size = int(unsafe.Sizeof(float64(0)))
)

// Allocator obtains and returns float64 storage.
// Free receives exactly the slices previously returned by Alloc.
type Allocator interface {
	Alloc(length int) ([]float64, error)
	Free(samples []float64)
}

// AllocatorConfig holds allocation rules shared by the allocators in this package.
type AllocatorConfig struct {
	Alignment int
	MaxLength int
}

// AllocatorOption mutates an AllocatorConfig.
type AllocatorOption func(*AllocatorConfig)

// DefaultAllocatorConfig returns the default allocation rules.
func DefaultAllocatorConfig() AllocatorConfig {
	return AllocatorConfig{
		Alignment: DefaultAlignment,
		MaxLength: DefaultMaxLength,
	}
}

// WithAlignment sets the byte alignment of allocated blocks.
// Values that are not a power of two multiple of 8 are ignored.
func WithAlignment(alignment int) AllocatorOption {
	return func(cfg *AllocatorConfig) {
		if alignment >= float64Size && alignment&(alignment-1) == 0 {
			cfg.Alignment = alignment
		}
	}
}

// WithMaxLength sets the largest allocation, in elements.
func WithMaxLength(maxLength int) AllocatorOption {
	return func(cfg *AllocatorConfig) {
		if maxLength > 0 {
			cfg.MaxLength = maxLength
		}
	}
}

// ApplyAllocatorOptions applies zero or more options to the default config.
func ApplyAllocatorOptions(opts ...AllocatorOption) AllocatorConfig {
	cfg := DefaultAllocatorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (cfg AllocatorConfig) check(length int) error {
	if length < 0 {
		return fmt.Errorf("%w: negative length %d", ErrAllocation, length)
	}
	if length > cfg.MaxLength {
		return fmt.Errorf("%w: length %d exceeds limit %d", ErrAllocation, length, cfg.MaxLength)
	}
	return nil
}

// HeapAllocator allocates aligned blocks from the Go heap and leaves reclamation
// to the garbage collector.
type HeapAllocator struct {
	cfg AllocatorConfig
}

// NewHeapAllocator returns a HeapAllocator with the given rules.
func NewHeapAllocator(opts ...AllocatorOption) *HeapAllocator {
	return &HeapAllocator{cfg: ApplyAllocatorOptions(opts...)}
}

// Alloc returns a zero-filled aligned block.
func (a *HeapAllocator) Alloc(length int) ([]float64, error) {
	if err := a.cfg.check(length); err != nil {
		return nil, err
	}
	return alignedSlice(length, a.cfg.Alignment), nil
}

// Free is a no-op.
func (a *HeapAllocator) Free([]float64) {}

// PoolAllocator recycles aligned blocks through a size-keyed Pool.
type PoolAllocator struct {
	cfg  AllocatorConfig
	pool *Pool
}

// NewPoolAllocator returns a PoolAllocator with its own Pool.
func NewPoolAllocator(opts ...AllocatorOption) *PoolAllocator {
	cfg := ApplyAllocatorOptions(opts...)
	return &PoolAllocator{cfg: cfg, pool: NewPool(cfg.Alignment)}
}

// Alloc returns a zero-filled aligned block, reusing a released one when possible.
func (a *PoolAllocator) Alloc(length int) ([]float64, error) {
	if err := a.cfg.check(length); err != nil {
		return nil, err
	}
	return a.pool.Get(length), nil
}

// Free hands samples back to the pool.
func (a *PoolAllocator) Free(samples []float64) {
	a.pool.Put(samples)
}

var defaultAllocator Allocator = NewPoolAllocator()

// DefaultAllocator returns the process-wide pooled allocator.
func DefaultAllocator() Allocator {
	return defaultAllocator
}

// alignedSlice returns a zeroed slice of length elements whose first element
// sits on an alignment-byte boundary.
func alignedSlice(length, alignment int) []float64 {
	if length == 0 {
		return []float64{}
	}
	if alignment <= float64Size {
		return make([]float64, length)
	}

	pad := alignment / float64Size
	raw := make([]float64, length+pad)

	off := 0
	if rem := int(uintptr(unsafe.Pointer(&raw[0])) % uintptr(alignment)); rem != 0 {
		off = (alignment - rem) / float64Size
	}

	return raw[off : off+length : off+length]
}

// IsAligned reports whether the first element of s sits on an alignment-byte boundary.
func IsAligned(s []float64, alignment int) bool {
	if len(s) == 0 || alignment <= 0 {
		return true
	}
	return uintptr(unsafe.Pointer(&s[0]))%uintptr(alignment) == 0
}

// Package buffer provides reference-counted float64 storage for frequency-domain
// work.
//
// A [Buffer] is a handle to memory obtained from an [Allocator]. Handles are
// duplicated with [Buffer.Share], which aliases the same memory instead of copying
// it, and dropped with [Buffer.Release]. The memory is handed back to the
// allocator's Free routine when the last handle is released, so transform plans
// and signal views can share one expensive region without tracking ownership by
// hand.
//
// The default allocator hands out 64-byte aligned blocks recycled through a
// size-keyed [Pool]. [HeapAllocator] is available when pooling is undesirable.
//
// Buffers are not synchronized. Reference counting is atomic, but concurrent
// writes through aliasing handles are a data race and need external locking.
package buffer

package buffer

import "sync"

// block boxes a slice so sync.Pool stores a pointer.
type block struct {
	samples []float64
}

// Pool recycles aligned float64 blocks keyed by length to reduce GC pressure
// when engines are built and torn down repeatedly.
type Pool struct {
	alignment int

	mu    sync.RWMutex
	pools map[int]*sync.Pool
}

// NewPool returns a Pool handing out blocks aligned to alignment bytes.
func NewPool(alignment int) *Pool {
	return &Pool{
		alignment: alignment,
		pools:     make(map[int]*sync.Pool),
	}
}

// Get returns a zeroed block of exactly length elements.
// Callers hand it back via Put when done.
func (p *Pool) Get(length int) []float64 {
	if length <= 0 {
		return []float64{}
	}

	b, ok := p.sized(length).Get().(*block)
	if !ok || b == nil || len(b.samples) != length {
		return alignedSlice(length, p.alignment)
	}

	clear(b.samples)
	return b.samples
}

// Put returns a block to the pool. The caller must not use it afterwards.
func (p *Pool) Put(samples []float64) {
	if len(samples) == 0 {
		return
	}
	p.sized(len(samples)).Put(&block{samples: samples})
}

// sized returns the pool for the given length, creating it if needed.
func (p *Pool) sized(length int) *sync.Pool {
	p.mu.RLock()
	pool, ok := p.pools[length]
	p.mu.RUnlock()

	if ok {
		return pool
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Check again in case another goroutine created it
	if pool, ok := p.pools[length]; ok {
		return pool
	}

	pool = &sync.Pool{}
	p.pools[length] = pool

	return pool
}

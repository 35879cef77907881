package fft2d

import (
	"sync"

	"github.com/cwbudde/algo-xcorr/dsp/buffer"
)

type planKey struct {
	kind  Kind
	count int
	rows  int
	cols  int
}

// PlanCache hands out shared plans keyed by kind and geometry so engines of
// identical shape pay the planning cost once.
//
// Plans obtained from the cache have no target buffer and must be run with
// ExecuteOn. Each returned handle is owned by the caller and released as usual;
// the cache keeps its own handle until Close.
type PlanCache struct {
	backend Backend

	mu    sync.RWMutex
	plans map[planKey]*Plan
}

// NewPlanCache returns an empty cache building plans on backend.
// A nil backend selects DefaultBackend.
func NewPlanCache(backend Backend) *PlanCache {
	if backend == nil {
		backend = DefaultBackend()
	}
	return &PlanCache{
		backend: backend,
		plans:   make(map[planKey]*Plan),
	}
}

// Backend returns the backend plans are built on.
func (c *PlanCache) Backend() Backend {
	return c.backend
}

// Get returns a shared handle to the plan for the given kind and geometry,
// creating it on first use.
func (c *PlanCache) Get(kind Kind, count, rows, cols int) (*Plan, error) {
	key := planKey{kind: kind, count: count, rows: rows, cols: cols}

	c.mu.RLock()
	plan, ok := c.plans[key]
	if ok {
		plan = plan.Share()
	}
	c.mu.RUnlock()

	if ok {
		return plan, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Check again in case another goroutine created it
	if plan, ok := c.plans[key]; ok {
		return plan.Share(), nil
	}

	plan, err := NewPlan(c.backend, kind, count, rows, cols, nil)
	if err != nil {
		return nil, err
	}
	c.plans[key] = plan

	return plan.Share(), nil
}

// Planner returns a Planner of the given kind backed by the cache.
// The buffer argument is ignored.
func (c *PlanCache) Planner(kind Kind) Planner {
	return func(count, rows, cols int, _ *buffer.Buffer) (*Plan, error) {
		return c.Get(kind, count, rows, cols)
	}
}

// Len returns the number of cached plans.
func (c *PlanCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.plans)
}

// Close drops the cache's handles. Plans still held by callers stay valid.
func (c *PlanCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, plan := range c.plans {
		plan.Release()
		delete(c.plans, key)
	}
}

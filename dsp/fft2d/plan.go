package fft2d

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-xcorr/dsp/buffer"
)

// Kind selects the transform direction of a Plan.
type Kind int

const (
	// ForwardRealToComplex transforms real samples into a half spectrum.
	ForwardRealToComplex Kind = iota + 1
	// BackwardComplexToReal transforms a half spectrum into real samples.
	BackwardComplexToReal
)

func (k Kind) String() string {
	switch k {
	case ForwardRealToComplex:
		return "forward-r2c"
	case BackwardComplexToReal:
		return "backward-c2r"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Planner builds a plan of some fixed kind for count signals of padded size
// rows × cols, stored back to back from the start of buf. buf may be nil when
// the plan is only ever run through ExecuteOn.
type Planner func(count, rows, cols int, buf *buffer.Buffer) (*Plan, error)

// handle is the reference-counted backend transform shared by Plan handles.
type handle struct {
	t    Transform
	refs atomic.Int32
}

// Plan is a precomputed 2D transform for a fixed padded geometry and batch count.
//
// Plans are immutable after construction; all mutable state lives in the buffer
// they run on. Handles are duplicated with Share and dropped with Release. Every
// handle of a plan built with a target buffer holds its own reference to that
// buffer, so the memory outlives any signal that shared the plan. The zero Plan
// is empty and fails to execute with ErrIllegalState.
type Plan struct {
	kind    Kind
	count   int
	rows    int
	cols    int
	backend string
	target  *buffer.Buffer
	h       *handle
}

// NewPlan creates a plan of the given kind using backend. A nil backend selects
// DefaultBackend. rows and cols are the padded geometry; cols must be even.
// A non-nil buf becomes the Execute target and the plan takes its own handle
// to it; the caller keeps theirs.
func NewPlan(backend Backend, kind Kind, count, rows, cols int, buf *buffer.Buffer) (*Plan, error) {
	if backend == nil {
		backend = DefaultBackend()
	}

	if kind != ForwardRealToComplex && kind != BackwardComplexToReal {
		return nil, fmt.Errorf("%w: unknown transform kind %v", ErrInvalidArgument, kind)
	}
	if count < 1 || rows < 1 || cols < 2 {
		return nil, fmt.Errorf("%w: geometry %d×%dx%d", ErrInvalidArgument, count, rows, cols)
	}
	if cols%2 != 0 {
		return nil, fmt.Errorf("%w: padded width %d must be even", ErrInvalidArgument, cols)
	}
	n := signalLen(rows, cols)
	if count > math.MaxInt/n {
		return nil, fmt.Errorf("%w: geometry %d×%dx%d overflows", ErrInvalidArgument, count, rows, cols)
	}
	if buf != nil && buf.Len() < count*n {
		return nil, fmt.Errorf("%w: buffer holds %d values, plan needs %d", ErrGeometryMismatch, buf.Len(), count*n)
	}

	t, err := backend.NewTransform(count, rows, cols)
	if err != nil {
		return nil, fmt.Errorf("fft2d: %s plan %d×%dx%d: %w", backend.Name(), count, rows, cols, err)
	}

	h := &handle{t: t}
	h.refs.Store(1)

	var target *buffer.Buffer
	if buf != nil {
		target = buf.Share()
	}

	return &Plan{
		kind:    kind,
		count:   count,
		rows:    rows,
		cols:    cols,
		backend: backend.Name(),
		target:  target,
		h:       h,
	}, nil
}

// ForwardR2C is the default forward Planner.
func ForwardR2C(count, rows, cols int, buf *buffer.Buffer) (*Plan, error) {
	return NewPlan(DefaultBackend(), ForwardRealToComplex, count, rows, cols, buf)
}

// BackwardC2R is the default backward Planner.
func BackwardC2R(count, rows, cols int, buf *buffer.Buffer) (*Plan, error) {
	return NewPlan(DefaultBackend(), BackwardComplexToReal, count, rows, cols, buf)
}

// PlannerFor returns a Planner producing plans of kind on backend.
func PlannerFor(backend Backend, kind Kind) Planner {
	return func(count, rows, cols int, buf *buffer.Buffer) (*Plan, error) {
		return NewPlan(backend, kind, count, rows, cols, buf)
	}
}

// Planners returns the forward and backward planners of a backend.
func Planners(backend Backend) (forward, backward Planner) {
	return PlannerFor(backend, ForwardRealToComplex), PlannerFor(backend, BackwardComplexToReal)
}

// Execute runs the plan on the buffer it was created with.
func (p *Plan) Execute() error {
	if !p.Valid() {
		return fmt.Errorf("%w: empty plan", ErrIllegalState)
	}
	data := p.target.Data()
	if data == nil {
		return fmt.Errorf("%w: plan has no target buffer", ErrIllegalState)
	}
	return p.ExecuteOn(data)
}

// ExecuteOn runs the plan in place on buf, which must hold at least Len values
// laid out with the plan's geometry.
func (p *Plan) ExecuteOn(buf []float64) error {
	if !p.Valid() {
		return fmt.Errorf("%w: empty plan", ErrIllegalState)
	}

	n := p.Len()
	if len(buf) < n {
		return fmt.Errorf("%w: buffer holds %d values, plan needs %d", ErrGeometryMismatch, len(buf), n)
	}
	data := buf[:n]

	switch p.kind {
	case ForwardRealToComplex:
		return p.h.t.Forward(data)
	case BackwardComplexToReal:
		return p.h.t.Backward(data)
	default:
		return fmt.Errorf("%w: unknown transform kind %v", ErrIllegalState, p.kind)
	}
}

// Share returns a new handle to the same transform and target buffer.
func (p *Plan) Share() *Plan {
	if !p.Valid() {
		return &Plan{}
	}
	p.h.refs.Add(1)
	cp := *p
	if p.target != nil {
		cp.target = p.target.Share()
	}
	return &cp
}

// Release drops this handle, destroying the transform when it was the last one.
// Releasing twice is a no-op.
func (p *Plan) Release() {
	if p == nil || p.h == nil {
		return
	}

	h := p.h
	p.h = nil
	p.target.Release()
	p.target = nil

	if h.refs.Add(-1) == 0 {
		h.t.Release()
	}
}

// Valid reports whether the plan holds a live transform.
func (p *Plan) Valid() bool {
	return p != nil && p.h != nil
}

// Kind returns the transform direction.
func (p *Plan) Kind() Kind { return p.kind }

// Count returns the number of signals transformed per execution.
func (p *Plan) Count() int { return p.count }

// Rows returns the padded row count.
func (p *Plan) Rows() int { return p.rows }

// Cols returns the padded column count.
func (p *Plan) Cols() int { return p.cols }

// Size returns the padded geometry of one signal.
func (p *Plan) Size() Size { return Size{Rows: p.rows, Cols: p.cols} }

// Target returns the plan's handle to its Execute buffer, or nil.
func (p *Plan) Target() *buffer.Buffer { return p.target }

// Backend returns the name of the backend that built the plan.
func (p *Plan) Backend() string { return p.backend }

// Len returns the number of float64 values one execution reads and writes.
func (p *Plan) Len() int {
	return p.count * signalLen(p.rows, p.cols)
}

// Refs returns the number of live handles to the transform.
func (p *Plan) Refs() int {
	if !p.Valid() {
		return 0
	}
	return int(p.h.refs.Load())
}

// matches reports whether the plan can drive count signals of padded size.
func (p *Plan) matches(padded Size, count int) error {
	if !p.Valid() {
		return fmt.Errorf("%w: empty plan", ErrIllegalState)
	}
	if p.rows != padded.Rows || p.cols != padded.Cols || p.count != count {
		return fmt.Errorf("%w: plan %d×%dx%d, signal %d×%v",
			ErrGeometryMismatch, p.count, p.rows, p.cols, count, padded)
	}
	return nil
}

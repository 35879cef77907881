package fft2d

import (
	"fmt"

	"github.com/cwbudde/algo-xcorr/dsp/buffer"
)

// Signals is a batch of equally sized signals stored back to back in one
// buffer and transformed together by one batched plan.
type Signals struct {
	buf   *buffer.Buffer
	plan  *Plan
	views []*Signal
}

// NewSignals allocates count zeroed signals of the given logical size and plans
// a batched transform over them. A nil planner selects ForwardR2C.
func NewSignals(count int, size Size, planner Planner) (*Signals, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: signal count %d", ErrInvalidArgument, count)
	}
	if !size.Valid() {
		return nil, fmt.Errorf("%w: signal size %v", ErrInvalidArgument, size)
	}
	if planner == nil {
		planner = ForwardR2C
	}

	padded := Padded(size)
	n := signalLen(padded.Rows, padded.Cols)

	buf, err := buffer.New(count * n)
	if err != nil {
		return nil, err
	}

	plan, err := planner(count, padded.Rows, padded.Cols, buf)
	if err != nil {
		buf.Release()
		return nil, err
	}
	if err := plan.matches(padded, count); err != nil {
		plan.Release()
		buf.Release()
		return nil, err
	}

	return newSignals(buf, plan, size)
}

// NewSignalsFromPlan allocates a batch sized by an existing plan: Count
// signals whose logical size equals the plan's padded size. The batch holds its
// own handle to plan.
func NewSignalsFromPlan(plan *Plan) (*Signals, error) {
	if !plan.Valid() {
		return nil, fmt.Errorf("%w: empty plan", ErrIllegalState)
	}
	if Padded(plan.Size()) != plan.Size() {
		return nil, fmt.Errorf("%w: plan geometry %v is not a padded size", ErrGeometryMismatch, plan.Size())
	}

	buf, err := buffer.New(plan.Len())
	if err != nil {
		return nil, err
	}

	return newSignals(buf, plan.Share(), plan.Size())
}

// newSignals takes ownership of buf and plan.
func newSignals(buf *buffer.Buffer, plan *Plan, size Size) (*Signals, error) {
	s := &Signals{
		buf:   buf,
		plan:  plan,
		views: make([]*Signal, 0, plan.Count()),
	}

	n := signalLen(plan.Rows(), plan.Cols())
	for i := range plan.Count() {
		view, err := NewView(size, buf, i*n, nil)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.views = append(s.views, view)
	}

	return s, nil
}

// At returns the i-th view. Views carry no plan of their own.
func (s *Signals) At(i int) (*Signal, error) {
	if i < 0 || i >= len(s.views) {
		return nil, fmt.Errorf("%w: signal %d of %d", ErrOutOfRange, i, len(s.views))
	}
	return s.views[i], nil
}

// Len returns the number of signals in the batch.
func (s *Signals) Len() int {
	return len(s.views)
}

// Transform executes the batched plan over all signals and returns s for
// chaining.
func (s *Signals) Transform() (*Signals, error) {
	data := s.buf.Data()
	if data == nil {
		return s, fmt.Errorf("%w: signals are closed", ErrIllegalState)
	}
	if err := s.plan.ExecuteOn(data); err != nil {
		return s, err
	}
	return s, nil
}

// Plan returns the batched plan.
func (s *Signals) Plan() *Plan { return s.plan }

// Buffer returns the shared buffer handle.
func (s *Signals) Buffer() *buffer.Buffer { return s.buf }

// Close releases every view, the plan and the buffer.
func (s *Signals) Close() {
	for _, v := range s.views {
		v.Close()
	}
	s.views = nil
	s.plan.Release()
	s.plan = nil
	s.buf.Release()
}

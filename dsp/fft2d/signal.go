package fft2d

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xcorr/dsp/buffer"
	"github.com/cwbudde/algo-xcorr/dsp/core"
)

// Signal is a view of one padded 2D signal inside a shared buffer.
//
// The logical size is the caller's data extent; the padded size is the
// transform geometry. Results are read through ToMat, which returns only the
// logical region.
type Signal struct {
	buf    *buffer.Buffer
	offset int
	size   Size
	padded Size
	plan   *Plan
}

// NewSignal allocates a zeroed signal for data of the given size and plans its
// transform with planner. A nil planner selects ForwardR2C.
func NewSignal(size Size, planner Planner) (*Signal, error) {
	if planner == nil {
		planner = ForwardR2C
	}

	s, err := newOwnedSignal(size)
	if err != nil {
		return nil, err
	}

	plan, err := planner(1, s.padded.Rows, s.padded.Cols, s.buf)
	if err != nil {
		s.Close()
		return nil, err
	}
	if err := plan.matches(s.padded, 1); err != nil {
		plan.Release()
		s.Close()
		return nil, err
	}
	s.plan = plan

	return s, nil
}

// NewSignalWithPlan allocates a zeroed signal that shares plan. The plan must
// have been built for the padded size of size and a batch count of one.
func NewSignalWithPlan(size Size, plan *Plan) (*Signal, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("%w: signal size %v", ErrInvalidArgument, size)
	}
	if err := plan.matches(Padded(size), 1); err != nil {
		return nil, err
	}

	s, err := newOwnedSignal(size)
	if err != nil {
		return nil, err
	}
	s.plan = plan.Share()

	return s, nil
}

// NewSignalFrom creates a signal sized to m and loads m into it.
func NewSignalFrom(m mat.Matrix, planner Planner) (*Signal, error) {
	r, c := m.Dims()

	s, err := NewSignal(Size{Rows: r, Cols: c}, planner)
	if err != nil {
		return nil, err
	}
	if err := s.Set(m); err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// NewSignalFromWithPlan creates a signal sized to m that shares plan, and loads m.
func NewSignalFromWithPlan(m mat.Matrix, plan *Plan) (*Signal, error) {
	r, c := m.Dims()

	s, err := NewSignalWithPlan(Size{Rows: r, Cols: c}, plan)
	if err != nil {
		return nil, err
	}
	if err := s.Set(m); err != nil {
		s.Close()
		return nil, err
	}

	return s, nil
}

// NewView carves a zeroed signal out of buf starting at offset (in float64
// values). The view holds its own handle to buf. plan may be nil, in which case
// the view is transformed through a batched plan rather than Transform.
func NewView(size Size, buf *buffer.Buffer, offset int, plan *Plan) (*Signal, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("%w: signal size %v", ErrInvalidArgument, size)
	}

	padded := Padded(size)
	n := signalLen(padded.Rows, padded.Cols)
	if offset < 0 || buf.Len() < offset || buf.Len()-offset < n {
		return nil, fmt.Errorf("%w: view [%d, %d) outside buffer of %d values",
			ErrGeometryMismatch, offset, offset+n, buf.Len())
	}
	if plan != nil {
		if err := plan.matches(padded, 1); err != nil {
			return nil, err
		}
		plan = plan.Share()
	}

	s := &Signal{
		buf:    buf.Share(),
		offset: offset,
		size:   size,
		padded: padded,
		plan:   plan,
	}
	s.Fill(0)

	return s, nil
}

func newOwnedSignal(size Size) (*Signal, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("%w: signal size %v", ErrInvalidArgument, size)
	}

	padded := Padded(size)
	buf, err := buffer.New(signalLen(padded.Rows, padded.Cols))
	if err != nil {
		return nil, err
	}

	return &Signal{buf: buf, size: size, padded: padded}, nil
}

// region returns the float64 values backing this signal, or nil once closed.
func (s *Signal) region() []float64 {
	data := s.buf.Data()
	if data == nil {
		return nil
	}
	n := signalLen(s.padded.Rows, s.padded.Cols)
	return data[s.offset : s.offset+n : s.offset+n]
}

// Closed reports whether the signal has released its storage.
func (s *Signal) Closed() bool {
	return s.region() == nil
}

// Set copies m into the top-left corner of the real domain and zero-fills the
// rest. m may be larger than the logical size but not than the padded size.
func (s *Signal) Set(m mat.Matrix) error {
	r, c := m.Dims()
	if r > s.padded.Rows || c > s.padded.Cols {
		return fmt.Errorf("%w: %dx%d data does not fit padded signal %v",
			ErrInvalidArgument, r, c, s.padded)
	}

	reg := s.region()
	if reg == nil {
		return fmt.Errorf("%w: signal is closed", ErrIllegalState)
	}

	stride := Stride(s.padded.Cols)
	raw, isRaw := m.(mat.RawMatrixer)

	for i := range r {
		row := reg[i*stride : (i+1)*stride]
		if isRaw {
			rm := raw.RawMatrix()
			core.CopyInto(row[:c], rm.Data[i*rm.Stride:i*rm.Stride+c])
		} else {
			for j := range c {
				row[j] = m.At(i, j)
			}
		}
		core.Zero(row[c:])
	}
	core.Zero(reg[r*stride:])

	return nil
}

// Fill sets every real-domain sample of the padded region to value.
func (s *Signal) Fill(value float64) {
	reg := s.region()
	stride := Stride(s.padded.Cols)

	for i := 0; i+stride <= len(reg); i += stride {
		core.Fill(reg[i:i+s.padded.Cols], value)
		core.Zero(reg[i+s.padded.Cols : i+stride])
	}
}

// Transform executes the bound plan in place and returns s for chaining.
func (s *Signal) Transform() (*Signal, error) {
	if s.plan == nil {
		return s, fmt.Errorf("%w: signal has no plan", ErrIllegalState)
	}

	reg := s.region()
	if reg == nil {
		return s, fmt.Errorf("%w: signal is closed", ErrIllegalState)
	}

	if err := s.plan.ExecuteOn(reg); err != nil {
		return s, err
	}
	return s, nil
}

// SetPlan rebinds the signal to plan, releasing the previous one.
func (s *Signal) SetPlan(plan *Plan) error {
	if err := plan.matches(s.padded, 1); err != nil {
		return err
	}

	old := s.plan
	s.plan = plan.Share()
	old.Release()

	return nil
}

// ToMat returns the logical region of the real domain. Without copy the matrix
// aliases the signal's storage and is invalidated by Set, Transform or Close.
// ToMat returns nil once the signal is closed.
func (s *Signal) ToMat(copy bool) *mat.Dense {
	reg := s.region()
	if reg == nil {
		return nil
	}

	full := mat.NewDense(s.padded.Rows, Stride(s.padded.Cols), reg)
	view := full.Slice(0, s.size.Rows, 0, s.size.Cols).(*mat.Dense)
	if !copy {
		return view
	}

	return mat.DenseCopyOf(view)
}

// Size returns the logical size.
func (s *Signal) Size() Size { return s.size }

// Padded returns the padded transform geometry.
func (s *Signal) Padded() Size { return s.padded }

// Offset returns the position of the signal in its buffer, in float64 values.
func (s *Signal) Offset() int { return s.offset }

// Plan returns the bound plan, or nil for a bare view.
func (s *Signal) Plan() *Plan { return s.plan }

// Buffer returns the signal's buffer handle.
func (s *Signal) Buffer() *buffer.Buffer { return s.buf }

// Close releases the signal's buffer and plan handles.
func (s *Signal) Close() {
	s.buf.Release()
	s.plan.Release()
	s.plan = nil
}

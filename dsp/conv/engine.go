package conv

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xcorr/dsp/fft2d"
)

// engine holds the buffers and plans shared by Correlator and Convolver.
type engine struct {
	size      fft2d.Size
	conjugate float64

	inputs *fft2d.Signals
	output *fft2d.Signal
}

func newEngine(size fft2d.Size, conjugate float64, opts []Option) (*engine, error) {
	if !size.Valid() {
		return nil, fmt.Errorf("%w: engine size %v", fft2d.ErrInvalidArgument, size)
	}

	forward, backward := ApplyOptions(opts...).Planners()

	inputs, err := fft2d.NewSignals(2, size, forward)
	if err != nil {
		return nil, fmt.Errorf("conv: input signals: %w", err)
	}

	output, err := fft2d.NewSignal(size, backward)
	if err != nil {
		inputs.Close()
		return nil, fmt.Errorf("conv: output signal: %w", err)
	}

	return &engine{
		size:      size,
		conjugate: conjugate,
		inputs:    inputs,
		output:    output,
	}, nil
}

// Size returns the largest logical input size the engine accepts.
func (e *engine) Size() fft2d.Size { return e.size }

// Padded returns the transform geometry.
func (e *engine) Padded() fft2d.Size { return e.output.Padded() }

// Inputs returns the two forward signals. Callers may load them directly and
// then call Run.
func (e *engine) Inputs() *fft2d.Signals { return e.inputs }

// Run transforms both inputs, multiplies their spectra into the output signal
// and transforms it back. The returned signal is owned by the engine and is
// overwritten by the next call.
func (e *engine) Run() (*fft2d.Signal, error) {
	a, err := e.inputs.At(0)
	if err != nil {
		return nil, err
	}
	b, err := e.inputs.At(1)
	if err != nil {
		return nil, err
	}

	if _, err := e.inputs.Transform(); err != nil {
		return nil, err
	}

	// b·conj(a) yields Σ a(x)·b(x+t); without conjugation the order is moot.
	if err := e.output.Complex().Mul(b, a, e.conjugate, 1); err != nil {
		return nil, err
	}

	return e.output.Transform()
}

// load checks the operand sizes, then copies a and b into the inputs and runs.
func (e *engine) load(a, b mat.Matrix) (*fft2d.Signal, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	sa := fft2d.Size{Rows: ar, Cols: ac}
	sb := fft2d.Size{Rows: br, Cols: bc}

	if !sa.Fits(sb) {
		return nil, fmt.Errorf("%w: kernel %v larger than input %v", fft2d.ErrInvalidArgument, sa, sb)
	}
	if !sb.Fits(e.size) {
		return nil, fmt.Errorf("%w: input %v larger than engine %v", fft2d.ErrInvalidArgument, sb, e.size)
	}

	x, err := e.inputs.At(0)
	if err != nil {
		return nil, err
	}
	y, err := e.inputs.At(1)
	if err != nil {
		return nil, err
	}

	if err := x.Set(a); err != nil {
		return nil, err
	}
	if err := y.Set(b); err != nil {
		return nil, err
	}

	return e.Run()
}

// Close releases the engine's signals and plans.
func (e *engine) Close() {
	e.inputs.Close()
	e.output.Close()
}

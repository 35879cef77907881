package conv

import (
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xcorr/dsp/fft2d"
)

// Convolver computes circular 2D convolutions of a fixed maximum size.
type Convolver struct {
	*engine
}

// NewConvolver creates a convolver for inputs up to size.
func NewConvolver(size fft2d.Size, opts ...Option) (*Convolver, error) {
	e, err := newEngine(size, fft2d.NoConjugate, opts)
	if err != nil {
		return nil, err
	}
	return &Convolver{engine: e}, nil
}

// Convolve returns out[t] = Σ_x a(x)·b(t−x), indices modulo the padded size.
// a must fit in b and b must fit in the convolver size.
func (c *Convolver) Convolve(a, b mat.Matrix) (*fft2d.Signal, error) {
	return c.load(a, b)
}

package conv

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xcorr/dsp/fft2d"
)

// Correlator computes circular 2D cross-correlations of a fixed maximum size.
type Correlator struct {
	*engine
}

// NewCorrelator creates a correlator for inputs up to size.
func NewCorrelator(size fft2d.Size, opts ...Option) (*Correlator, error) {
	e, err := newEngine(size, fft2d.Conjugate, opts)
	if err != nil {
		return nil, err
	}
	return &Correlator{engine: e}, nil
}

// Correlate returns the circular cross-correlation of kernel a over b.
// a must fit in b and b must fit in the correlator size.
func (c *Correlator) Correlate(a, b mat.Matrix) (*fft2d.Signal, error) {
	return c.load(a, b)
}

// CorrelateValid correlates a over b and returns the offsets at which a lies
// fully inside b: (rows_b − rows_a + 1) × (cols_b − cols_a + 1) values.
func (c *Correlator) CorrelateValid(a, b mat.Matrix) (*mat.Dense, error) {
	out, err := c.Correlate(a, b)
	if err != nil {
		return nil, err
	}

	ar, ac := a.Dims()
	br, bc := b.Dims()

	return ValidRegion(out.ToMat(false), br-ar+1, bc-ac+1), nil
}

// ValidRegion copies the top-left rows × cols block of m.
func ValidRegion(m *mat.Dense, rows, cols int) *mat.Dense {
	return mat.DenseCopyOf(m.Slice(0, rows, 0, cols))
}

// FindPeak returns the position and value of the largest element of m.
// Ties resolve to the first element in row-major order; NaN is never a peak.
// An all-NaN matrix yields (-1, -1, -Inf).
func FindPeak(m mat.Matrix) (row, col int, value float64) {
	row, col, value = -1, -1, math.Inf(-1)

	r, cols := m.Dims()
	for i := range r {
		for j := range cols {
			if v := m.At(i, j); v > value {
				row, col, value = i, j, v
			}
		}
	}

	return row, col, value
}

// String describes the correlator geometry.
func (c *Correlator) String() string {
	return fmt.Sprintf("Correlator(%v padded %v)", c.size, c.Padded())
}

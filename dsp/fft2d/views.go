package fft2d

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"
)

// Conjugation signs for ComplexView.Mul.
const (
	// Conjugate multiplies by the complex conjugate of the second operand.
	Conjugate = -1.0
	// NoConjugate multiplies the operands as they are.
	NoConjugate = 1.0
)

// RealView reads and writes a signal's storage as padded real samples.
// Row, At and Set panic with ErrIllegalState once the signal is closed.
type RealView struct {
	s *Signal
}

// Real returns the real-domain view of s.
func (s *Signal) Real() RealView {
	return RealView{s: s}
}

// Rows returns the padded row count.
func (v RealView) Rows() int { return v.s.padded.Rows }

// Cols returns the padded column count.
func (v RealView) Cols() int { return v.s.padded.Cols }

// Stride returns the distance between rows in float64 values.
func (v RealView) Stride() int { return Stride(v.s.padded.Cols) }

// Row returns the samples of row i, aliasing storage.
func (v RealView) Row(i int) []float64 {
	stride := v.Stride()
	return v.s.open()[i*stride : i*stride+v.s.padded.Cols]
}

// At returns the sample at (i, j).
func (v RealView) At(i, j int) float64 {
	return v.s.open()[i*v.Stride()+j]
}

// Set stores x at (i, j).
func (v RealView) Set(i, j int, x float64) {
	v.s.open()[i*v.Stride()+j] = x
}

// Mul stores the element-wise product of a and b, restricted to the logical
// extent of the receiving signal; padding is left untouched. a, b and the
// receiver may be the same signal.
func (v RealView) Mul(a, b *Signal) error {
	if err := sameGeometry(v.s, a, b); err != nil {
		return err
	}

	ra, rb := a.Real(), b.Real()
	cols := v.s.size.Cols
	for i := range v.s.size.Rows {
		vecmath.MulBlock(v.Row(i)[:cols], ra.Row(i)[:cols], rb.Row(i)[:cols])
	}

	return nil
}

// ComplexView reads and writes a signal's storage as interleaved complex bins.
// At and Set panic with ErrIllegalState once the signal is closed.
type ComplexView struct {
	s *Signal
}

// Complex returns the complex-domain view of s.
func (s *Signal) Complex() ComplexView {
	return ComplexView{s: s}
}

// Rows returns the number of spectrum rows.
func (v ComplexView) Rows() int { return v.s.padded.Rows }

// Cols returns the number of complex bins per row.
func (v ComplexView) Cols() int { return SpectrumCols(v.s.padded.Cols) }

// At returns bin (i, k).
func (v ComplexView) At(i, k int) complex128 {
	p := i*Stride(v.s.padded.Cols) + 2*k
	reg := v.s.open()
	return complex(reg[p], reg[p+1])
}

// Set stores c at bin (i, k).
func (v ComplexView) Set(i, k int, c complex128) {
	p := i*Stride(v.s.padded.Cols) + 2*k
	reg := v.s.open()
	reg[p] = real(c)
	reg[p+1] = imag(c)
}

// Mul stores scale · a · b' over the full padded spectrum, where b' is b for
// conjugate = NoConjugate and conj(b) for conjugate = Conjugate.
func (v ComplexView) Mul(a, b *Signal, conjugate, scale float64) error {
	if err := sameGeometry(v.s, a, b); err != nil {
		return err
	}

	dst, pa, pb := v.s.region(), a.region(), b.region()
	for p := 0; p < len(dst); p += 2 {
		ar, ai := pa[p], pa[p+1]
		br, bi := pb[p], pb[p+1]
		dst[p] = (ar*br - conjugate*ai*bi) * scale
		dst[p+1] = (conjugate*ar*bi + ai*br) * scale
	}

	return nil
}

// ToMat copies the spectrum into a two-channel matrix of Rows() ×
// 2·Cols() values, each bin stored as (re, im).
func (v ComplexView) ToMat() *mat.Dense {
	reg := v.s.region()
	if reg == nil {
		return nil
	}
	return mat.DenseCopyOf(mat.NewDense(v.s.padded.Rows, Stride(v.s.padded.Cols), reg))
}

// open returns the signal's storage for element access.
func (s *Signal) open() []float64 {
	reg := s.region()
	if reg == nil {
		panic(fmt.Errorf("%w: signal is closed", ErrIllegalState))
	}
	return reg
}

// sameGeometry checks that every signal is open and shares dst's padded size.
func sameGeometry(dst *Signal, others ...*Signal) error {
	for _, s := range append([]*Signal{dst}, others...) {
		if s.region() == nil {
			return fmt.Errorf("%w: signal is closed", ErrIllegalState)
		}
		if s.padded != dst.padded {
			return fmt.Errorf("%w: padded sizes %v and %v", ErrGeometryMismatch, dst.padded, s.padded)
		}
	}
	return nil
}

package spectrum

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xcorr/dsp/fft2d"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

// rowKernel computes one output row from split real and imaginary parts.
type rowKernel func(dst, re, im []float64)

// mapRows applies kernel row by row over the complex view of sig.
func mapRows(sig *fft2d.Signal, kernel rowKernel) *mat.Dense {
	if sig.Closed() {
		return nil
	}

	view := sig.Complex()
	rows, cols := view.Rows(), view.Cols()

	out := mat.NewDense(rows, cols, nil)
	re, im, buf := getScratch(cols)
	defer putScratch(buf)

	for i := range rows {
		for k := range cols {
			c := view.At(i, k)
			re[k] = real(c)
			im[k] = imag(c)
		}
		kernel(out.RawRowView(i), re, im)
	}

	return out
}

// Magnitude returns |X[i, k]| for every bin of a transformed signal, or nil
// once the signal is closed. The same holds for every spectrum image below.
//
// Rows are computed with SIMD kernels from algo-vecmath when available.
// Scratch buffers are pooled internally, so in steady state this allocates
// only the output matrix.
func Magnitude(sig *fft2d.Signal) *mat.Dense {
	return mapRows(sig, vecmath.Magnitude)
}

// Power returns |X[i, k]|² for every bin of a transformed signal.
func Power(sig *fft2d.Signal) *mat.Dense {
	return mapRows(sig, vecmath.Power)
}

// LogMagnitude returns log(1 + |X[i, k]|), which compresses the dynamic range
// of a spectrum for display.
func LogMagnitude(sig *fft2d.Signal) *mat.Dense {
	out := Magnitude(sig)
	if out == nil {
		return nil
	}
	out.Apply(func(_, _ int, v float64) float64 { return math.Log1p(v) }, out)
	return out
}

// Phase returns arg(X[i, k]) in radians for every bin of a transformed signal.
func Phase(sig *fft2d.Signal) *mat.Dense {
	if sig.Closed() {
		return nil
	}

	view := sig.Complex()
	out := mat.NewDense(view.Rows(), view.Cols(), nil)
	out.Apply(func(i, k int, _ float64) float64 { return cmplx.Phase(view.At(i, k)) }, out)
	return out
}

// Normalize returns m shifted to zero mean and scaled so its largest absolute
// value is 1. A constant matrix becomes all zeros.
func Normalize(m mat.Matrix) *mat.Dense {
	out := mat.DenseCopyOf(m)
	r, c := out.Dims()

	mean := mat.Sum(out) / float64(r*c)
	peak := 0.0
	out.Apply(func(_, _ int, v float64) float64 {
		v -= mean
		peak = math.Max(peak, math.Abs(v))
		return v
	}, out)

	if peak != 0 {
		out.Scale(1/peak, out)
	}

	return out
}

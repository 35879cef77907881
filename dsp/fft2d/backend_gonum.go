package fft2d

import (
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

type gonumBackend struct{}

// Gonum returns the backend built on gonum's dsp/fourier: real FFTs over rows
// and complex FFTs over the spectrum columns.
func Gonum() Backend {
	return gonumBackend{}
}

func (gonumBackend) Name() string { return "gonum" }

func (gonumBackend) NewTransform(count, rows, cols int) (Transform, error) {
	t := &gonumTransform{
		count: count,
		rows:  rows,
		cols:  cols,
		scale: 1 / float64(rows*cols),
	}

	// fourier.FFT and CmplxFFT keep internal work space, so each scratch owns
	// its own pair.
	t.scratch.New = func() any {
		sc := &gonumScratch{
			row:   fourier.NewFFT(cols),
			seq:   make([]float64, cols),
			coeff: make([]complex128, SpectrumCols(cols)),
		}
		if rows > 1 {
			sc.col = fourier.NewCmplxFFT(rows)
			sc.colIn = make([]complex128, rows)
			sc.colOut = make([]complex128, rows)
		}
		return sc
	}

	return t, nil
}

type gonumScratch struct {
	row   *fourier.FFT
	col   *fourier.CmplxFFT
	seq   []float64
	coeff []complex128

	colIn, colOut []complex128
}

type gonumTransform struct {
	count, rows, cols int
	scale             float64

	scratch sync.Pool
}

func (t *gonumTransform) Forward(data []float64) error {
	sc := t.scratch.Get().(*gonumScratch)
	defer t.scratch.Put(sc)

	return forEachSignal(data, t.count, t.rows, t.cols, func(sig []float64) error {
		stride := Stride(t.cols)

		for i := range t.rows {
			row := sig[i*stride : (i+1)*stride]
			copy(sc.seq, row[:t.cols])
			sc.row.Coefficients(sc.coeff, sc.seq)
			for k, c := range sc.coeff {
				row[2*k] = real(c)
				row[2*k+1] = imag(c)
			}
		}

		if sc.col == nil {
			return nil
		}

		for k := range SpectrumCols(t.cols) {
			gatherColumn(sc.colIn, sig, stride, k)
			sc.col.Coefficients(sc.colOut, sc.colIn)
			scatterColumn(sig, sc.colOut, stride, k)
		}

		return nil
	})
}

func (t *gonumTransform) Backward(data []float64) error {
	sc := t.scratch.Get().(*gonumScratch)
	defer t.scratch.Put(sc)

	return forEachSignal(data, t.count, t.rows, t.cols, func(sig []float64) error {
		stride := Stride(t.cols)

		if sc.col != nil {
			for k := range SpectrumCols(t.cols) {
				gatherColumn(sc.colIn, sig, stride, k)
				sc.col.Sequence(sc.colOut, sc.colIn)
				scatterColumn(sig, sc.colOut, stride, k)
			}
		}

		for i := range t.rows {
			row := sig[i*stride : (i+1)*stride]
			for k := range sc.coeff {
				sc.coeff[k] = complex(row[2*k], row[2*k+1])
			}
			sc.row.Sequence(sc.seq, sc.coeff)
			for j, v := range sc.seq {
				row[j] = v * t.scale
			}
			row[t.cols], row[t.cols+1] = 0, 0
		}

		return nil
	})
}

func (t *gonumTransform) Release() {}

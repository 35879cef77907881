package fft2d

import (
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
)

type algoFFTBackend struct{}

// AlgoFFT returns the backend built on algo-fft complex plans: one plan over
// rows and one over columns, with the half spectrum expanded by Hermitian
// symmetry before the inverse row transforms.
func AlgoFFT() Backend {
	return algoFFTBackend{}
}

func (algoFFTBackend) Name() string { return "algo-fft" }

func (algoFFTBackend) NewTransform(count, rows, cols int) (Transform, error) {
	rowPlan, err := algofft.NewPlan64(cols)
	if err != nil {
		return nil, fmt.Errorf("row plan: %w", err)
	}

	t := &algoFFTTransform{
		count:   count,
		rows:    rows,
		cols:    cols,
		rowPlan: rowPlan,
	}

	// A single row needs no column pass.
	if rows > 1 {
		t.colPlan, err = algofft.NewPlan64(rows)
		if err != nil {
			return nil, fmt.Errorf("column plan: %w", err)
		}
	}

	t.scratch.New = func() any {
		return &algoFFTScratch{
			rowIn:  make([]complex128, cols),
			rowOut: make([]complex128, cols),
			colIn:  make([]complex128, rows),
			colOut: make([]complex128, rows),
		}
	}

	return t, nil
}

type algoFFTScratch struct {
	rowIn, rowOut []complex128
	colIn, colOut []complex128
}

type algoFFTTransform struct {
	count, rows, cols int

	rowPlan *algofft.Plan[complex128]
	colPlan *algofft.Plan[complex128]

	scratch sync.Pool
}

func (t *algoFFTTransform) Forward(data []float64) error {
	sc := t.scratch.Get().(*algoFFTScratch)
	defer t.scratch.Put(sc)

	return forEachSignal(data, t.count, t.rows, t.cols, func(sig []float64) error {
		stride := Stride(t.cols)
		half := SpectrumCols(t.cols)

		for i := range t.rows {
			row := sig[i*stride : (i+1)*stride]
			for j := range t.cols {
				sc.rowIn[j] = complex(row[j], 0)
			}

			if err := t.rowPlan.Forward(sc.rowOut, sc.rowIn); err != nil {
				return fmt.Errorf("fft2d: forward row FFT failed: %w", err)
			}

			for k := range half {
				row[2*k] = real(sc.rowOut[k])
				row[2*k+1] = imag(sc.rowOut[k])
			}
		}

		if t.colPlan == nil {
			return nil
		}

		for k := range half {
			gatherColumn(sc.colIn, sig, stride, k)
			if err := t.colPlan.Forward(sc.colOut, sc.colIn); err != nil {
				return fmt.Errorf("fft2d: forward column FFT failed: %w", err)
			}
			scatterColumn(sig, sc.colOut, stride, k)
		}

		return nil
	})
}

func (t *algoFFTTransform) Backward(data []float64) error {
	sc := t.scratch.Get().(*algoFFTScratch)
	defer t.scratch.Put(sc)

	return forEachSignal(data, t.count, t.rows, t.cols, func(sig []float64) error {
		stride := Stride(t.cols)
		half := SpectrumCols(t.cols)

		if t.colPlan != nil {
			for k := range half {
				gatherColumn(sc.colIn, sig, stride, k)
				if err := t.colPlan.Inverse(sc.colOut, sc.colIn); err != nil {
					return fmt.Errorf("fft2d: inverse column FFT failed: %w", err)
				}
				scatterColumn(sig, sc.colOut, stride, k)
			}
		}

		for i := range t.rows {
			row := sig[i*stride : (i+1)*stride]
			for k := range half {
				sc.rowIn[k] = complex(row[2*k], row[2*k+1])
			}
			// X[n-k] = conj(X[k]) for a real row.
			for k := half; k < t.cols; k++ {
				c := sc.rowIn[t.cols-k]
				sc.rowIn[k] = complex(real(c), -imag(c))
			}

			if err := t.rowPlan.Inverse(sc.rowOut, sc.rowIn); err != nil {
				return fmt.Errorf("fft2d: inverse row FFT failed: %w", err)
			}

			for j := range t.cols {
				row[j] = real(sc.rowOut[j])
			}
			row[t.cols], row[t.cols+1] = 0, 0
		}

		return nil
	})
}

func (t *algoFFTTransform) Release() {
	t.rowPlan = nil
	t.colPlan = nil
}

// gatherColumn reads complex column k of a half spectrum into dst.
func gatherColumn(dst []complex128, sig []float64, stride, k int) {
	for i := range dst {
		p := i*stride + 2*k
		dst[i] = complex(sig[p], sig[p+1])
	}
}

// scatterColumn writes src into complex column k of a half spectrum.
func scatterColumn(sig []float64, src []complex128, stride, k int) {
	for i, c := range src {
		p := i*stride + 2*k
		sig[p] = real(c)
		sig[p+1] = imag(c)
	}
}

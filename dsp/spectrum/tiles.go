package spectrum

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xcorr/dsp/fft2d"
)

// Tiles builds a mosaic of local magnitude spectra over m.
//
// m is truncated to a multiple of wf in both dimensions and split into a grid
// of wf × wf cells. Cell (i, j) holds the lowest wf × wf bins of the magnitude
// spectrum of a 2(wf-1) square patch, with patches spread evenly so the last
// one ends at the truncated edge. All patches share one signal and plan; a nil
// planner selects fft2d.ForwardR2C.
func Tiles(m mat.Matrix, wf int, planner fft2d.Planner) (*mat.Dense, error) {
	if wf < 2 {
		return nil, fmt.Errorf("%w: tile width %d", fft2d.ErrInvalidArgument, wf)
	}

	r, c := m.Dims()
	rows, cols := r-r%wf, c-c%wf
	ws := 2 * (wf - 1)
	if rows < ws || cols < ws {
		return nil, fmt.Errorf("%w: %dx%d data is smaller than a %dx%d patch",
			fft2d.ErrInvalidArgument, r, c, ws, ws)
	}

	patch, err := fft2d.NewSignal(fft2d.Size{Rows: ws, Cols: ws}, planner)
	if err != nil {
		return nil, err
	}
	defer patch.Close()

	data := mat.DenseCopyOf(m)
	out := mat.NewDense(rows, cols, nil)
	stepI, stepJ := tileStep(wf, ws, rows), tileStep(wf, ws, cols)

	for i := range rows / wf {
		y := int(math.Round(float64(i) * stepI))
		for j := range cols / wf {
			x := int(math.Round(float64(j) * stepJ))

			if err := patch.Set(data.Slice(y, y+ws, x, x+ws)); err != nil {
				return nil, err
			}
			if _, err := patch.Transform(); err != nil {
				return nil, err
			}

			mag := Magnitude(patch)
			cell := out.Slice(i*wf, (i+1)*wf, j*wf, (j+1)*wf).(*mat.Dense)
			cell.Copy(mag.Slice(0, wf, 0, wf))
		}
	}

	return out, nil
}

// tileStep returns the distance between patch origins along an extent.
func tileStep(wf, ws, extent int) float64 {
	return float64(extent-ws) / float64(extent/wf)
}

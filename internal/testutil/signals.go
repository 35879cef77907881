package testutil

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Noise2D returns a rows × cols matrix of uniform values in [0, 1) drawn from
// a fixed seed.
func Noise2D(seed int64, rows, cols int) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = rng.Float64()
	}
	return mat.NewDense(rows, cols, data)
}

// Constant2D returns a rows × cols matrix filled with value.
func Constant2D(rows, cols int, value float64) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = value
	}
	return mat.NewDense(rows, cols, data)
}

// Impulse2D returns a rows × cols matrix that is zero except for a one at
// (row, col). Out-of-range positions give an all-zero matrix.
func Impulse2D(rows, cols, row, col int) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	if row >= 0 && row < rows && col >= 0 && col < cols {
		m.Set(row, col, 1)
	}
	return m
}

// Embed copies patch into dst with its top-left corner at (row, col),
// clipping whatever falls outside dst.
func Embed(dst *mat.Dense, patch mat.Matrix, row, col int) {
	dr, dc := dst.Dims()
	pr, pc := patch.Dims()
	for i := range pr {
		for j := range pc {
			r, c := row+i, col+j
			if r < 0 || r >= dr || c < 0 || c >= dc {
				continue
			}
			dst.Set(r, c, patch.At(i, j))
		}
	}
}

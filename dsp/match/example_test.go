package match_test

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xcorr/dsp/fft2d"
	"github.com/cwbudde/algo-xcorr/dsp/match"
)

func ExampleCosineSearch_Search() {
	rng := rand.New(rand.NewSource(1))
	image := mat.NewDense(8, 8, nil)
	for i := range 8 {
		for j := range 8 {
			image.Set(i, j, rng.Float64())
		}
	}
	template := mat.DenseCopyOf(image.Slice(2, 5, 4, 7))

	s, err := match.NewCosineSearch(fft2d.Size{Rows: 3, Cols: 3}, fft2d.Size{Rows: 8, Cols: 8})
	if err != nil {
		panic(err)
	}
	defer s.Close()

	m, err := s.Search(template, image)
	if err != nil {
		panic(err)
	}

	fmt.Printf("x=%d y=%d score=%.3f\n", m.X, m.Y, m.Score)
	// Output: x=4 y=2 score=1.000
}

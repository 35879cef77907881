package fft2d_test

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xcorr/dsp/fft2d"
)

func ExampleSignal_Transform() {
	m := mat.NewDense(2, 3, []float64{
		1, 1, 1,
		1, 1, 1,
	})

	sig, err := fft2d.NewSignalFrom(m, fft2d.ForwardR2C)
	if err != nil {
		panic(err)
	}
	defer sig.Close()

	if _, err := sig.Transform(); err != nil {
		panic(err)
	}

	fmt.Println(sig.Padded())
	fmt.Printf("%.1f\n", real(sig.Complex().At(0, 0)))
	// Output:
	// 2x4
	// 6.0
}

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestDecodeMatrix(t *testing.T) {
	in := "# template\n1, 2, 3\n4,5,6\n"

	m, err := decodeMatrix(strings.NewReader(in))
	require.NoError(t, err)
	require.True(t, mat.Equal(m, mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})))
}

func TestDecodeMatrixErrors(t *testing.T) {
	_, err := decodeMatrix(strings.NewReader(""))
	require.Error(t, err)

	_, err = decodeMatrix(strings.NewReader("1,2\n3\n"))
	require.Error(t, err)

	_, err = decodeMatrix(strings.NewReader("1,x\n"))
	require.ErrorContains(t, err, "row 1, column 2")
}

func TestWriteMatrixRoundTrip(t *testing.T) {
	want := mat.NewDense(2, 2, []float64{0.5, -1, 1e-9, 3})

	var buf bytes.Buffer
	require.NoError(t, writeMatrix(&buf, want))

	got, err := decodeMatrix(&buf)
	require.NoError(t, err)
	require.True(t, mat.Equal(got, want))
}

func TestBackendByName(t *testing.T) {
	b, err := backendByName(" Gonum ")
	require.NoError(t, err)
	require.Equal(t, "gonum", b.Name())

	_, err = backendByName("fftw")
	require.Error(t, err)
}

func TestConfigValidate(t *testing.T) {
	cfg := newZeroConfig()
	require.NoError(t, cfg.validate())

	cfg.patchX = 30
	require.Error(t, cfg.validate())

	cfg = newZeroConfig()
	cfg.backend = "nope"
	require.Error(t, cfg.validate())
}

func TestDemoFindsPlantedPatch(t *testing.T) {
	for _, name := range []string{"algo-fft", "gonum"} {
		cfg := newZeroConfig()
		cfg.backend = name
		require.NoError(t, cfg.validate())

		backend, err := backendByName(name)
		require.NoError(t, err)

		template, image := demoScene(&cfg)
		require.Equal(t, 5.0, image.At(10, 18))
		require.Equal(t, 5.0, image.At(15, 23))

		best, scores, err := search(backend, template, image)
		require.NoError(t, err)
		require.Equal(t, 18, best.X, name)
		require.Equal(t, 10, best.Y, name)
		require.InDelta(t, 1.0, best.Score, 1e-6, name)

		r, c := scores.Dims()
		require.Equal(t, 27, r)
		require.Equal(t, 27, c)
	}
}

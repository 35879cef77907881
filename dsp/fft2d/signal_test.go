package fft2d_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xcorr/dsp/buffer"
	"github.com/cwbudde/algo-xcorr/dsp/fft2d"
	"github.com/cwbudde/algo-xcorr/internal/testutil"
)

var backends = []fft2d.Backend{fft2d.AlgoFFT(), fft2d.Gonum()}

// roundTrip runs a forward and a backward transform over m on backend.
func roundTrip(t *testing.T, backend fft2d.Backend, m mat.Matrix) *mat.Dense {
	t.Helper()

	forward, backward := fft2d.Planners(backend)

	sig, err := fft2d.NewSignalFrom(m, forward)
	require.NoError(t, err)
	defer sig.Close()

	_, err = sig.Transform()
	require.NoError(t, err)

	p := sig.Padded()
	inv, err := backward(1, p.Rows, p.Cols, nil)
	require.NoError(t, err)
	defer inv.Release()

	require.NoError(t, sig.SetPlan(inv))
	_, err = sig.Transform()
	require.NoError(t, err)

	return sig.ToMat(true)
}

func TestRoundTrip(t *testing.T) {
	sizes := []fft2d.Size{
		{Rows: 1, Cols: 6},
		{Rows: 7, Cols: 9},
		{Rows: 16, Cols: 16},
		{Rows: 13, Cols: 11},
	}

	for _, backend := range backends {
		for _, size := range sizes {
			t.Run(backend.Name()+"/"+size.String(), func(t *testing.T) {
				in := testutil.Noise2D(int64(size.Rows*100+size.Cols), size.Rows, size.Cols)
				testutil.RequireMatNearlyEqual(t, roundTrip(t, backend, in), in, 1e-9)
			})
		}
	}
}

func TestForwardDCIsSum(t *testing.T) {
	in := testutil.Noise2D(5, 6, 10)
	sum := mat.Sum(in)

	for _, backend := range backends {
		forward, _ := fft2d.Planners(backend)
		sig, err := fft2d.NewSignalFrom(in, forward)
		require.NoError(t, err)

		_, err = sig.Transform()
		require.NoError(t, err)

		dc := sig.Complex().At(0, 0)
		require.InDelta(t, sum, real(dc), 1e-9, backend.Name())
		require.InDelta(t, 0, imag(dc), 1e-9, backend.Name())
		sig.Close()
	}
}

func TestBackendsAgree(t *testing.T) {
	in := testutil.Noise2D(11, 9, 14)

	spectra := make([]*mat.Dense, 0, len(backends))
	for _, backend := range backends {
		forward, _ := fft2d.Planners(backend)
		sig, err := fft2d.NewSignalFrom(in, forward)
		require.NoError(t, err)

		_, err = sig.Transform()
		require.NoError(t, err)
		spectra = append(spectra, sig.Complex().ToMat())
		sig.Close()
	}

	testutil.RequireMatNearlyEqual(t, spectra[0], spectra[1], 1e-9)
}

func TestSetZeroesPadding(t *testing.T) {
	sig, err := fft2d.NewSignal(fft2d.Size{Rows: 3, Cols: 3}, nil)
	require.NoError(t, err)
	defer sig.Close()

	sig.Fill(9)
	require.NoError(t, sig.Set(testutil.Constant2D(2, 2, 1)))

	rv := sig.Real()
	for i := range rv.Rows() {
		for j := range rv.Stride() {
			want := 0.0
			if i < 2 && j < 2 {
				want = 1
			}
			require.Equal(t, want, sig.Buffer().Data()[i*rv.Stride()+j], "(%d, %d)", i, j)
		}
	}
}

func TestSetAcceptsNonRawMatrix(t *testing.T) {
	in := testutil.Noise2D(3, 4, 3)

	sig, err := fft2d.NewSignal(fft2d.Size{Rows: 3, Cols: 4}, nil)
	require.NoError(t, err)
	defer sig.Close()

	require.NoError(t, sig.Set(in.T()))
	testutil.RequireMatNearlyEqual(t, sig.ToMat(false), in.T(), 0)
}

func TestSetRejectsOversizedData(t *testing.T) {
	sig, err := fft2d.NewSignal(fft2d.Size{Rows: 4, Cols: 4}, nil)
	require.NoError(t, err)
	defer sig.Close()

	require.NoError(t, sig.Set(testutil.Constant2D(2, 2, 1)))

	err = sig.Set(testutil.Constant2D(5, 4, 1))
	require.ErrorIs(t, err, fft2d.ErrInvalidArgument)
	require.Equal(t, 1.0, sig.Real().At(0, 0), "failed Set must not touch the signal")
}

func TestFillLeavesPadColumnsZero(t *testing.T) {
	sig, err := fft2d.NewSignal(fft2d.Size{Rows: 2, Cols: 4}, nil)
	require.NoError(t, err)
	defer sig.Close()

	sig.Fill(3)
	data := sig.Buffer().Data()
	stride := sig.Real().Stride()
	for i := range 2 {
		for j := range 4 {
			require.Equal(t, 3.0, data[i*stride+j])
		}
		require.Equal(t, 0.0, data[i*stride+4])
		require.Equal(t, 0.0, data[i*stride+5])
	}
}

func TestToMatAliasing(t *testing.T) {
	sig, err := fft2d.NewSignal(fft2d.Size{Rows: 2, Cols: 2}, nil)
	require.NoError(t, err)
	defer sig.Close()

	view := sig.ToMat(false)
	owned := sig.ToMat(true)
	sig.Real().Set(1, 1, 4)

	require.Equal(t, 4.0, view.At(1, 1))
	require.Equal(t, 0.0, owned.At(1, 1))
}

func TestTransformWithoutPlan(t *testing.T) {
	buf, err := buffer.New(64)
	require.NoError(t, err)
	defer buf.Release()

	view, err := fft2d.NewView(fft2d.Size{Rows: 2, Cols: 2}, buf, 0, nil)
	require.NoError(t, err)
	defer view.Close()

	require.Nil(t, view.Plan())
	_, err = view.Transform()
	require.ErrorIs(t, err, fft2d.ErrIllegalState)
}

func TestNewViewOutsideBuffer(t *testing.T) {
	buf, err := buffer.New(10)
	require.NoError(t, err)
	defer buf.Release()

	_, err = fft2d.NewView(fft2d.Size{Rows: 2, Cols: 2}, buf, 4, nil)
	require.ErrorIs(t, err, fft2d.ErrGeometryMismatch)
}

func TestSignalsSharePlan(t *testing.T) {
	size := fft2d.Size{Rows: 5, Cols: 5}
	p := fft2d.Padded(size)

	plan, err := fft2d.ForwardR2C(1, p.Rows, p.Cols, nil)
	require.NoError(t, err)

	a, err := fft2d.NewSignalWithPlan(size, plan)
	require.NoError(t, err)
	b, err := fft2d.NewSignalFromWithPlan(testutil.Noise2D(1, 5, 5), plan)
	require.NoError(t, err)
	require.Equal(t, 3, plan.Refs())

	plan.Release()
	require.Equal(t, 2, a.Plan().Refs())

	_, err = b.Transform()
	require.NoError(t, err)

	a.Close()
	require.Equal(t, 1, b.Plan().Refs())
	b.Close()
}

func TestClosedSignalPlanLeavesOthersAlone(t *testing.T) {
	size := fft2d.Size{Rows: 8, Cols: 8}

	a, err := fft2d.NewSignal(size, nil)
	require.NoError(t, err)
	p := a.Plan().Share()
	defer p.Release()
	require.True(t, p.Target().Same(a.Buffer()))

	a.Close()
	require.Equal(t, 1, p.Target().Refs())

	b, err := fft2d.NewSignalFrom(testutil.Noise2D(2, 8, 8), nil)
	require.NoError(t, err)
	defer b.Close()
	before := b.ToMat(true)

	require.NoError(t, p.Execute())
	require.False(t, p.Target().Same(b.Buffer()))
	require.True(t, mat.Equal(before, b.ToMat(false)))
}

func TestNewSignalWithPlanMismatch(t *testing.T) {
	plan, err := fft2d.ForwardR2C(1, 8, 8, nil)
	require.NoError(t, err)
	defer plan.Release()

	_, err = fft2d.NewSignalWithPlan(fft2d.Size{Rows: 4, Cols: 4}, plan)
	require.ErrorIs(t, err, fft2d.ErrGeometryMismatch)

	_, err = fft2d.NewSignalWithPlan(fft2d.Size{Rows: 4, Cols: 4}, nil)
	require.ErrorIs(t, err, fft2d.ErrIllegalState)
}

func TestRealMul(t *testing.T) {
	a, err := fft2d.NewSignalFrom(mat.NewDense(1, 2, []float64{2, 3}), nil)
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Real().Mul(a, a))
	testutil.RequireMatNearlyEqual(t, a.ToMat(false), mat.NewDense(1, 2, []float64{4, 9}), 0)
}

func TestComplexMul(t *testing.T) {
	size := fft2d.Size{Rows: 1, Cols: 2}
	a, err := fft2d.NewSignal(size, nil)
	require.NoError(t, err)
	defer a.Close()
	b, err := fft2d.NewSignal(size, nil)
	require.NoError(t, err)
	defer b.Close()
	out, err := fft2d.NewSignal(size, nil)
	require.NoError(t, err)
	defer out.Close()

	a.Complex().Set(0, 0, complex(1, 2))
	b.Complex().Set(0, 0, complex(3, -1))

	require.NoError(t, out.Complex().Mul(a, b, fft2d.NoConjugate, 1))
	require.Equal(t, complex(5, 5), out.Complex().At(0, 0))

	require.NoError(t, out.Complex().Mul(a, b, fft2d.Conjugate, 2))
	require.Equal(t, complex(2, 14), out.Complex().At(0, 0))
}

func TestMulGeometryMismatch(t *testing.T) {
	a, err := fft2d.NewSignal(fft2d.Size{Rows: 2, Cols: 2}, nil)
	require.NoError(t, err)
	defer a.Close()
	b, err := fft2d.NewSignal(fft2d.Size{Rows: 4, Cols: 4}, nil)
	require.NoError(t, err)
	defer b.Close()

	require.ErrorIs(t, a.Complex().Mul(a, b, fft2d.Conjugate, 1), fft2d.ErrGeometryMismatch)
	require.ErrorIs(t, a.Real().Mul(a, b), fft2d.ErrGeometryMismatch)
}

func TestClosedSignalAccess(t *testing.T) {
	sig, err := fft2d.NewSignal(fft2d.Size{Rows: 2, Cols: 2}, nil)
	require.NoError(t, err)
	require.False(t, sig.Closed())
	sig.Close()
	require.True(t, sig.Closed())

	closed := "fft2d: illegal state: signal is closed"
	require.PanicsWithError(t, closed, func() { sig.Real().At(0, 0) })
	require.PanicsWithError(t, closed, func() { sig.Real().Set(0, 0, 1) })
	require.PanicsWithError(t, closed, func() { sig.Real().Row(0) })
	require.PanicsWithError(t, closed, func() { sig.Complex().At(0, 0) })
	require.PanicsWithError(t, closed, func() { sig.Complex().Set(0, 0, 1) })

	require.ErrorIs(t, sig.Set(mat.NewDense(1, 1, []float64{1})), fft2d.ErrIllegalState)
	require.ErrorIs(t, sig.Real().Mul(sig, sig), fft2d.ErrIllegalState)
	require.Nil(t, sig.ToMat(true))
	require.Nil(t, sig.Complex().ToMat())
}

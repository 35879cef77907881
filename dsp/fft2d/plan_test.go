package fft2d_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-xcorr/dsp/buffer"
	"github.com/cwbudde/algo-xcorr/dsp/fft2d"
)

func TestZeroPlanIsIllegal(t *testing.T) {
	var p fft2d.Plan

	require.False(t, p.Valid())
	require.ErrorIs(t, p.Execute(), fft2d.ErrIllegalState)
	require.ErrorIs(t, p.ExecuteOn(make([]float64, 16)), fft2d.ErrIllegalState)
	require.Equal(t, 0, p.Refs())

	var nilPlan *fft2d.Plan
	require.ErrorIs(t, nilPlan.Execute(), fft2d.ErrIllegalState)
	nilPlan.Release()
}

func TestNewPlanRejectsBadGeometry(t *testing.T) {
	tests := []struct {
		name              string
		kind              fft2d.Kind
		count, rows, cols int
	}{
		{name: "odd cols", kind: fft2d.ForwardRealToComplex, count: 1, rows: 4, cols: 5},
		{name: "zero rows", kind: fft2d.ForwardRealToComplex, count: 1, rows: 0, cols: 4},
		{name: "zero count", kind: fft2d.BackwardComplexToReal, count: 0, rows: 4, cols: 4},
		{name: "unknown kind", kind: fft2d.Kind(9), count: 1, rows: 4, cols: 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fft2d.NewPlan(nil, tt.kind, tt.count, tt.rows, tt.cols, nil)
			require.ErrorIs(t, err, fft2d.ErrInvalidArgument)
		})
	}
}

func TestNewPlanRejectsShortBuffer(t *testing.T) {
	buf, err := buffer.New(10)
	require.NoError(t, err)
	defer buf.Release()

	_, err = fft2d.NewPlan(nil, fft2d.ForwardRealToComplex, 2, 4, 4, buf)
	require.ErrorIs(t, err, fft2d.ErrGeometryMismatch)
	require.Equal(t, 1, buf.Refs())
	require.ErrorIs(t, err, fft2d.ErrInvalidArgument)
}

func TestPlanShareAndRelease(t *testing.T) {
	p, err := fft2d.ForwardR2C(1, 4, 4, nil)
	require.NoError(t, err)
	require.Equal(t, 1, p.Refs())
	require.Equal(t, fft2d.ForwardRealToComplex, p.Kind())
	require.Equal(t, "algo-fft", p.Backend())
	require.Equal(t, 4*6, p.Len())

	q := p.Share()
	require.Equal(t, 2, p.Refs())
	require.Equal(t, 2, q.Refs())

	q.Release()
	q.Release()
	require.Equal(t, 1, p.Refs())
	require.False(t, q.Valid())

	p.Release()
	require.False(t, p.Valid())
}

func TestPlanWithoutTargetNeedsExecuteOn(t *testing.T) {
	p, err := fft2d.ForwardR2C(1, 2, 2, nil)
	require.NoError(t, err)
	defer p.Release()

	require.ErrorIs(t, p.Execute(), fft2d.ErrIllegalState)

	buf := []float64{1, 1, 0, 0, 1, 1, 0, 0}
	require.NoError(t, p.ExecuteOn(buf))
	require.InDelta(t, 4, buf[0], 1e-12)

	require.ErrorIs(t, p.ExecuteOn(make([]float64, 3)), fft2d.ErrGeometryMismatch)
}

func TestPlanHandlesHoldTarget(t *testing.T) {
	buf, err := buffer.New(4 * 6)
	require.NoError(t, err)

	p, err := fft2d.ForwardR2C(1, 4, 4, buf)
	require.NoError(t, err)
	q := p.Share()
	require.Equal(t, 3, buf.Refs())
	require.True(t, q.Target().Same(buf))

	buf.Release()
	require.Equal(t, 2, q.Target().Refs())
	require.NoError(t, q.Execute())

	p.Release()
	require.Equal(t, 1, q.Target().Refs())
	require.NoError(t, q.Execute())

	target := q.Target()
	q.Release()
	require.Nil(t, q.Target())
	require.Equal(t, 0, target.Refs())
}

func TestKindString(t *testing.T) {
	require.Equal(t, "forward-r2c", fft2d.ForwardRealToComplex.String())
	require.Equal(t, "backward-c2r", fft2d.BackwardComplexToReal.String())
	require.Equal(t, "Kind(7)", fft2d.Kind(7).String())
}

package testutil

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-xcorr/dsp/core"
)

// RequireMatNearlyEqual fails t if got and want differ in shape or if any
// element pair is not equal within eps (see core.NearlyEqual).
func RequireMatNearlyEqual(t *testing.T, got, want mat.Matrix, eps float64) {
	t.Helper()
	gr, gc := got.Dims()
	wr, wc := want.Dims()
	if gr != wr || gc != wc {
		t.Fatalf("shape mismatch: got %dx%d, want %dx%d", gr, gc, wr, wc)
	}
	for i := range gr {
		for j := range gc {
			g, w := got.At(i, j), want.At(i, j)
			if !core.NearlyEqual(g, w, eps) {
				t.Fatalf("(%d, %d): got %v, want %v (diff %v > eps %v)", i, j, g, w, math.Abs(g-w), eps)
			}
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, m mat.Matrix) {
	t.Helper()
	r, c := m.Dims()
	for i := range r {
		for j := range c {
			if v := m.At(i, j); !core.IsFinite(v) {
				t.Fatalf("(%d, %d): non-finite value %v", i, j, v)
			}
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two matrices.
// Returns an error if the shapes differ.
func MaxAbsDiff(a, b mat.Matrix) (float64, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return 0, fmt.Errorf("shape mismatch: %dx%d vs %dx%d", ar, ac, br, bc)
	}
	maxDiff := 0.0
	for i := range ar {
		for j := range ac {
			maxDiff = math.Max(maxDiff, math.Abs(a.At(i, j)-b.At(i, j)))
		}
	}
	return maxDiff, nil
}

// MaxAbs returns the largest absolute element of m.
func MaxAbs(m mat.Matrix) float64 {
	r, c := m.Dims()
	peak := 0.0
	for i := range r {
		for j := range c {
			peak = math.Max(peak, math.Abs(m.At(i, j)))
		}
	}
	return peak
}

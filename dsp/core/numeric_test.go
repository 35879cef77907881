package core

import (
	"math"
	"testing"
)

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
	if !NearlyEqual(1e9, 1e9+1, 1e-6) {
		t.Fatal("expected relative comparison for large magnitudes")
	}
	if !NearlyEqual(0, 1e-13, 0) {
		t.Fatal("expected default epsilon for eps <= 0")
	}
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		x    float64
		want bool
	}{
		{0, true},
		{-3.5, true},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}

	for _, tt := range tests {
		if got := IsFinite(tt.x); got != tt.want {
			t.Fatalf("IsFinite(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

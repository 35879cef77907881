package fft2d

import "fmt"

// PadColumns is the number of extra float64 values at the end of every row.
// They hold the last (re, im) pair of the half spectrum, which has
// cols/2 + 1 pairs for an even row width of cols.
const PadColumns = 2

// Size is a 2D extent in rows and columns.
type Size struct {
	Rows int
	Cols int
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Rows > 0 && s.Cols > 0
}

// Fits reports whether s is no larger than other in either dimension.
func (s Size) Fits(other Size) bool {
	return s.Rows <= other.Rows && s.Cols <= other.Cols
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// Padded returns the transform geometry used for a logical size.
func Padded(s Size) Size {
	return Size{Rows: OptimalRowSize(s.Rows), Cols: OptimalColSize(s.Cols)}
}

// OptimalRowSize returns the smallest n' >= n whose only prime factors are
// 2, 3 and 5. Such lengths run through the fast mixed-radix kernels.
// Values below 1 are treated as 1.
func OptimalRowSize(n int) int {
	if n < 1 {
		n = 1
	}
	for !isSmooth(n) {
		n++
	}
	return n
}

// OptimalColSize returns the smallest efficient size >= n that is also even,
// as required by the in-place real-to-complex layout.
func OptimalColSize(n int) int {
	for c := OptimalRowSize(n); ; c = OptimalRowSize(c + 1) {
		if c%2 == 0 {
			return c
		}
	}
}

// Stride returns the row stride, in float64 values, for a padded width.
func Stride(cols int) int {
	return cols + PadColumns
}

// SpectrumCols returns the number of complex bins per row for a padded width.
func SpectrumCols(cols int) int {
	return cols/2 + 1
}

// signalLen returns the float64 length of one padded signal.
func signalLen(rows, cols int) int {
	return rows * Stride(cols)
}

func isSmooth(n int) bool {
	for _, p := range [...]int{2, 3, 5} {
		for n%p == 0 {
			n /= p
		}
	}
	return n == 1
}

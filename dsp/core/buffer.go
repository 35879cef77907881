package core

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	clear(buf)
}

// Fill sets all values in buf to value.
func Fill(buf []float64, value float64) {
	for i := range buf {
		buf[i] = value
	}
}

// CopyInto copies the overlapping prefix of src into dst and returns the number
// of copied elements.
func CopyInto(dst, src []float64) int {
	n := min(len(dst), len(src))
	copy(dst[:n], src[:n])
	return n
}

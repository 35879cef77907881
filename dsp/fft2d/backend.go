package fft2d

// Transform runs 2D transforms of one fixed geometry over a batch of signals
// laid out back to back, each rows × Stride(cols) values long.
//
// Forward replaces real samples with the half spectrum; Backward does the
// opposite and is normalized by 1/(rows·cols). Release frees backend resources
// and is called once, when the last Plan handle is released.
type Transform interface {
	Forward(data []float64) error
	Backward(data []float64) error
	Release()
}

// Backend creates transforms for a 2D geometry.
type Backend interface {
	Name() string
	NewTransform(count, rows, cols int) (Transform, error)
}

// DefaultBackend returns the backend used by ForwardR2C and BackwardC2R.
func DefaultBackend() Backend {
	return AlgoFFT()
}

// forEachSignal calls fn on every signal of a batch.
func forEachSignal(data []float64, count, rows, cols int, fn func(sig []float64) error) error {
	n := signalLen(rows, cols)
	for s := range count {
		if err := fn(data[s*n : (s+1)*n]); err != nil {
			return err
		}
	}
	return nil
}

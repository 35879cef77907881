// Package fft2d provides in-place, batched 2D real↔complex transforms over
// shared, reference-counted buffers.
//
// The package is built from three pieces:
//
//   - [Plan]: a reusable, reference-counted transform for one padded geometry and
//     batch count, tagged [ForwardRealToComplex] or [BackwardComplexToReal]. A plan
//     runs on any buffer of its geometry, so one plan can serve many signals.
//   - [Signal]: a view binding a region of a [buffer.Buffer] to a logical size, a
//     padded size and a plan. The same memory is readable as real samples
//     ([Signal.Real]) or as interleaved complex bins ([Signal.Complex]).
//   - [Signals]: several views carved out of one buffer and transformed by one
//     batched plan call.
//
// # Memory layout
//
// A signal of padded size rows_p × cols_p occupies rows_p rows of
// cols_p + [PadColumns] float64 values. In the real domain the first cols_p
// values of each row are samples. In the complex domain the whole row holds
// cols_p/2 + 1 (re, im) pairs, the half spectrum produced by an in-place
// real-to-complex transform of even width. cols_p is therefore always even.
//
// # Usage
//
//	sig, err := fft2d.NewSignal(fft2d.Size{Rows: 32, Cols: 32}, fft2d.ForwardR2C)
//	err = sig.Set(m)           // zero-padded copy of a mat.Matrix
//	_, err = sig.Transform()   // in-place forward transform
//	bin := sig.Complex().At(0, 1)
//
// Backward transforms are normalized, so a forward/backward round trip
// reproduces the input.
//
// # Backends
//
// Plans delegate the 1D kernels to a [Backend]. [AlgoFFT] (the default) uses
// github.com/MeKo-Christian/algo-fft, [Gonum] uses gonum's dsp/fourier. Any
// function matching [Planner] can be substituted.
//
// Nothing here is synchronized. A plan may be shared by many signals, but two
// executions of the same plan must not overlap, and concurrent Set or Transform
// on views aliasing the same buffer is a data race.
package fft2d

// Package conv provides 2D circular correlation and convolution engines built
// on batched in-place transforms.
//
// An engine is sized once for the largest input it will see. Every call reuses
// the same buffers and plans: both inputs are loaded into a two-signal batch,
// transformed together, multiplied in the frequency domain into a third signal
// and transformed back.
//
// # Usage
//
//	c, err := conv.NewCorrelator(fft2d.Size{Rows: 64, Cols: 64})
//	out, err := c.Correlate(template, image)
//	row, col, peak := conv.FindPeak(out.ToMat(false))
//
// For a correlator the result holds out[t] = Σ_x a(x)·b(x+t) with indices taken
// modulo the padded size, so a template found at row r, column c of the image
// shows up at (r, c). [CorrelateValid] clips the surface to the offsets where
// the template lies wholly inside the image.
//
// Engines of the same geometry can share plans through [WithPlanCache].
package conv

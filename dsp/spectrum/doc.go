// Package spectrum provides inspection helpers for transformed 2D signals.
//
// The package does not transform anything itself. It reads the half spectrum
// held in a [fft2d.Signal] after a forward transform and turns it into
// magnitude, power or phase images of rows_p × (cols_p/2 + 1) bins.
package spectrum

package fft2d

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-xcorr/dsp/buffer"
)

// Errors returned by transform primitives. Every error is reported before any
// buffer is mutated.
var (
	ErrInvalidArgument  = errors.New("fft2d: invalid argument")
	ErrGeometryMismatch = fmt.Errorf("%w: geometry mismatch", ErrInvalidArgument)
	ErrIllegalState     = errors.New("fft2d: illegal state")
	ErrOutOfRange       = fmt.Errorf("%w: index out of range", ErrIllegalState)
	ErrAllocation       = buffer.ErrAllocation
)

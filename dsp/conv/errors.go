package conv

import "errors"

// Errors returned by convolution operations.
var (
	ErrWrongConvolution = errors.New("conv: kernel or response was created for another convolution instance")
	ErrShortBlock       = errors.New("conv: array is shorter than the convolution block size")
	ErrInvalidSize      = errors.New("conv: block size must be a power of two")
	ErrWindowSize       = errors.New("conv: window size does not match the convolution's window size")
)

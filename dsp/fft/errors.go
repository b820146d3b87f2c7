package fft

import "errors"

// Errors returned by buffer and transform operations.
var (
	ErrNotPowerOfTwo  = errors.New("fft: transform size must be a power of two")
	ErrAliasedArrays  = errors.New("fft: input and output may not share the same array")
	ErrLengthMismatch = errors.New("fft: real and imag arrays must be of equal length")
	ErrShortArray     = errors.New("fft: array is shorter than the configured size")
	ErrBandOverlap    = errors.New("fft: band start and end frequencies must have the same sign")
	ErrBeyondNyquist  = errors.New("fft: band frequencies cannot exceed the Nyquist frequency")
)

// isPowerOfTwo returns true if n is a positive power of 2.
func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// log2 returns the base-2 logarithm of a power-of-two n.
func log2(n int) int {
	log := 0
	for 1<<log < n {
		log++
	}
	return log
}

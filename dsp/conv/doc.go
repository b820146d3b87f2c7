// Package conv implements streaming FFT-based convolution of fixed-size
// signal blocks using the overlap-add method.
//
// A convolution instance accepts a continuous sequence of equal-sized input
// blocks, convolves each block with the active filter in the frequency
// domain, and emits output blocks of the same size. Concatenated, the output
// equals the linear convolution of the whole input stream with the filter's
// impulse response, up to floating-point round-off; there are no artifacts
// at block boundaries.
//
// Two variants exist:
//
//   - ComplexT processes N complex samples per block. It is frequently used
//     to process two independent real channels at once by loading one into
//     the real and one into the imaginary channel.
//   - RealT processes 2N real samples per block with the same single
//     2N-point complex FFT a ComplexT of N samples uses, by packing the two
//     block halves into the real and imaginary channels.
//
// Internally each block is zero-padded to twice its size before the forward
// transform, so the block convolution is linear rather than circular. The
// second half of every convolved block is retained and added to the first
// half of the next one; Drain retrieves that pending tail at end-of-stream
// and Flush discards it.
//
// # Filters
//
// The active filter is described by a frequency response. Callers either
// edit a FrequencyResponseT directly (band fills, bin edits) and derive an
// anti-aliased impulse response from it via FilterKernelT.SetFrequencyResponse,
// or supply an impulse response by writing into a kernel's sample arrays.
// Setting a frequency response on a kernel runs the full conditioning
// pipeline: inverse transform, circular shift into the first buffer half,
// symmetric windowing, and zero-padding of the remainder. The resulting
// impulse response spans at most half the FFT size plus one samples
// (WindowSize), so a block convolved with it still fits the FFT, which is
// what keeps the overlap-add output free of circular wrap-around.
//
// Kernels and responses are created from the convolution they belong to and
// are rejected by any other instance.
//
// # Observation
//
// An observer receives the live pre- and post-transform buffers during each
// convolve pass. Mutating the pre-convolution spectrum or the output time
// buffer changes the emitted samples; this is intentional and makes the hook
// usable for spectral displays as well as custom in-line processing.
//
// # Precision
//
// Every type is generic over the scalar type with float64 and float32
// instantiations named by the usual T-less and 32-suffixed aliases
// (Complex/Complex32, Real/Real32, ...).
package conv

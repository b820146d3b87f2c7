package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-convolution/dsp/fft"
)

// RealT convolves streams of real-valued blocks.
//
// Each Convolve pass accepts Size() real samples, twice the internal complex
// block size: the two block halves are packed into the real and imaginary
// channels of a single complex FFT, and the elementwise multiply with a
// real-valued kernel spectrum preserves that packing. Compared to feeding
// the same samples through a complex convolution of twice the size, this
// halves the transform work.
//
// A single instance carries per-stream state and must not be shared between
// goroutines.
type RealT[F algofft.Float] struct {
	e *engineT[F]

	preTime  *fft.BufferT[F]
	postTime *fft.BufferT[F]

	// pending is half a user-facing block: the wrapped-around part of the
	// imaginary channel, which belongs to the head of the next block.
	pending []F
}

// Real is the float64 specialization of RealT.
type Real = RealT[float64]

// Real32 is the float32 specialization of RealT.
type Real32 = RealT[float32]

// NewRealT creates a convolution processing size real samples per block.
// size must be a power of two, at least 4.
func NewRealT[F algofft.Float](size int) (*RealT[F], error) {
	if size < 4 || size%2 != 0 {
		return nil, fmt.Errorf("%w: block size %d", ErrInvalidSize, size)
	}

	// The engine runs at the half (complex) size; its FFT spans the full
	// user-facing block.
	e, err := newEngine[F](size / 2)
	if err != nil {
		return nil, err
	}

	return &RealT[F]{
		e:        e,
		preTime:  fft.NewBufferT[F](e.fftSize),
		postTime: fft.NewBufferT[F](e.fftSize),
		pending:  make([]F, e.size),
	}, nil
}

// NewReal creates a float64 convolution of size real samples per block.
func NewReal(size int) (*Real, error) {
	return NewRealT[float64](size)
}

// NewReal32 creates a float32 convolution of size real samples per block.
func NewReal32(size int) (*Real32, error) {
	return NewRealT[float32](size)
}

// NewRealFromT creates a convolution of the same size as other, sharing its
// FFT lookup tables and default window but carrying fresh per-stream state.
func NewRealFromT[F algofft.Float](other *RealT[F]) *RealT[F] {
	e := newEngineFrom(other.e)

	return &RealT[F]{
		e:        e,
		preTime:  fft.NewBufferT[F](e.fftSize),
		postTime: fft.NewBufferT[F](e.fftSize),
		pending:  make([]F, e.size),
	}
}

// NewRealFrom creates a float64 convolution sharing tables with other.
func NewRealFrom(other *Real) *Real {
	return NewRealFromT(other)
}

// Size returns the number of real samples processed per Convolve pass.
func (r *RealT[F]) Size() int { return r.e.size * 2 }

// FFTSize returns the internal FFT size, equal to Size().
func (r *RealT[F]) FFTSize() int { return r.e.fftSize }

// WindowSize returns the usable impulse-response length of a conditioned
// kernel.
func (r *RealT[F]) WindowSize() int { return r.e.windowSize }

// NewFrequencyResponse creates an identity frequency response bound to this
// convolution.
func (r *RealT[F]) NewFrequencyResponse() *FrequencyResponseT[F] {
	return newFrequencyResponse(r.e)
}

// NewFilterKernel creates an identity filter kernel bound to this
// convolution.
func (r *RealT[F]) NewFilterKernel() *FilterKernelT[F] {
	return newFilterKernel(r.e)
}

// SetFilterKernel makes the kernel's spectrum the active frequency response
// for all subsequent blocks. The change is not crossfaded.
//
// The kernel's imaginary samples are forced to zero first: the output
// unpacking assumes a real-only kernel, since any imaginary kernel content
// would cross-couple the two packed block halves.
func (r *RealT[F]) SetFilterKernel(k *FilterKernelT[F]) error {
	if k.owner != r.e {
		return fmt.Errorf("%w: Real.SetFilterKernel", ErrWrongConvolution)
	}

	k.FillImag(0)
	return r.e.setFilterKernel(k)
}

// FilterKernel returns a fresh kernel reflecting the active frequency
// response.
func (r *RealT[F]) FilterKernel() (*FilterKernelT[F], error) {
	return r.e.filterKernel()
}

// SetObserver registers an observer for subsequent Convolve passes, or
// removes it when nil.
func (r *RealT[F]) SetObserver(o *ObserverT[F]) {
	r.e.observer = o
}

// Convolve convolves one block of Size() real samples with the active
// filter. Both arrays must be at least Size() long; samples beyond that are
// ignored and the input array is left unmodified.
func (r *RealT[F]) Convolve(in, out []F) error {
	n := r.e.size
	if len(in) < 2*n {
		return fmt.Errorf("%w: Convolve input needs %d samples", ErrShortBlock, 2*n)
	}
	if len(out) < 2*n {
		return fmt.Errorf("%w: Convolve output needs %d samples", ErrShortBlock, 2*n)
	}

	// First block half into the real channel, second half into the
	// imaginary channel; second halves of both channels stay zero-padded.
	copy(r.preTime.Real[:n], in[:n])
	copy(r.preTime.Imag[:n], in[n:2*n])

	if err := r.e.convolveFreqDomain(r.preTime, r.postTime); err != nil {
		return err
	}

	post := r.postTime
	for i, j := 0, n; i < n; i, j = i+1, j+1 {
		// The convolved real channel contributes to the whole output block.
		// The first imaginary half belongs to the second half of this
		// block; the second imaginary half is the tail of the next one.
		out[i] = post.Real[i] + r.pending[i]
		out[j] = post.Real[j] + post.Imag[i]

		r.pending[i] = post.Imag[j]
	}

	return nil
}

// Drain retrieves and clears the pending tail, which would have been
// overlap-added during the next Convolve. The tail of a real convolution is
// half a block: out must be at least Size()/2 long.
func (r *RealT[F]) Drain(out []F) error {
	n := r.e.size
	if len(out) < n {
		return fmt.Errorf("%w: Drain output needs %d samples", ErrShortBlock, n)
	}

	copy(out[:n], r.pending)
	zero(r.pending)

	return nil
}

// Flush discards the pending tail. The next Convolve starts from scratch.
func (r *RealT[F]) Flush() {
	zero(r.pending)
}

func zero[F algofft.Float](s []F) {
	for i := range s {
		s[i] = 0
	}
}

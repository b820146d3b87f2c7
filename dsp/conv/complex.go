package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-convolution/dsp/fft"
)

// ComplexT convolves streams of complex-valued blocks.
//
// Each Convolve pass accepts Size() complex samples and emits the same
// number, maintaining overlap-add state between passes so that the
// concatenated output equals the linear convolution of the whole stream.
// A single instance carries per-stream state and must not be shared between
// goroutines.
type ComplexT[F algofft.Float] struct {
	e *engineT[F]

	// preTime holds the zero-padded input block. Its second halves are zero
	// at construction and no pass ever writes them, which is what makes the
	// copy-only packing below valid.
	preTime  *fft.BufferT[F]
	postTime *fft.BufferT[F]

	// pending is the tail of the most recent convolved block, added to the
	// head of the next one.
	pending *fft.BufferT[F]
}

// Complex is the float64 specialization of ComplexT.
type Complex = ComplexT[float64]

// Complex32 is the float32 specialization of ComplexT.
type Complex32 = ComplexT[float32]

// NewComplexT creates a convolution processing size complex samples per
// block. 2*size must be a power of two.
func NewComplexT[F algofft.Float](size int) (*ComplexT[F], error) {
	e, err := newEngine[F](size)
	if err != nil {
		return nil, err
	}

	return &ComplexT[F]{
		e:        e,
		preTime:  fft.NewBufferT[F](e.fftSize),
		postTime: fft.NewBufferT[F](e.fftSize),
		pending:  fft.NewBufferT[F](e.size),
	}, nil
}

// NewComplex creates a float64 convolution of size complex samples per block.
func NewComplex(size int) (*Complex, error) {
	return NewComplexT[float64](size)
}

// NewComplex32 creates a float32 convolution of size complex samples per block.
func NewComplex32(size int) (*Complex32, error) {
	return NewComplexT[float32](size)
}

// NewComplexFromT creates a convolution of the same size as other, sharing
// its FFT lookup tables and default window but carrying fresh per-stream
// state. Useful for convolving several equal-sized channels side by side.
func NewComplexFromT[F algofft.Float](other *ComplexT[F]) *ComplexT[F] {
	e := newEngineFrom(other.e)

	return &ComplexT[F]{
		e:        e,
		preTime:  fft.NewBufferT[F](e.fftSize),
		postTime: fft.NewBufferT[F](e.fftSize),
		pending:  fft.NewBufferT[F](e.size),
	}
}

// NewComplexFrom creates a float64 convolution sharing tables with other.
func NewComplexFrom(other *Complex) *Complex {
	return NewComplexFromT(other)
}

// Size returns the number of complex samples processed per Convolve pass.
func (c *ComplexT[F]) Size() int { return c.e.size }

// FFTSize returns the internal FFT size (twice the block size).
func (c *ComplexT[F]) FFTSize() int { return c.e.fftSize }

// WindowSize returns the usable impulse-response length of a conditioned
// kernel, Size()+1.
func (c *ComplexT[F]) WindowSize() int { return c.e.windowSize }

// NewFrequencyResponse creates an identity frequency response bound to this
// convolution.
func (c *ComplexT[F]) NewFrequencyResponse() *FrequencyResponseT[F] {
	return newFrequencyResponse(c.e)
}

// NewFilterKernel creates an identity filter kernel bound to this
// convolution.
func (c *ComplexT[F]) NewFilterKernel() *FilterKernelT[F] {
	return newFilterKernel(c.e)
}

// SetFilterKernel makes the kernel's spectrum the active frequency response
// for all subsequent blocks. The change is not crossfaded; a discontinuity
// at the block boundary is acceptable.
//
// The kernel's imaginary samples are forced to zero first: a complex
// convolution usually carries two independent real streams in its two
// channels, and only a real-valued kernel filters both without
// cross-coupling them.
func (c *ComplexT[F]) SetFilterKernel(k *FilterKernelT[F]) error {
	if k.owner != c.e {
		return fmt.Errorf("%w: Complex.SetFilterKernel", ErrWrongConvolution)
	}

	k.FillImag(0)
	return c.e.setFilterKernel(k)
}

// FilterKernel returns a fresh kernel reflecting the active frequency
// response.
func (c *ComplexT[F]) FilterKernel() (*FilterKernelT[F], error) {
	return c.e.filterKernel()
}

// SetObserver registers an observer for subsequent Convolve passes, or
// removes it when nil.
func (c *ComplexT[F]) SetObserver(o *ObserverT[F]) {
	c.e.observer = o
}

// Convolve convolves one block of Size() complex samples with the active
// filter. All arrays must be at least Size() long; samples beyond that are
// ignored and the input arrays are left unmodified.
func (c *ComplexT[F]) Convolve(inReal, inImag, outReal, outImag []F) error {
	n := c.e.size
	if len(inReal) < n || len(inImag) < n {
		return fmt.Errorf("%w: Convolve input needs %d samples", ErrShortBlock, n)
	}
	if len(outReal) < n || len(outImag) < n {
		return fmt.Errorf("%w: Convolve output needs %d samples", ErrShortBlock, n)
	}

	copy(c.preTime.Real[:n], inReal[:n])
	copy(c.preTime.Imag[:n], inImag[:n])

	if err := c.e.convolveFreqDomain(c.preTime, c.postTime); err != nil {
		return err
	}

	overlapAdd(outReal, c.postTime.Real, c.pending.Real, n)
	overlapAdd(outImag, c.postTime.Imag, c.pending.Imag, n)

	return nil
}

// ConvolveBuffer is Convolve over whole buffers.
func (c *ComplexT[F]) ConvolveBuffer(in, out *fft.BufferT[F]) error {
	n := c.e.size
	if in.Size < n {
		return fmt.Errorf("%w: Convolve input needs %d samples", ErrShortBlock, n)
	}
	if out.Size < n {
		return fmt.Errorf("%w: Convolve output needs %d samples", ErrShortBlock, n)
	}

	return c.Convolve(in.Real, in.Imag, out.Real, out.Imag)
}

// overlapAdd emits post[:n] plus the pending tail into out and retains
// post[n:2n] as the new tail.
func overlapAdd[F algofft.Float](out, post, pending []F, n int) {
	if o, ok := any(out).([]float64); ok {
		p := any(post).([]float64)
		tail := any(pending).([]float64)

		copy(o[:n], p[:n])
		vecmath.AddBlockInPlace(o[:n], tail[:n])
		copy(tail[:n], p[n:2*n])
		return
	}

	for i := 0; i < n; i++ {
		out[i] = post[i] + pending[i]
		pending[i] = post[i+n]
	}
}

// Drain retrieves and clears the pending tail, which would have been
// overlap-added during the next Convolve. Useful at end-of-stream: the
// complete convolved signal is always input length + kernel length - 1
// samples long, and Drain yields the remainder past the last full block.
func (c *ComplexT[F]) Drain(outReal, outImag []F) error {
	n := c.e.size
	if len(outReal) < n || len(outImag) < n {
		return fmt.Errorf("%w: Drain output needs %d samples", ErrShortBlock, n)
	}

	copy(outReal[:n], c.pending.Real)
	copy(outImag[:n], c.pending.Imag)
	c.pending.Fill(0)

	return nil
}

// DrainBuffer is Drain into a buffer.
func (c *ComplexT[F]) DrainBuffer(out *fft.BufferT[F]) error {
	if out.Size < c.e.size {
		return fmt.Errorf("%w: Drain output needs %d samples", ErrShortBlock, c.e.size)
	}

	return c.Drain(out.Real, out.Imag)
}

// Flush discards the pending tail. The next Convolve starts from scratch.
func (c *ComplexT[F]) Flush() {
	c.pending.Fill(0)
}

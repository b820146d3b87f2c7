package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-convolution/dsp/fft"
	"github.com/cwbudde/algo-convolution/dsp/window"
)

// engineT holds the state shared by the real and complex convolution
// variants: the FFT engine, the default kernel window, the active frequency
// response, and the two spectrum scratch buffers. The variants differ only
// in how they pack input blocks and unpack convolved output, so everything
// else lives here.
//
// This is deliberately not an exported interface; the two variants have
// distinct block shapes and are never dispatched polymorphically.
type engineT[F algofft.Float] struct {
	// size is the number of complex samples per convolve pass. The FFT runs
	// at twice that, leaving room for size input samples plus a
	// windowSize-long impulse response minus one, which keeps each block
	// convolution linear.
	size       int
	fftSize    int
	windowSize int

	transform     *fft.TransformT[F]
	defaultWindow *window.WindowT[F]

	// response is the spectrum every block is multiplied with. Identity
	// until a kernel is set.
	response *FrequencyResponseT[F]

	preSpectrum  *fft.BufferT[F]
	postSpectrum *fft.BufferT[F]

	observer *ObserverT[F]
}

// newEngine creates the shared state for a convolution of size complex
// samples per block. 2*size must be a power of two.
func newEngine[F algofft.Float](size int) (*engineT[F], error) {
	e := &engineT[F]{
		size:       size,
		fftSize:    size * 2,
		windowSize: size + 1,
	}

	transform, err := fft.NewTransformT[F](e.fftSize, fft.ScaleInverse)
	if err != nil {
		return nil, fmt.Errorf("%w: block size %d", ErrInvalidSize, size)
	}
	e.transform = transform

	e.defaultWindow, err = window.NewT[F](e.windowSize, window.Blackman)
	if err != nil {
		return nil, fmt.Errorf("conv: default window: %w", err)
	}

	e.response = newFrequencyResponse(e)
	e.preSpectrum = fft.NewBufferT[F](e.fftSize)
	e.postSpectrum = fft.NewBufferT[F](e.fftSize)

	return e, nil
}

// newEngineFrom creates fresh per-stream state while sharing the FFT lookup
// tables and the default window of an existing engine. Useful when several
// equal-sized streams (multi-channel audio) are convolved side by side.
func newEngineFrom[F algofft.Float](other *engineT[F]) *engineT[F] {
	e := &engineT[F]{
		size:          other.size,
		fftSize:       other.fftSize,
		windowSize:    other.windowSize,
		transform:     other.transform,
		defaultWindow: other.defaultWindow,
	}

	e.response = newFrequencyResponse(e)
	e.preSpectrum = fft.NewBufferT[F](e.fftSize)
	e.postSpectrum = fft.NewBufferT[F](e.fftSize)

	return e
}

// convolveFreqDomain multiplies the block in inTime with the active
// frequency response and writes the convolved block to outTime.
//
// inTime must hold time-domain samples in its first half with the second
// half zero-padded; both buffers are fftSize long. The observer callbacks
// fire around the spectral multiply with live references to the internal
// buffers.
func (e *engineT[F]) convolveFreqDomain(inTime, outTime *fft.BufferT[F]) error {
	if err := e.transform.TransformBuffer(inTime, e.preSpectrum, false); err != nil {
		return fmt.Errorf("conv: forward transform: %w", err)
	}

	if e.observer != nil && e.observer.OnPreConvolve != nil {
		e.observer.OnPreConvolve(inTime, e.preSpectrum)
	}

	e.postSpectrum.Cross(e.preSpectrum, e.response.BufferT)

	if err := e.transform.TransformBuffer(e.postSpectrum, outTime, true); err != nil {
		return fmt.Errorf("conv: inverse transform: %w", err)
	}

	if e.observer != nil && e.observer.OnPostConvolve != nil {
		e.observer.OnPostConvolve(outTime, e.postSpectrum)
	}

	return nil
}

// setFilterKernel stores the kernel's spectrum as the active frequency
// response.
func (e *engineT[F]) setFilterKernel(k *FilterKernelT[F]) error {
	if k.owner != e {
		return fmt.Errorf("%w: SetFilterKernel", ErrWrongConvolution)
	}
	return e.response.SetFilterKernel(k)
}

// filterKernel returns a fresh kernel reflecting the active frequency
// response.
func (e *engineT[F]) filterKernel() (*FilterKernelT[F], error) {
	k := newFilterKernel(e)
	if err := k.SetFrequencyResponse(e.response); err != nil {
		return nil, err
	}
	return k, nil
}

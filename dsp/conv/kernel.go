package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-convolution/dsp/fft"
	"github.com/cwbudde/algo-convolution/dsp/window"
)

// FilterKernelT is a complex buffer holding the impulse response a
// convolution multiplies its blocks with. It is created by the convolution
// it belongs to (NewFilterKernel) and spans the full FFT size.
//
// A fresh kernel is the identity delta function: 1 at sample 0, zero
// elsewhere. Callers either write an impulse response straight into the
// sample arrays or derive one from a frequency response with
// SetFrequencyResponse, which also conditions the response against aliasing
// and circular-convolution artifacts.
type FilterKernelT[F algofft.Float] struct {
	*fft.BufferT[F]

	owner *engineT[F]
	win   *window.WindowT[F]
}

// FilterKernel is the float64 specialization of FilterKernelT.
type FilterKernel = FilterKernelT[float64]

// FilterKernel32 is the float32 specialization of FilterKernelT.
type FilterKernel32 = FilterKernelT[float32]

func newFilterKernel[F algofft.Float](e *engineT[F]) *FilterKernelT[F] {
	k := &FilterKernelT[F]{
		BufferT: fft.NewBufferT[F](e.fftSize),
		owner:   e,
		win:     e.defaultWindow,
	}

	// Identity delta function
	k.Real[0] = 1

	return k
}

// SetWindow replaces the window used to fade out the impulse response in
// SetFrequencyResponse. The window's size must equal the convolution's
// window size.
func (k *FilterKernelT[F]) SetWindow(w *window.WindowT[F]) error {
	if w.Size() != k.owner.windowSize {
		return fmt.Errorf("%w: got %d, want %d", ErrWindowSize, w.Size(), k.owner.windowSize)
	}

	k.win = w
	return nil
}

// Window returns the window currently used by SetFrequencyResponse.
func (k *FilterKernelT[F]) Window() *window.WindowT[F] { return k.win }

// SetFrequencyResponse updates the kernel's impulse response to reflect the
// given frequency response. The response must belong to the same convolution
// instance as this kernel.
//
// The inverse transform leaves the impulse response centred around sample 0,
// wrapping around the end of the buffer. It is shifted so that it sits
// centred at a quarter of the buffer, faded to zero at its edges by the
// kernel's window, and the remaining samples are zeroed. The conditioned
// impulse response spans at most the window size, half the FFT size plus
// one, so each block convolution stays linear, and it carries no wrap-around
// energy that would
// alias into the passband.
func (k *FilterKernelT[F]) SetFrequencyResponse(fr *FrequencyResponseT[F]) error {
	if fr.owner != k.owner {
		return fmt.Errorf("%w: FilterKernel.SetFrequencyResponse", ErrWrongConvolution)
	}

	if err := k.owner.transform.TransformBuffer(fr.BufferT, k.BufferT, true); err != nil {
		return fmt.Errorf("conv: response transform: %w", err)
	}

	// Centre the impulse response in the first half of the buffer.
	k.Shift(-k.Size / 4)

	if err := k.win.ApplyBuffer(k.BufferT); err != nil {
		return fmt.Errorf("conv: kernel window: %w", err)
	}
	k.FillRealRange(k.win.Size(), k.Size, 0)
	k.FillImagRange(k.win.Size(), k.Size, 0)

	return nil
}

package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-convolution/dsp/fft"
)

// FrequencyResponseT is a complex buffer representing the desired frequency
// response of a convolution. It is created by the convolution it belongs to
// (NewFrequencyResponse) and spans the full FFT size, so bins [0, FFTSize)
// cover DC through the negative frequencies; all of the buffer's
// frequency-domain edit operations apply.
//
// A fresh response is the identity: 1+0i in every bin.
type FrequencyResponseT[F algofft.Float] struct {
	*fft.BufferT[F]

	owner *engineT[F]
}

// FrequencyResponse is the float64 specialization of FrequencyResponseT.
type FrequencyResponse = FrequencyResponseT[float64]

// FrequencyResponse32 is the float32 specialization of FrequencyResponseT.
type FrequencyResponse32 = FrequencyResponseT[float32]

func newFrequencyResponse[F algofft.Float](e *engineT[F]) *FrequencyResponseT[F] {
	fr := &FrequencyResponseT[F]{
		BufferT: fft.NewBufferT[F](e.fftSize),
		owner:   e,
	}

	// Identity response
	fr.FillReal(1)

	return fr
}

// SetFilterKernel makes this response reflect the given kernel's current
// spectrum via a forward transform. The kernel must belong to the same
// convolution instance as this response.
func (fr *FrequencyResponseT[F]) SetFilterKernel(k *FilterKernelT[F]) error {
	if k.owner != fr.owner {
		return fmt.Errorf("%w: FrequencyResponse.SetFilterKernel", ErrWrongConvolution)
	}

	if err := fr.owner.transform.TransformBuffer(k.BufferT, fr.BufferT, false); err != nil {
		return fmt.Errorf("conv: kernel transform: %w", err)
	}
	return nil
}

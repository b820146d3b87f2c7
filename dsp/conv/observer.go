package conv

import (
	algofft "github.com/MeKo-Christian/algo-fft"

	"github.com/cwbudde/algo-convolution/dsp/fft"
)

// ObserverT receives callbacks during each convolve pass. Either callback
// may be nil.
//
// The buffers passed to the callbacks are the engine's live internal
// buffers, not copies, and mutating them is allowed:
//
//   - OnPreConvolve fires after the forward transform and before the
//     spectral multiply. timeDomain holds the zero-padded input block,
//     spectrum its transform. Writing into spectrum (or into the underlying
//     frequency response) changes this block's output.
//   - OnPostConvolve fires after the inverse transform. timeDomain holds the
//     convolved block about to be overlap-added; writing into it changes the
//     emitted samples. spectrum holds the post-multiply spectrum, useful for
//     analysis but without effect on this block.
//
// Whatever state the callbacks leave behind is taken as authoritative; no
// validation happens after they return.
type ObserverT[F algofft.Float] struct {
	OnPreConvolve  func(timeDomain, spectrum *fft.BufferT[F])
	OnPostConvolve func(timeDomain, spectrum *fft.BufferT[F])
}

// Observer is the float64 specialization of ObserverT.
type Observer = ObserverT[float64]

// Observer32 is the float32 specialization of ObserverT.
type Observer32 = ObserverT[float32]

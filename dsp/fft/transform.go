package fft

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Scale selects how a transform distributes the 1/N normalisation factor
// between the forward and inverse directions.
type Scale int

const (
	// ScaleNone applies no scaling; the raw transform sums are returned.
	ScaleNone Scale = iota

	// ScaleForward applies 1/N on the forward transform only.
	ScaleForward

	// ScaleInverse applies 1/N on the inverse transform only.
	ScaleInverse

	// ScaleBoth applies 1/sqrt(N) symmetrically on both directions.
	ScaleBoth
)

// String returns the scale mode name.
func (s Scale) String() string {
	switch s {
	case ScaleNone:
		return "none"
	case ScaleForward:
		return "forward"
	case ScaleInverse:
		return "inverse"
	case ScaleBoth:
		return "both"
	default:
		return fmt.Sprintf("Scale(%d)", int(s))
	}
}

// TransformT is a fixed-size radix-2 decimation-in-time FFT engine.
//
// The transform size and scaling mode are set at construction and never
// change. The engine holds three lookup tables: the bit-reversed index
// permutation and the real and imaginary halves of the twiddle factors.
// The tables are read-only after construction, so a single engine may be
// shared by any number of goroutines.
//
// The type parameter F selects the element precision; the Transform and
// Transform32 aliases name the float64 and float32 instantiations.
type TransformT[F algofft.Float] struct {
	size     int
	halfSize int
	log2Size int

	scale       Scale
	scaleFactor float64

	reversed    []int
	twiddleReal []F
	twiddleImag []F
}

// Transform is the float64 specialization of TransformT.
type Transform = TransformT[float64]

// Transform32 is the float32 specialization of TransformT.
type Transform32 = TransformT[float32]

// NewTransformT creates an FFT engine for the given size and scaling mode.
// The size must be a power of two.
func NewTransformT[F algofft.Float](size int, scale Scale) (*TransformT[F], error) {
	if !isPowerOfTwo(size) {
		return nil, fmt.Errorf("%w: got %d", ErrNotPowerOfTwo, size)
	}

	t := &TransformT[F]{
		size:     size,
		halfSize: size / 2,
		log2Size: log2(size),
		scale:    scale,
	}

	switch scale {
	case ScaleForward, ScaleInverse:
		t.scaleFactor = 1 / float64(size)
	case ScaleBoth:
		t.scaleFactor = 1 / math.Sqrt(float64(size))
	default:
		t.scaleFactor = 1
	}

	t.reversed = make([]int, size)
	for i := 0; i < size; i++ {
		reversed := 0
		for j, k := 0, t.log2Size-1; j < t.log2Size; j, k = j+1, k-1 {
			if i&(1<<j) != 0 {
				reversed |= 1 << k
			}
		}
		t.reversed[i] = reversed
	}

	t.twiddleReal = make([]F, t.halfSize)
	t.twiddleImag = make([]F, t.halfSize)
	for i := 0; i < t.halfSize; i++ {
		angle := -2 * math.Pi * float64(i) / float64(size)
		t.twiddleReal[i] = F(math.Cos(angle))
		t.twiddleImag[i] = F(math.Sin(angle))
	}

	return t, nil
}

// NewTransform creates a float64 FFT engine for the given size and scaling
// mode. The size must be a power of two.
func NewTransform(size int, scale Scale) (*Transform, error) {
	return NewTransformT[float64](size, scale)
}

// NewTransform32 creates a float32 FFT engine for the given size and scaling
// mode. The size must be a power of two.
func NewTransform32(size int, scale Scale) (*Transform32, error) {
	return NewTransformT[float32](size, scale)
}

// Size returns the number of complex samples processed per transform.
func (t *TransformT[F]) Size() int { return t.size }

// Scale returns the scaling mode configured at construction.
func (t *TransformT[F]) Scale() Scale { return t.scale }

// ScaleFactor returns the normalisation factor implied by the scaling mode.
func (t *TransformT[F]) ScaleFactor() float64 { return t.scaleFactor }

// Transform computes the DFT of the complex signal in inReal/inImag and
// stores the result in outReal/outImag. With inverse set, the inverse DFT is
// computed instead. All arrays must be at least Size long, and an input array
// may not be the same array as its output counterpart.
func (t *TransformT[F]) Transform(inReal, inImag, outReal, outImag []F, inverse bool) error {
	if len(inReal) < t.size || len(inImag) < t.size ||
		len(outReal) < t.size || len(outImag) < t.size {
		return fmt.Errorf("%w: transform needs %d samples", ErrShortArray, t.size)
	}
	if &inReal[0] == &outReal[0] {
		return fmt.Errorf("%w: inReal == outReal", ErrAliasedArrays)
	}
	if &inImag[0] == &outImag[0] {
		return fmt.Errorf("%w: inImag == outImag", ErrAliasedArrays)
	}

	var scaleFactor F
	switch t.scale {
	case ScaleForward:
		if inverse {
			scaleFactor = 1
		} else {
			scaleFactor = F(t.scaleFactor)
		}
	case ScaleInverse:
		if inverse {
			scaleFactor = F(t.scaleFactor)
		} else {
			scaleFactor = 1
		}
	default:
		scaleFactor = F(t.scaleFactor)
	}

	// Bit-reversed decomposition, fused with the only scaling multiply of
	// the whole transform.
	for i := 0; i < t.size; i++ {
		reversed := t.reversed[i]
		outReal[i] = inReal[reversed] * scaleFactor
		outImag[i] = inImag[reversed] * scaleFactor
	}

	// Twiddle factors are conjugated for the inverse transform.
	var sign F = 1
	if inverse {
		sign = -1
	}

	for stage := 0; stage < t.log2Size; stage++ {
		n1 := 1 << stage
		n2 := n1 * 2
		twiddleStep := 1 << (t.log2Size - stage - 1)

		for j, twiddle := 0, 0; j < n1; j, twiddle = j+1, twiddle+twiddleStep {
			twiddleReal := t.twiddleReal[twiddle]
			twiddleImag := t.twiddleImag[twiddle] * sign

			for k := j; k < t.size; k += n2 {
				k2 := k + n1

				tempR := twiddleReal*outReal[k2] - twiddleImag*outImag[k2]
				tempI := twiddleImag*outReal[k2] + twiddleReal*outImag[k2]

				outReal[k2] = outReal[k] - tempR
				outImag[k2] = outImag[k] - tempI

				outReal[k] += tempR
				outImag[k] += tempI
			}
		}
	}

	return nil
}

// TransformBuffer is Transform over whole buffers.
func (t *TransformT[F]) TransformBuffer(in, out *BufferT[F], inverse bool) error {
	return t.Transform(in.Real, in.Imag, out.Real, out.Imag, inverse)
}

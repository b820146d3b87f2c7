// Package window provides precomputed amplitude-envelope windows for
// impulse-response shaping and spectral analysis.
//
// A window is constructed once from a Shape, which computes the coefficient
// vector for a given length; applying the window is an in-place elementwise
// multiply. New window shapes plug in by supplying a Shape function, either
// directly to New or through the name registry.
package window

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-convolution/dsp/fft"
)

// Shape computes the coefficients of a window of the given length.
// Coefficients must be non-negative and depend only on index and length.
type Shape func(length int) []float64

// WindowT holds precomputed window coefficients of a fixed size.
//
// The type parameter F selects the element precision; the Window and
// Window32 aliases name the float64 and float32 instantiations. Coefficients
// never change after construction, so a window may be shared between
// goroutines.
type WindowT[F algofft.Float] struct {
	coeffs []F
}

// Window is the float64 specialization of WindowT.
type Window = WindowT[float64]

// Window32 is the float32 specialization of WindowT.
type Window32 = WindowT[float32]

// NewT creates a window of the given size from shape.
func NewT[F algofft.Float](size int, shape Shape) (*WindowT[F], error) {
	if size <= 0 {
		return nil, fmt.Errorf("window: size must be positive, got %d", size)
	}
	if shape == nil {
		return nil, fmt.Errorf("window: shape must not be nil")
	}

	raw := shape(size)
	if len(raw) != size {
		return nil, fmt.Errorf("window: shape returned %d coefficients, want %d", len(raw), size)
	}

	coeffs := make([]F, size)
	for i, v := range raw {
		coeffs[i] = F(v)
	}
	return &WindowT[F]{coeffs: coeffs}, nil
}

// New creates a float64 window of the given size from shape.
func New(size int, shape Shape) (*Window, error) {
	return NewT[float64](size, shape)
}

// New32 creates a float32 window of the given size from shape.
func New32(size int, shape Shape) (*Window32, error) {
	return NewT[float32](size, shape)
}

// Size returns the number of samples processed per Apply pass.
func (w *WindowT[F]) Size() int { return len(w.coeffs) }

// Coefficients returns the precomputed coefficient vector.
// Callers must treat the returned slice as read-only.
func (w *WindowT[F]) Coefficients() []F { return w.coeffs }

// Apply multiplies the first Size samples of real by the window in place.
func (w *WindowT[F]) Apply(real []F) error {
	if len(real) < len(w.coeffs) {
		return fmt.Errorf("window: apply needs %d samples, got %d", len(w.coeffs), len(real))
	}

	w.mul(real)
	return nil
}

// ApplyComplex multiplies the first Size samples of real and imag by the
// window in place.
func (w *WindowT[F]) ApplyComplex(real, imag []F) error {
	if len(real) < len(w.coeffs) || len(imag) < len(w.coeffs) {
		return fmt.Errorf("window: apply needs %d samples, got %d/%d", len(w.coeffs), len(real), len(imag))
	}

	w.mul(real)
	w.mul(imag)
	return nil
}

// ApplyBuffer multiplies the first Size samples of both channels of buf by
// the window in place.
func (w *WindowT[F]) ApplyBuffer(buf *fft.BufferT[F]) error {
	return w.ApplyComplex(buf.Real, buf.Imag)
}

func (w *WindowT[F]) mul(samples []F) {
	n := len(w.coeffs)

	// vecmath covers the float64 instantiation; other precisions take the
	// scalar loop.
	if s, ok := any(samples).([]float64); ok {
		vecmath.MulBlockInPlace(s[:n], any(w.coeffs).([]float64))
		return
	}

	for i := 0; i < n; i++ {
		samples[i] *= w.coeffs[i]
	}
}

// Analysis holds summary properties of a coefficient vector.
type Analysis struct {
	CoherentGain float64
	ENBW         float64
}

// Analyze returns the coherent gain and equivalent noise bandwidth (in bins)
// of a coefficient vector.
func Analyze(coeffs []float64) Analysis {
	sum := 0.0
	sumSquares := 0.0
	for _, c := range coeffs {
		sum += c
		sumSquares += c * c
	}

	n := float64(len(coeffs))
	a := Analysis{}
	if n > 0 {
		a.CoherentGain = sum / n
	}
	if sum != 0 {
		a.ENBW = n * sumSquares / (sum * sum)
	}
	return a
}

// Blackman computes the coefficients of a Blackman window.
func Blackman(length int) []float64 {
	const (
		a = 7938.0 / 18608.0
		b = 9240.0 / 18608.0
		c = 1430.0 / 18608.0
	)

	return cosineSum(length, func(phase float64) float64 {
		return a - b*math.Cos(phase) + c*math.Cos(2*phase)
	})
}

// Hann computes the coefficients of a Hann window.
func Hann(length int) []float64 {
	return cosineSum(length, func(phase float64) float64 {
		return 0.5 - 0.5*math.Cos(phase)
	})
}

// Hamming computes the coefficients of a Hamming window.
func Hamming(length int) []float64 {
	return cosineSum(length, func(phase float64) float64 {
		return 0.54 - 0.46*math.Cos(phase)
	})
}

// cosineSum evaluates eval at the symmetric phase positions 2*pi*i/(length-1).
func cosineSum(length int, eval func(phase float64) float64) []float64 {
	out := make([]float64, length)
	if length == 1 {
		out[0] = 1
		return out
	}

	m := float64(length - 1)
	for i := range out {
		out[i] = eval(2 * math.Pi * float64(i) / m)
	}
	return out
}

// Rectangular computes the coefficients of a rectangular window.
func Rectangular(length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = 1
	}
	return out
}

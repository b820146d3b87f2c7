package fft

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// BufferT stores a fixed number of complex samples as two parallel arrays.
//
// The Real and Imag arrays are exported so that external signal sources and
// sinks (audio converters, file decoders) can read and write samples without
// an accessor in between. Both arrays always have length Size; no operation
// ever reallocates them.
//
// The type parameter F selects the element precision; the Buffer and
// Buffer32 aliases name the float64 and float32 instantiations.
type BufferT[F algofft.Float] struct {
	Size int
	Real []F
	Imag []F
}

// Buffer is the float64 specialization of BufferT.
type Buffer = BufferT[float64]

// Buffer32 is the float32 specialization of BufferT.
type Buffer32 = BufferT[float32]

// NewBufferT creates a zero-filled buffer of size complex samples.
func NewBufferT[F algofft.Float](size int) *BufferT[F] {
	return &BufferT[F]{
		Size: size,
		Real: make([]F, size),
		Imag: make([]F, size),
	}
}

// NewBuffer creates a zero-filled float64 buffer of size complex samples.
func NewBuffer(size int) *Buffer {
	return NewBufferT[float64](size)
}

// NewBuffer32 creates a zero-filled float32 buffer of size complex samples.
func NewBuffer32(size int) *Buffer32 {
	return NewBufferT[float32](size)
}

// WrapT creates a buffer around the given array references without copying.
// Changes made to the arrays from outside the buffer are reflected here.
// The arrays must have equal length.
func WrapT[F algofft.Float](real, imag []F) (*BufferT[F], error) {
	if len(real) != len(imag) {
		return nil, fmt.Errorf("%w: real %d, imag %d", ErrLengthMismatch, len(real), len(imag))
	}
	return &BufferT[F]{Size: len(real), Real: real, Imag: imag}, nil
}

// Wrap creates a float64 buffer around the given array references.
func Wrap(real, imag []float64) (*Buffer, error) {
	return WrapT(real, imag)
}

// Clone returns a deep copy of the buffer.
func (b *BufferT[F]) Clone() *BufferT[F] {
	c := NewBufferT[F](b.Size)
	copy(c.Real, b.Real)
	copy(c.Imag, b.Imag)
	return c
}

// Equal reports whether both buffers hold elementwise identical samples.
func (b *BufferT[F]) Equal(other *BufferT[F]) bool {
	if b.Size != other.Size {
		return false
	}
	for i := 0; i < b.Size; i++ {
		if b.Real[i] != other.Real[i] || b.Imag[i] != other.Imag[i] {
			return false
		}
	}
	return true
}

// Squared returns the squared magnitude of the sample at index.
func (b *BufferT[F]) Squared(index int) F {
	return b.Real[index]*b.Real[index] + b.Imag[index]*b.Imag[index]
}

// Magnitude returns the magnitude of the sample at index.
func (b *BufferT[F]) Magnitude(index int) F {
	return F(math.Sqrt(float64(b.Squared(index))))
}

// Phase returns the phase in radians of the sample at index.
func (b *BufferT[F]) Phase(index int) F {
	return F(math.Atan2(float64(b.Imag[index]), float64(b.Real[index])))
}

// Fill stores value in every real and imaginary element.
func (b *BufferT[F]) Fill(value F) {
	b.FillReal(value)
	b.FillImag(value)
}

// FillRange stores value in both real and imaginary elements of
// [fromIndex, toIndex).
func (b *BufferT[F]) FillRange(fromIndex, toIndex int, value F) {
	b.FillRealRange(fromIndex, toIndex, value)
	b.FillImagRange(fromIndex, toIndex, value)
}

// FillReal stores value in every real element.
func (b *BufferT[F]) FillReal(value F) {
	b.FillRealRange(0, b.Size, value)
}

// FillRealRange stores value in the real elements of [fromIndex, toIndex).
func (b *BufferT[F]) FillRealRange(fromIndex, toIndex int, value F) {
	for i := fromIndex; i < toIndex; i++ {
		b.Real[i] = value
	}
}

// FillImag stores value in every imaginary element.
func (b *BufferT[F]) FillImag(value F) {
	b.FillImagRange(0, b.Size, value)
}

// FillImagRange stores value in the imaginary elements of [fromIndex, toIndex).
func (b *BufferT[F]) FillImagRange(fromIndex, toIndex int, value F) {
	for i := fromIndex; i < toIndex; i++ {
		b.Imag[i] = value
	}
}

// Cross stores the elementwise complex product of left and right in this
// buffer. The receiver may be used as either operand.
func (b *BufferT[F]) Cross(left, right *BufferT[F]) {
	for i := 0; i < b.Size; i++ {
		lr := left.Real[i]
		li := left.Imag[i]
		rr := right.Real[i]
		ri := right.Imag[i]

		b.Real[i] = lr*rr - li*ri
		b.Imag[i] = lr*ri + li*rr
	}
}

// Swap exchanges real and imaginary values in every sample.
func (b *BufferT[F]) Swap() {
	for i := 0; i < b.Size; i++ {
		b.Real[i], b.Imag[i] = b.Imag[i], b.Real[i]
	}
}

// Shift circularly shifts the buffer by delta indices, so that
// new[i] = old[i+delta]. Positive delta shifts to the left, negative to the
// right. Deltas of any magnitude are normalised modulo Size.
func (b *BufferT[F]) Shift(delta int) {
	delta %= b.Size
	if delta == 0 {
		return
	}

	tempR := make([]F, b.Size)
	tempI := make([]F, b.Size)
	copy(tempR, b.Real)
	copy(tempI, b.Imag)

	for i := 0; i < b.Size; i++ {
		j := i + delta
		if j >= b.Size {
			j -= b.Size
		}
		if j < 0 {
			j += b.Size
		}

		b.Real[i] = tempR[j]
		b.Imag[i] = tempI[j]
	}
}

package fft

import (
	"fmt"
	"math"
)

// This file implements the frequency-domain view of a buffer: bin 0 is DC,
// bin Size/2 is the Nyquist frequency, bins (0, Size/2) are the positive
// frequencies and bins (Size/2, Size) mirror them as negative frequencies.
// All single-bin setters keep the buffer Hermitian: real parts get even
// symmetry, imaginary parts odd symmetry. DC and Nyquist have no mirror.

// SetBin stores the given real and imaginary values in the bin at the given
// index, maintaining Hermitian symmetry with the mirrored bin.
func (b *BufferT[F]) SetBin(bin int, realValue, imagValue F) {
	b.SetBinReal(bin, realValue)
	b.SetBinImag(bin, imagValue)
}

// SetBinReal stores value in the real part of the bin at the given index.
// The mirrored bin receives the same value (even symmetry).
func (b *BufferT[F]) SetBinReal(bin int, value F) {
	b.Real[bin] = value

	if bin != 0 && bin != b.Size/2 {
		b.Real[b.Size-bin] = value
	}
}

// SetBinImag stores value in the imaginary part of the bin at the given
// index. The mirrored bin receives the negated value (odd symmetry).
func (b *BufferT[F]) SetBinImag(bin int, value F) {
	b.Imag[bin] = value

	if bin != 0 && bin != b.Size/2 {
		b.Imag[b.Size-bin] = -value
	}
}

// SetBinPolar is SetBin with the value given in polar notation.
func (b *BufferT[F]) SetBinPolar(bin int, magnitude, phase F) {
	m := float64(magnitude)
	p := float64(phase)
	b.SetBin(bin, F(m*math.Cos(p)), F(m*math.Sin(p)))
}

// BinEnergy returns the energy at bin, summing the contributions of the
// positive and the mirrored negative frequency. The DC and Nyquist bins
// inherently contribute only once.
func (b *BufferT[F]) BinEnergy(bin int) F {
	if bin == 0 || bin == b.Size/2 {
		return b.Squared(bin)
	}
	return b.Squared(bin) + b.Squared(b.Size-bin)
}

// BandEnergy returns the energy contained in the band between startFreq and
// endFreq, both expressed as fractions of the sample rate in [-0.5, 0.5].
// Both frequencies must have the same sign; the two sidebands are addressed
// separately. The band limit bins contribute proportionally to how close the
// exact band edge falls to their centre.
func (b *BufferT[F]) BandEnergy(startFreq, endFreq float64) (F, error) {
	if (startFreq < 0) != (endFreq < 0) {
		return 0, fmt.Errorf("%w: start %v, end %v", ErrBandOverlap, startFreq, endFreq)
	}

	// Negative bands mirror the positive ones; BinEnergy sums both sides.
	startFreq = math.Abs(startFreq)
	endFreq = math.Abs(endFreq)

	if endFreq < startFreq {
		startFreq, endFreq = endFreq, startFreq
	}
	if endFreq > 0.5 {
		return 0, fmt.Errorf("%w: end %v", ErrBeyondNyquist, endFreq)
	}

	startBin, startContribution := b.binContribution(startFreq)
	endBin, endContribution := b.binContribution(endFreq)

	result := float64(b.BinEnergy(startBin)) * startContribution
	result += float64(b.BinEnergy(endBin)) * endContribution

	for i := startBin + 1; i < endBin; i++ {
		result += float64(b.BinEnergy(i))
	}

	return F(result), nil
}

// BandEnergyHz is BandEnergy with band limits in physical units.
func (b *BufferT[F]) BandEnergyHz(sampleRate, startFreq, endFreq float64) (F, error) {
	return b.BandEnergy(startFreq/sampleRate, endFreq/sampleRate)
}

// binContribution maps a positive fractional frequency to its nearest bin
// and the weight of that bin's contribution at a band edge.
func (b *BufferT[F]) binContribution(freq float64) (bin int, contribution float64) {
	binFraction := freq * float64(b.Size)
	bin = int(math.Round(binFraction))
	remainder := math.Abs(binFraction - float64(bin))
	return bin, 1 - remainder
}

// FillBand fills the band between (and including) startFreq and endFreq with
// the given real and imaginary values. Frequencies are fractions of the
// sample rate in [-0.5, 0.5] and must have the same sign. Symmetry between
// positive and negative frequencies is handled automatically; for a negative
// band the imaginary value is negated (odd symmetry). The band limit bins
// blend the new value against their previous content in proportion to where
// the exact band edge falls; interior bins are overwritten.
func (b *BufferT[F]) FillBand(startFreq, endFreq float64, realValue, imagValue F) error {
	return b.fillBand(startFreq, endFreq, realValue, imagValue, true, true)
}

// FillBandReal is FillBand touching only the real parts.
func (b *BufferT[F]) FillBandReal(startFreq, endFreq float64, value F) error {
	return b.fillBand(startFreq, endFreq, value, 0, true, false)
}

// FillBandImag is FillBand touching only the imaginary parts.
func (b *BufferT[F]) FillBandImag(startFreq, endFreq float64, value F) error {
	return b.fillBand(startFreq, endFreq, 0, value, false, true)
}

// FillBandPolar is FillBand with the value given in polar notation.
func (b *BufferT[F]) FillBandPolar(startFreq, endFreq float64, magnitude, phase F) error {
	m := float64(magnitude)
	p := float64(phase)
	return b.fillBand(startFreq, endFreq, F(m*math.Cos(p)), F(m*math.Sin(p)), true, true)
}

// FillBandHz is FillBand with band limits in physical units.
func (b *BufferT[F]) FillBandHz(sampleRate, startFreq, endFreq float64, realValue, imagValue F) error {
	return b.FillBand(startFreq/sampleRate, endFreq/sampleRate, realValue, imagValue)
}

// FillBandRealHz is FillBandReal with band limits in physical units.
func (b *BufferT[F]) FillBandRealHz(sampleRate, startFreq, endFreq float64, value F) error {
	return b.FillBandReal(startFreq/sampleRate, endFreq/sampleRate, value)
}

// FillBandImagHz is FillBandImag with band limits in physical units.
func (b *BufferT[F]) FillBandImagHz(sampleRate, startFreq, endFreq float64, value F) error {
	return b.FillBandImag(startFreq/sampleRate, endFreq/sampleRate, value)
}

// FillBandPolarHz is FillBandPolar with band limits in physical units.
func (b *BufferT[F]) FillBandPolarHz(sampleRate, startFreq, endFreq float64, magnitude, phase F) error {
	return b.FillBandPolar(startFreq/sampleRate, endFreq/sampleRate, magnitude, phase)
}

func (b *BufferT[F]) fillBand(startFreq, endFreq float64, realValue, imagValue F, useReal, useImag bool) error {
	if !useReal && !useImag {
		return fmt.Errorf("fft: band fill must touch at least one of real or imag")
	}
	if (startFreq < 0) != (endFreq < 0) {
		return fmt.Errorf("%w: start %v, end %v", ErrBandOverlap, startFreq, endFreq)
	}

	// Work with positive frequencies only, flipping the imaginary value for
	// a negative band (odd symmetry).
	if startFreq < 0 {
		startFreq = -startFreq
		endFreq = -endFreq
		imagValue = -imagValue
	}

	if endFreq < startFreq {
		startFreq, endFreq = endFreq, startFreq
	}
	if endFreq > 0.5 {
		return fmt.Errorf("%w: end %v", ErrBeyondNyquist, endFreq)
	}

	startBin, startContribution := b.binContribution(startFreq)
	endBin, endContribution := b.binContribution(endFreq)
	startRemainder := 1 - startContribution
	endRemainder := 1 - endContribution

	blend := func(old, value F, remainder, contribution float64) F {
		return F(float64(old)*remainder + float64(value)*contribution)
	}

	switch {
	case useReal && useImag:
		b.SetBin(startBin,
			blend(b.Real[startBin], realValue, startRemainder, startContribution),
			blend(b.Imag[startBin], imagValue, startRemainder, startContribution))
		b.SetBin(endBin,
			blend(b.Real[endBin], realValue, endRemainder, endContribution),
			blend(b.Imag[endBin], imagValue, endRemainder, endContribution))

		for i := startBin + 1; i < endBin; i++ {
			b.SetBin(i, realValue, imagValue)
		}

	case useReal:
		b.SetBinReal(startBin, blend(b.Real[startBin], realValue, startRemainder, startContribution))
		b.SetBinReal(endBin, blend(b.Real[endBin], realValue, endRemainder, endContribution))

		for i := startBin + 1; i < endBin; i++ {
			b.SetBinReal(i, realValue)
		}

	case useImag:
		b.SetBinImag(startBin, blend(b.Imag[startBin], imagValue, startRemainder, startContribution))
		b.SetBinImag(endBin, blend(b.Imag[endBin], imagValue, endRemainder, endContribution))

		for i := startBin + 1; i < endBin; i++ {
			b.SetBinImag(i, imagValue)
		}
	}

	return nil
}

// DecomposeEvenOdd splits this spectrum of a complex time-domain signal into
// the spectra of its real and imaginary components.
//
// If this buffer holds the spectrum of a signal with data in both the real
// and imaginary channels, then after the call outRealSpectrum holds the
// spectrum the real channel alone would have produced and outImagSpectrum
// the spectrum of the imaginary channel alone. Both output buffers must be
// at least as large as this buffer.
func (b *BufferT[F]) DecomposeEvenOdd(outRealSpectrum, outImagSpectrum *BufferT[F]) error {
	if outRealSpectrum.Size < b.Size || outImagSpectrum.Size < b.Size {
		return fmt.Errorf("%w: need %d", ErrShortArray, b.Size)
	}

	n2 := b.Size / 2

	// DC and Nyquist carry no mirror: the real channel owns the real part,
	// the imaginary channel the imaginary part.
	outRealSpectrum.Real[0] = b.Real[0]
	outRealSpectrum.Imag[0] = 0
	outRealSpectrum.Real[n2] = b.Real[n2]
	outRealSpectrum.Imag[n2] = 0

	outImagSpectrum.Real[0] = 0
	outImagSpectrum.Imag[0] = b.Imag[0]
	outImagSpectrum.Real[n2] = 0
	outImagSpectrum.Imag[n2] = b.Imag[n2]

	for i := 1; i < n2; i++ {
		k := b.Size - i

		realEven := (b.Real[i] + b.Real[k]) / 2
		realOdd := (b.Real[i] - b.Real[k]) / 2
		imagEven := (b.Imag[i] + b.Imag[k]) / 2
		imagOdd := (b.Imag[i] - b.Imag[k]) / 2

		outRealSpectrum.Real[i] = realEven
		outRealSpectrum.Imag[i] = imagOdd
		outRealSpectrum.Real[k] = realEven
		outRealSpectrum.Imag[k] = -imagOdd

		outImagSpectrum.Real[i] = realOdd
		outImagSpectrum.Imag[i] = imagEven
		outImagSpectrum.Real[k] = -realOdd
		outImagSpectrum.Imag[k] = imagEven
	}

	return nil
}

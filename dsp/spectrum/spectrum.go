// Package spectrum derives magnitude and power spectra from complex
// frequency-domain buffers.
//
// The functions operate on the float64 buffer type of dsp/fft, typically on
// the live spectra handed to a convolution observer, and use vectorised
// kernels for the per-bin math.
package spectrum

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-convolution/dsp/core"
	"github.com/cwbudde/algo-convolution/dsp/fft"
)

// Magnitude returns |X[k]| for every bin of the spectrum.
func Magnitude(b *fft.Buffer) []float64 {
	out := make([]float64, b.Size)
	vecmath.Magnitude(out, b.Real, b.Imag)
	return out
}

// MagnitudeTo computes |X[k]| into dst, which must be at least as long as
// the spectrum.
func MagnitudeTo(dst []float64, b *fft.Buffer) error {
	if len(dst) < b.Size {
		return fmt.Errorf("spectrum: dst needs %d bins, got %d", b.Size, len(dst))
	}

	vecmath.Magnitude(dst[:b.Size], b.Real, b.Imag)
	return nil
}

// Power returns |X[k]|^2 for every bin of the spectrum.
func Power(b *fft.Buffer) []float64 {
	out := make([]float64, b.Size)
	vecmath.Power(out, b.Real, b.Imag)
	return out
}

// PowerTo computes |X[k]|^2 into dst, which must be at least as long as the
// spectrum.
func PowerTo(dst []float64, b *fft.Buffer) error {
	if len(dst) < b.Size {
		return fmt.Errorf("spectrum: dst needs %d bins, got %d", b.Size, len(dst))
	}

	vecmath.Power(dst[:b.Size], b.Real, b.Imag)
	return nil
}

// MagnitudeDB returns 20*log10(|X[k]|) for every bin, clamped below at
// floorDB so empty bins stay plottable.
func MagnitudeDB(b *fft.Buffer, floorDB float64) []float64 {
	out := Magnitude(b)
	for i, v := range out {
		db := core.LinearToDB(v)
		if db < floorDB {
			db = floorDB
		}
		out[i] = db
	}
	return out
}

// Half returns only the non-mirrored half of a spectrum, bins [0, Size/2],
// DC through Nyquist. For the spectrum of a real signal the discarded bins
// carry no extra information.
func Half(bins []float64) []float64 {
	if len(bins) == 0 {
		return nil
	}
	return bins[:len(bins)/2+1]
}

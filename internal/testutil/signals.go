// Package testutil provides deterministic test signals and tolerance
// helpers shared by the package tests.
package testutil

import (
	"math"
	"math/rand"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// Sine generates a deterministic sine wave.
func Sine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Noise generates white noise with a fixed seed for reproducibility.
func Noise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Ramp generates the sequence 1, 2, ..., length.
func Ramp(length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = float64(i + 1)
	}
	return out
}

// ToPrecision converts a float64 signal to the target precision.
func ToPrecision[F algofft.Float](in []float64) []F {
	out := make([]F, len(in))
	for i, v := range in {
		out[i] = F(v)
	}
	return out
}

// DirectConvolve computes the full linear convolution of signal and kernel,
// len(signal)+len(kernel)-1 samples, by the direct O(N*M) sum. Used as the
// reference the streaming convolvers are checked against.
func DirectConvolve(signal, kernel []float64) []float64 {
	if len(signal) == 0 || len(kernel) == 0 {
		return nil
	}

	out := make([]float64, len(signal)+len(kernel)-1)
	for i, s := range signal {
		for j, k := range kernel {
			out[i+j] += s * k
		}
	}
	return out
}

// RMS returns the root-mean-square amplitude of a signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range signal {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(signal)))
}

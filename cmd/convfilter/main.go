// Command convfilter band-passes a WAV file through the streaming
// convolution engine.
//
// Usage:
//
//	convfilter -in input.wav -out output.wav [flags]
//
// Mono files run through the packed real convolution; stereo files load the
// left channel into the real and the right channel into the imaginary part
// of a complex convolution, filtering both at once with a shared kernel.
//
// Examples:
//
//	convfilter -in voice.wav -out filtered.wav -low 300 -high 3400
//	convfilter -in noisy.wav -out clean.wav -low 60 -high 8000 -block 8192
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-convolution/dsp/conv"
	"github.com/cwbudde/algo-convolution/dsp/core"
	"github.com/cwbudde/algo-convolution/dsp/window"
)

func main() {
	inPath := flag.String("in", "", "input WAV file")
	outPath := flag.String("out", "", "output WAV file")
	low := flag.Float64("low", 300, "band-pass lower edge in Hz")
	high := flag.Float64("high", 3400, "band-pass upper edge in Hz")
	block := flag.Int("block", 4096, "samples per convolution block (power of two)")
	shapeName := flag.String("window", "blackman", "kernel window shape (see wininfo -list)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: convfilter -in input.wav -out output.wav [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Band-passes a mono or stereo WAV file with streaming FFT convolution.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *inPath == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*inPath, *outPath, *low, *high, *block, *shapeName); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string, low, high float64, block int, shapeName string) error {
	in, err := os.Open(inPath)
	if err != nil {
		return err
	}
	defer in.Close()

	decoder := wav.NewDecoder(in)
	if !decoder.IsValidFile() {
		return fmt.Errorf("%s is not a valid WAV file", inPath)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return fmt.Errorf("decode %s: %w", inPath, err)
	}

	format := buf.Format
	sampleRate := float64(format.SampleRate)
	if high >= sampleRate/2 {
		return fmt.Errorf("band edge %.0f Hz is at or above Nyquist (%.0f Hz)", high, sampleRate/2)
	}

	scale := float64(int(1) << (buf.SourceBitDepth - 1))

	var left, right []float64
	switch format.NumChannels {
	case 1:
		left = toFloat(buf.Data, scale)
	case 2:
		left = deinterleave(buf.Data, 2, 0, scale)
		right = deinterleave(buf.Data, 2, 1, scale)
	default:
		return fmt.Errorf("unsupported channel count %d", format.NumChannels)
	}

	var outLeft, outRight []float64
	if right == nil {
		outLeft, err = filterMono(left, sampleRate, low, high, block, shapeName)
	} else {
		outLeft, outRight, err = filterStereo(left, right, sampleRate, low, high, block, shapeName)
	}
	if err != nil {
		return err
	}

	return writeWAV(outPath, format, outLeft, outRight)
}

// filterMono streams the signal through a packed real convolution.
func filterMono(signal []float64, sampleRate, low, high float64, block int, shapeName string) ([]float64, error) {
	c, err := conv.NewReal(block)
	if err != nil {
		return nil, err
	}

	if err := applyBandPass(c.NewFrequencyResponse(), c.NewFilterKernel(), kernelSetter(c), sampleRate, low, high, shapeName, c.WindowSize()); err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(signal)+c.WindowSize())
	outBlock := make([]float64, block)
	inBlock := make([]float64, block)

	for pos := 0; pos < len(signal); pos += block {
		n := copy(inBlock, signal[pos:])
		zeroTail(inBlock[n:])

		if err := c.Convolve(inBlock, outBlock); err != nil {
			return nil, err
		}
		out = append(out, outBlock...)
	}

	tail := make([]float64, block/2)
	if err := c.Drain(tail); err != nil {
		return nil, err
	}
	out = append(out, tail...)

	return out[:min(len(out), len(signal)+c.WindowSize()-1)], nil
}

// filterStereo streams both channels at once through a complex convolution.
func filterStereo(left, right []float64, sampleRate, low, high float64, block int, shapeName string) ([]float64, []float64, error) {
	c, err := conv.NewComplex(block)
	if err != nil {
		return nil, nil, err
	}

	if err := applyBandPass(c.NewFrequencyResponse(), c.NewFilterKernel(), kernelSetter(c), sampleRate, low, high, shapeName, c.WindowSize()); err != nil {
		return nil, nil, err
	}

	total := len(left)
	outL := make([]float64, 0, total+c.WindowSize())
	outR := make([]float64, 0, total+c.WindowSize())

	inL := make([]float64, block)
	inR := make([]float64, block)
	blockL := make([]float64, block)
	blockR := make([]float64, block)

	for pos := 0; pos < total; pos += block {
		n := copy(inL, left[pos:])
		zeroTail(inL[n:])
		n = copy(inR, right[pos:])
		zeroTail(inR[n:])

		if err := c.Convolve(inL, inR, blockL, blockR); err != nil {
			return nil, nil, err
		}
		outL = append(outL, blockL...)
		outR = append(outR, blockR...)
	}

	if err := c.Drain(blockL, blockR); err != nil {
		return nil, nil, err
	}
	outL = append(outL, blockL...)
	outR = append(outR, blockR...)

	limit := min(len(outL), total+c.WindowSize()-1)
	return outL[:limit], outR[:limit], nil
}

// applyBandPass builds the band-pass response, conditions it into the kernel
// with the selected window shape, and activates it.
func applyBandPass(fr *conv.FrequencyResponse, k *conv.FilterKernel, set func(*conv.FilterKernel) error, sampleRate, low, high float64, shapeName string, windowSize int) error {
	shape, ok := window.Lookup(shapeName)
	if !ok {
		return fmt.Errorf("unknown window shape %q", shapeName)
	}

	w, err := window.New(windowSize, shape)
	if err != nil {
		return err
	}
	if err := k.SetWindow(w); err != nil {
		return err
	}

	fr.Fill(0)
	if err := fr.FillBandRealHz(sampleRate, low, high, 1); err != nil {
		return fmt.Errorf("band %v..%v Hz: %w", low, high, err)
	}
	if err := fr.FillBandRealHz(sampleRate, -low, -high, 1); err != nil {
		return fmt.Errorf("band %v..%v Hz: %w", low, high, err)
	}

	if err := k.SetFrequencyResponse(fr); err != nil {
		return err
	}
	return set(k)
}

// kernelSetter adapts the two convolution variants to one callback shape.
func kernelSetter(c interface {
	SetFilterKernel(*conv.FilterKernel) error
}) func(*conv.FilterKernel) error {
	return c.SetFilterKernel
}

func toFloat(data []int, scale float64) []float64 {
	out := make([]float64, len(data))
	for i, v := range data {
		out[i] = float64(v) / scale
	}
	return out
}

func deinterleave(data []int, stride, offset int, scale float64) []float64 {
	out := make([]float64, 0, len(data)/stride+1)
	for i := offset; i < len(data); i += stride {
		out = append(out, float64(data[i])/scale)
	}
	return out
}

func zeroTail(s []float64) {
	for i := range s {
		s[i] = 0
	}
}

func writeWAV(path string, format *audio.Format, left, right []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	const bitDepth = 16
	const maxAmp = 1 << (bitDepth - 1)

	channels := 1
	if right != nil {
		channels = 2
	}

	data := make([]int, 0, len(left)*channels)
	for i := range left {
		data = append(data, quantize(left[i], maxAmp))
		if right != nil {
			data = append(data, quantize(right[i], maxAmp))
		}
	}

	enc := wav.NewEncoder(f, format.SampleRate, bitDepth, channels, 1)
	if err := enc.Write(&audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  format.SampleRate,
		},
		SourceBitDepth: bitDepth,
		Data:           data,
	}); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return enc.Close()
}

func quantize(v float64, maxAmp int) int {
	scaled := core.Clamp(v, -1, 1) * float64(maxAmp-1)
	if scaled >= 0 {
		return int(scaled + 0.5)
	}
	return int(scaled - 0.5)
}

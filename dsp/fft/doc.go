// Package fft provides a fixed-size radix-2 decimation-in-time FFT engine
// and a complex buffer type for frequency-domain editing.
//
// The package is built around two types:
//
//   - BufferT: a pair of equal-length real/imag sample arrays with in-place
//     scalar operations, Hermitian-symmetric bin and band edits, circular
//     shifting, band energy measures, and even-odd spectral decomposition
//   - TransformT: an FFT engine of fixed power-of-two size with precomputed
//     bit-reversal and twiddle lookup tables and configurable scaling
//
// Both are generic over the scalar type; the Buffer/Transform and
// Buffer32/Transform32 aliases select the float64 and float32
// instantiations.
//
// # Usage
//
//	ft, err := fft.NewTransform(1024, fft.ScaleBoth)
//	in := fft.NewBuffer(1024)
//	out := fft.NewBuffer(1024)
//	// ... fill in.Real / in.Imag ...
//	err = ft.TransformBuffer(in, out, false)
//
// Buffer data arrays are exported on purpose: signal sources and sinks write
// straight into Real and Imag without copying through an accessor.
//
// # Scaling
//
// A transform is constructed with one of four scaling modes. ScaleNone applies
// no factor, ScaleForward and ScaleInverse apply 1/N on the respective
// direction only, and ScaleBoth applies 1/sqrt(N) symmetrically. The factor is
// fused into the bit-reversal copy, so it costs no extra pass.
package fft

package fft

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-convolution/internal/testutil"
)

func TestWrapRejectsMismatchedLengths(t *testing.T) {
	if _, err := Wrap(make([]float64, 4), make([]float64, 5)); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("got %v, want ErrLengthMismatch", err)
	}
}

func TestWrapSharesArrays(t *testing.T) {
	re := []float64{1, 2, 3, 4}
	im := []float64{5, 6, 7, 8}

	b, err := Wrap(re, im)
	if err != nil {
		t.Fatal(err)
	}

	re[0] = 42
	if b.Real[0] != 42 {
		t.Error("wrapped buffer does not reflect external writes")
	}

	b.Imag[3] = -1
	if im[3] != -1 {
		t.Error("external array does not reflect buffer writes")
	}
}

func TestCloneAndEqual(t *testing.T) {
	b := NewBuffer(8)
	copy(b.Real, testutil.Noise(1, 1, 8))
	copy(b.Imag, testutil.Noise(2, 1, 8))

	c := b.Clone()
	if !b.Equal(c) {
		t.Fatal("clone differs from original")
	}

	c.Imag[5] += 1e-9
	if b.Equal(c) {
		t.Fatal("Equal ignores elementwise differences")
	}

	if b.Equal(NewBuffer(4)) {
		t.Fatal("Equal ignores size differences")
	}
}

func TestScalarOps(t *testing.T) {
	b := NewBuffer(4)
	b.Real[1] = 3
	b.Imag[1] = 4

	if got := b.Squared(1); got != 25 {
		t.Errorf("Squared = %v, want 25", got)
	}
	if got := b.Magnitude(1); got != 5 {
		t.Errorf("Magnitude = %v, want 5", got)
	}
	if got := b.Phase(1); math.Abs(got-math.Atan2(4, 3)) > 1e-15 {
		t.Errorf("Phase = %v, want %v", got, math.Atan2(4, 3))
	}
}

func TestFillVariants(t *testing.T) {
	b := NewBuffer(6)

	b.Fill(2)
	for i := 0; i < 6; i++ {
		if b.Real[i] != 2 || b.Imag[i] != 2 {
			t.Fatalf("Fill missed index %d", i)
		}
	}

	b.FillRealRange(1, 3, 7)
	b.FillImagRange(4, 6, -1)
	want := NewBuffer(6)
	want.Fill(2)
	want.Real[1], want.Real[2] = 7, 7
	want.Imag[4], want.Imag[5] = -1, -1
	if !b.Equal(want) {
		t.Fatal("range fills touched the wrong elements")
	}
}

func TestCross(t *testing.T) {
	left := NewBuffer(2)
	right := NewBuffer(2)

	// (1+2i)*(3+4i) = -5+10i
	left.Real[0], left.Imag[0] = 1, 2
	right.Real[0], right.Imag[0] = 3, 4

	// (2-1i)*(-1+0.5i) = -1.5+2i
	left.Real[1], left.Imag[1] = 2, -1
	right.Real[1], right.Imag[1] = -1, 0.5

	out := NewBuffer(2)
	out.Cross(left, right)

	testutil.RequireSliceNearlyEqual(t, out.Real, []float64{-5, -1.5}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, out.Imag, []float64{10, 2}, 1e-15)
}

func TestCrossAliasesSelf(t *testing.T) {
	b := NewBuffer(3)
	other := NewBuffer(3)
	copy(b.Real, []float64{1, 2, 3})
	copy(b.Imag, []float64{-1, 0, 1})
	copy(other.Real, []float64{2, 2, 2})
	copy(other.Imag, []float64{1, 1, 1})

	want := NewBuffer(3)
	want.Cross(b, other)

	b.Cross(b, other)
	if !b.Equal(want) {
		t.Fatal("Cross with receiver as left operand differs")
	}
}

func TestSwap(t *testing.T) {
	b := NewBuffer(3)
	copy(b.Real, []float64{1, 2, 3})
	copy(b.Imag, []float64{4, 5, 6})

	b.Swap()

	testutil.RequireSliceNearlyEqual(t, b.Real, []float64{4, 5, 6}, 0)
	testutil.RequireSliceNearlyEqual(t, b.Imag, []float64{1, 2, 3}, 0)
}

func TestShift(t *testing.T) {
	b := NewBuffer(4)
	copy(b.Real, []float64{0, 1, 2, 3})
	copy(b.Imag, []float64{10, 11, 12, 13})

	// Positive delta shifts left: new[i] = old[i+delta].
	b.Shift(1)
	testutil.RequireSliceNearlyEqual(t, b.Real, []float64{1, 2, 3, 0}, 0)
	testutil.RequireSliceNearlyEqual(t, b.Imag, []float64{11, 12, 13, 10}, 0)

	b.Shift(-1)
	testutil.RequireSliceNearlyEqual(t, b.Real, []float64{0, 1, 2, 3}, 0)
}

func TestShiftRoundTrip(t *testing.T) {
	for _, delta := range []int{0, 1, 3, 7, 8, 13, -5, -16, 100} {
		b := NewBuffer(8)
		copy(b.Real, testutil.Noise(3, 1, 8))
		copy(b.Imag, testutil.Noise(4, 1, 8))
		orig := b.Clone()

		b.Shift(delta)
		b.Shift(-delta)

		if !b.Equal(orig) {
			t.Errorf("delta %d: shift round trip changed the buffer", delta)
		}
	}
}

func TestShiftNormalisesLargeDeltas(t *testing.T) {
	a := NewBuffer(8)
	copy(a.Real, testutil.Ramp(8))
	b := a.Clone()

	a.Shift(3)
	b.Shift(3 + 8*5)

	if !a.Equal(b) {
		t.Error("shift by delta and delta+k*size differ")
	}
}

func TestSetBinSymmetry(t *testing.T) {
	b := NewBuffer(8)

	b.SetBin(3, 0.5, 0.25)

	if b.Real[3] != 0.5 || b.Real[5] != 0.5 {
		t.Errorf("real symmetry: got %v/%v, want 0.5/0.5", b.Real[3], b.Real[5])
	}
	if b.Imag[3] != 0.25 || b.Imag[5] != -0.25 {
		t.Errorf("imag symmetry: got %v/%v, want 0.25/-0.25", b.Imag[3], b.Imag[5])
	}
}

func TestSetBinDCAndNyquistHaveNoMirror(t *testing.T) {
	b := NewBuffer(8)

	b.SetBin(0, 1, 2)
	b.SetBin(4, 3, 4)

	for i := 1; i < 8; i++ {
		if i != 4 && (b.Real[i] != 0 || b.Imag[i] != 0) {
			t.Fatalf("bin %d unexpectedly written", i)
		}
	}
	if b.Real[0] != 1 || b.Imag[0] != 2 || b.Real[4] != 3 || b.Imag[4] != 4 {
		t.Fatal("DC or Nyquist value wrong")
	}
}

func TestSetBinPolar(t *testing.T) {
	b := NewBuffer(8)
	b.SetBinPolar(2, 2, math.Pi/2)

	if math.Abs(b.Real[2]) > 1e-15 || math.Abs(b.Imag[2]-2) > 1e-15 {
		t.Errorf("got (%v,%v), want (0,2)", b.Real[2], b.Imag[2])
	}
	if math.Abs(b.Imag[6]+2) > 1e-15 {
		t.Errorf("mirror imag: got %v, want -2", b.Imag[6])
	}
}

// requireHermitian checks real[size-i] == real[i] and imag[size-i] == -imag[i]
// over the mirrored bins.
func requireHermitian(t *testing.T, b *Buffer) {
	t.Helper()
	for i := 1; i < b.Size/2; i++ {
		k := b.Size - i
		if b.Real[k] != b.Real[i] {
			t.Fatalf("bin %d: real[%d]=%v, real[%d]=%v", i, i, b.Real[i], k, b.Real[k])
		}
		if b.Imag[k] != -b.Imag[i] {
			t.Fatalf("bin %d: imag[%d]=%v, imag[%d]=%v", i, i, b.Imag[i], k, b.Imag[k])
		}
	}
}

func TestHermitianSymmetryPreserved(t *testing.T) {
	b := NewBuffer(16)

	b.SetBinReal(1, 0.25)
	b.SetBinImag(2, -0.5)
	b.SetBin(3, 1, 1)
	b.SetBinPolar(5, 1, 0.3)
	if err := b.FillBand(0.1, 0.2, 0.7, 0.1); err != nil {
		t.Fatal(err)
	}
	if err := b.FillBandImag(-0.4, -0.3, 0.2); err != nil {
		t.Fatal(err)
	}
	if err := b.FillBandReal(0.3, 0.45, 0.9); err != nil {
		t.Fatal(err)
	}

	requireHermitian(t, b)
}

func TestFillBandEndpointBlending(t *testing.T) {
	b := NewBuffer(1024)
	b.FillReal(1)

	// startFreq 0.2 -> fractional bin 204.8: bin 205 keeps 20% of its old
	// value. endFreq 0.25 -> exactly bin 256, fully overwritten.
	if err := b.FillBandReal(0.2, 0.25, 0); err != nil {
		t.Fatal(err)
	}

	if math.Abs(b.Real[205]-0.2) > 1e-12 {
		t.Errorf("start bin: got %v, want 0.2", b.Real[205])
	}
	if b.Real[256] != 0 {
		t.Errorf("end bin: got %v, want 0", b.Real[256])
	}
	for i := 206; i < 256; i++ {
		if b.Real[i] != 0 {
			t.Fatalf("interior bin %d: got %v, want 0", i, b.Real[i])
		}
	}
	if b.Real[204] != 1 {
		t.Errorf("bin before band: got %v, want 1", b.Real[204])
	}
	if math.Abs(b.Real[1024-205]-0.2) > 1e-12 {
		t.Errorf("mirrored start bin: got %v, want 0.2", b.Real[1024-205])
	}
}

func TestFillBandNegativeFlipsImag(t *testing.T) {
	pos := NewBuffer(64)
	neg := NewBuffer(64)

	if err := pos.FillBandImag(0.1, 0.2, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := neg.FillBandImag(-0.1, -0.2, 0.5); err != nil {
		t.Fatal(err)
	}

	// A negative band with value v equals the positive band with -v.
	for i := 0; i < 64; i++ {
		if neg.Imag[i] != -pos.Imag[i] {
			t.Fatalf("bin %d: neg %v, pos %v", i, neg.Imag[i], pos.Imag[i])
		}
	}
}

func TestFillBandErrors(t *testing.T) {
	b := NewBuffer(64)

	if err := b.FillBand(-0.1, 0.2, 1, 0); !errors.Is(err, ErrBandOverlap) {
		t.Errorf("opposite signs: got %v, want ErrBandOverlap", err)
	}
	if err := b.FillBand(0.1, 0.6, 1, 0); !errors.Is(err, ErrBeyondNyquist) {
		t.Errorf("beyond Nyquist: got %v, want ErrBeyondNyquist", err)
	}
	if _, err := b.BandEnergy(-0.1, 0.2); !errors.Is(err, ErrBandOverlap) {
		t.Errorf("energy opposite signs: got %v, want ErrBandOverlap", err)
	}
	if _, err := b.BandEnergy(0.1, 0.51); !errors.Is(err, ErrBeyondNyquist) {
		t.Errorf("energy beyond Nyquist: got %v, want ErrBeyondNyquist", err)
	}
}

func TestFillBandHzMatchesFractional(t *testing.T) {
	a := NewBuffer(128)
	b := NewBuffer(128)

	if err := a.FillBandHz(48000, 1200, 6000, 1, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := b.FillBand(1200.0/48000, 6000.0/48000, 1, 0.5); err != nil {
		t.Fatal(err)
	}

	if !a.Equal(b) {
		t.Error("Hz overload differs from fractional band fill")
	}
}

func TestBinEnergy(t *testing.T) {
	b := NewBuffer(8)
	b.SetBin(2, 3, 4)

	// Mirrored bins contribute from both sidebands.
	if got := b.BinEnergy(2); got != 50 {
		t.Errorf("bin 2: got %v, want 50", got)
	}

	b.Real[0] = 2
	if got := b.BinEnergy(0); got != 4 {
		t.Errorf("DC: got %v, want 4", got)
	}

	b.Real[4] = 3
	if got := b.BinEnergy(4); got != 9 {
		t.Errorf("Nyquist: got %v, want 9", got)
	}
}

func TestBandEnergySingleBinCollapses(t *testing.T) {
	b := NewBuffer(64)
	b.SetBin(8, 1, 0)

	// 8/64 = 0.125 lands exactly on bin 8: start and end collapse there and
	// each endpoint contributes with full weight.
	got, err := b.BandEnergy(0.125, 0.125)
	if err != nil {
		t.Fatal(err)
	}

	want := 2 * b.BinEnergy(8)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestBandEnergyIntegratesBand(t *testing.T) {
	b := NewBuffer(64)
	for bin := 4; bin <= 8; bin++ {
		b.SetBin(bin, 1, 0)
	}

	// Band edges on exact bin centres 4/64 and 8/64.
	got, err := b.BandEnergy(4.0/64, 8.0/64)
	if err != nil {
		t.Fatal(err)
	}

	// Five bins, each with both sidebands set: energy 2 per bin.
	if math.Abs(got-10) > 1e-12 {
		t.Errorf("got %v, want 10", got)
	}
}

func TestDecomposeEvenOdd(t *testing.T) {
	const size = 32

	ft, err := NewTransform(size, ScaleNone)
	if err != nil {
		t.Fatal(err)
	}

	r := testutil.Noise(10, 1, size)
	s := testutil.Noise(11, 1, size)

	// Transform the combined complex signal and each channel on its own.
	combined := NewBuffer(size)
	copy(combined.Real, r)
	copy(combined.Imag, s)

	realOnly := NewBuffer(size)
	copy(realOnly.Real, r)

	imagOnly := NewBuffer(size)
	copy(imagOnly.Imag, s)

	combinedSpec := NewBuffer(size)
	wantRealSpec := NewBuffer(size)
	wantImagSpec := NewBuffer(size)

	if err := ft.TransformBuffer(combined, combinedSpec, false); err != nil {
		t.Fatal(err)
	}
	if err := ft.TransformBuffer(realOnly, wantRealSpec, false); err != nil {
		t.Fatal(err)
	}
	if err := ft.TransformBuffer(imagOnly, wantImagSpec, false); err != nil {
		t.Fatal(err)
	}

	gotRealSpec := NewBuffer(size)
	gotImagSpec := NewBuffer(size)
	if err := combinedSpec.DecomposeEvenOdd(gotRealSpec, gotImagSpec); err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, gotRealSpec.Real, wantRealSpec.Real, 1e-9)
	testutil.RequireSliceNearlyEqual(t, gotRealSpec.Imag, wantRealSpec.Imag, 1e-9)
	testutil.RequireSliceNearlyEqual(t, gotImagSpec.Real, wantImagSpec.Real, 1e-9)
	testutil.RequireSliceNearlyEqual(t, gotImagSpec.Imag, wantImagSpec.Imag, 1e-9)
}

func TestDecomposeEvenOddRejectsShortOutputs(t *testing.T) {
	b := NewBuffer(16)
	if err := b.DecomposeEvenOdd(NewBuffer(8), NewBuffer(16)); !errors.Is(err, ErrShortArray) {
		t.Errorf("got %v, want ErrShortArray", err)
	}
}

package curve

import (
	"math"
	"testing"
)

func TestSmoothZeroFactorIsIdentity(t *testing.T) {
	in := []float64{0, 0.25, 1, 0.5, 0, 0.75}
	out := Smooth(in, 0)

	for i := range in {
		if out[i] != in[i] {
			t.Errorf("bin %d changed: got %v, want %v", i, out[i], in[i])
		}
	}

	// The result must be a fresh slice, not the input.
	out[0] = 99
	if in[0] == 99 {
		t.Error("Smooth(_, 0) returned the input slice")
	}
}

func TestSmoothNegativeFactorIsIdentity(t *testing.T) {
	in := []float64{1, 0, 1}
	out := Smooth(in, -0.5)
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("bin %d changed: got %v, want %v", i, out[i], in[i])
		}
	}
}

func TestSmoothPreservesFlatCurve(t *testing.T) {
	// Edge-extension boundary handling must not dim the ends: a constant
	// curve convolved with a normalized kernel stays constant.
	in := make([]float64, 256)
	for i := range in {
		in[i] = 0.8
	}
	out := Smooth(in, 0.7)
	for i, v := range out {
		if math.Abs(v-0.8) > 1e-9 {
			t.Fatalf("bin %d = %v, want 0.8", i, v)
		}
	}
}

func TestSmoothSpreadsPeak(t *testing.T) {
	in := make([]float64, 256)
	in[128] = 1
	out := Smooth(in, 0.3)

	if out[128] >= 1 {
		t.Errorf("peak did not shrink: %v", out[128])
	}
	if out[120] <= 0 || out[136] <= 0 {
		t.Error("mass did not spread to neighbors")
	}

	// Convolution with a normalized kernel preserves total mass away from
	// the boundary.
	sum := 0.0
	for _, v := range out {
		sum += v
	}
	if math.Abs(sum-1) > 1e-6 {
		t.Errorf("total mass = %v, want 1", sum)
	}
}

func TestSmoothSigmaZeroCopies(t *testing.T) {
	in := []float64{0.1, 0.2, 0.3}
	out := SmoothSigma(in, 0)
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("bin %d = %v, want %v", i, out[i], in[i])
		}
	}
}

func TestNormalizeTogether(t *testing.T) {
	a := []float64{0.1, 0.2}
	b := []float64{0.4, 0.1}
	c := []float64{0, 0}

	norm := NormalizeTogether(a, b, c)

	if norm[1][0] != 1.0 {
		t.Errorf("global max = %v, want 1.0", norm[1][0])
	}
	if math.Abs(norm[0][0]-0.25) > 1e-9 {
		t.Errorf("norm[0][0] = %v, want 0.25", norm[0][0])
	}
	if norm[2][0] != 0 || norm[2][1] != 0 {
		t.Error("zero curve changed")
	}

	// Inputs must be untouched.
	if b[0] != 0.4 {
		t.Error("input slice was modified")
	}
}

func TestNormalizeTogetherAllZero(t *testing.T) {
	a := []float64{0, 0, 0}
	norm := NormalizeTogether(a, a)
	for _, c := range norm {
		for i, v := range c {
			if v != 0 {
				t.Fatalf("bin %d = %v, want 0", i, v)
			}
		}
	}
}

func TestNormalizeMaxInvariant(t *testing.T) {
	// After joint normalization each curve's max is either 0 or, for at
	// least one curve, exactly 1.
	a := []float64{0.3, 0.6}
	b := []float64{0, 0}
	norm := NormalizeTogether(a, b)

	maxOf := func(c []float64) float64 {
		m := 0.0
		for _, v := range c {
			if v > m {
				m = v
			}
		}
		return m
	}
	if got := maxOf(norm[0]); got != 1 {
		t.Errorf("max of first curve = %v, want 1", got)
	}
	if got := maxOf(norm[1]); got != 0 {
		t.Errorf("max of zero curve = %v, want 0", got)
	}
}

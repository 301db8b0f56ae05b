package param

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

func TestLinearRange(t *testing.T) {
	r := LinearRange(-2, 6)
	tests := []struct {
		p, v float64
	}{
		{0, -2}, {0.25, 0}, {0.5, 2}, {1, 6},
	}
	for _, tt := range tests {
		if got := r.Unnormalize(tt.p); got != tt.v {
			t.Fatalf("Unnormalize(%v) = %v, want %v", tt.p, got, tt.v)
		}
		if got := r.Normalize(tt.v); got != tt.p {
			t.Fatalf("Normalize(%v) = %v, want %v", tt.v, got, tt.p)
		}
	}
	if got := r.Unnormalize(1.5); got != 6 {
		t.Fatalf("Unnormalize(1.5) = %v, want clamp to 6", got)
	}
	if got := r.Normalize(-10); got != 0 {
		t.Fatalf("Normalize(-10) = %v, want 0", got)
	}
}

func TestLinearRangeSwapsBounds(t *testing.T) {
	r := LinearRange(1, 0)
	if r.Min != 0 || r.Max != 1 {
		t.Fatalf("range = %+v, want [0, 1]", r)
	}
}

func TestDegenerateRange(t *testing.T) {
	r := LinearRange(3, 3)
	if got := r.Normalize(3); got != 0 {
		t.Fatalf("Normalize = %v, want 0", got)
	}
	if got := r.Unnormalize(0.7); got != 3 {
		t.Fatalf("Unnormalize = %v, want 3", got)
	}
}

func TestIntRangeRounds(t *testing.T) {
	r := IntRange(0, 100)
	if got := r.Unnormalize(0.504); got != 50 {
		t.Fatalf("Unnormalize(0.504) = %v, want 50", got)
	}
	if got := r.Clamp(12.6); got != 13 {
		t.Fatalf("Clamp(12.6) = %v, want 13", got)
	}
	if got := r.Normalize(25); got != 0.25 {
		t.Fatalf("Normalize(25) = %v, want 0.25", got)
	}
}

func TestGainSkewCentresMidpoint(t *testing.T) {
	minGain := core.DBToLinear(-60)
	r := SkewedRange(minGain, 1, GainSkewFactor(-60, 0))

	mid := r.Unnormalize(0.5)
	if db := core.LinearToDB(mid); math.Abs(db-(-30)) > 1e-9 {
		t.Fatalf("centre maps to %v dB, want -30 dB", db)
	}
	if got := r.Normalize(core.DBToLinear(-30)); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("Normalize(-30 dB) = %v, want 0.5", got)
	}
	if got := r.Unnormalize(0); got != minGain {
		t.Fatalf("Unnormalize(0) = %v, want %v", got, minGain)
	}
	if got := r.Unnormalize(1); math.Abs(got-1) > 1e-15 {
		t.Fatalf("Unnormalize(1) = %v, want 1", got)
	}
}

func TestSkewedRoundTrip(t *testing.T) {
	r := SkewedRange(20, 20000, SkewFactor(-2))
	for p := 0.0; p <= 1.0; p += 0.05 {
		v := r.Unnormalize(p)
		if back := r.Normalize(v); math.Abs(back-p) > 1e-12 {
			t.Fatalf("round trip %v -> %v -> %v", p, v, back)
		}
	}
}

func TestSkewedInvalidFactor(t *testing.T) {
	r := SkewedRange(0, 1, 0)
	if r.Factor != 1 {
		t.Fatalf("factor = %v, want 1", r.Factor)
	}
	lit := Range{Kind: RangeSkewed, Min: 0, Max: 1}
	if got := lit.Unnormalize(0.5); got != 0.5 {
		t.Fatalf("zero-factor literal Unnormalize(0.5) = %v, want 0.5", got)
	}
}

func TestSkewFactor(t *testing.T) {
	if SkewFactor(0) != 1 || SkewFactor(1) != 2 || SkewFactor(-1) != 0.5 {
		t.Fatal("unexpected skew factor")
	}
}

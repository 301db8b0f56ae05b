package param

import (
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// RangeKind selects how a Range maps normalized positions to plain values.
type RangeKind int

const (
	// RangeLinear maps positions proportionally.
	RangeLinear RangeKind = iota
	// RangeSkewed applies a power curve in the normalized domain.
	RangeSkewed
	// RangeInt is linear with plain values rounded to integers.
	RangeInt
)

// Range describes the plain-value domain of a parameter.
type Range struct {
	Kind   RangeKind
	Min    float64
	Max    float64
	Factor float64
}

// LinearRange returns a linear mapping over [min, max].
func LinearRange(min, max float64) Range {
	if min > max {
		min, max = max, min
	}
	return Range{Kind: RangeLinear, Min: min, Max: max, Factor: 1}
}

// SkewedRange returns a power-curve mapping over [min, max]. Factors below 1
// give more control resolution near min. Non-positive or non-finite factors
// fall back to 1.
func SkewedRange(min, max, factor float64) Range {
	if min > max {
		min, max = max, min
	}
	if factor <= 0 || !core.IsFinite(factor) {
		factor = 1
	}
	return Range{Kind: RangeSkewed, Min: min, Max: max, Factor: factor}
}

// IntRange returns a linear mapping over the integers [min, max].
func IntRange(min, max int) Range {
	if min > max {
		min, max = max, min
	}
	return Range{Kind: RangeInt, Min: float64(min), Max: float64(max), Factor: 1}
}

// SkewFactor converts a skew exponent to a Range factor: 0 is linear,
// negative values favour the low end and positive values the high end.
func SkewFactor(exp float64) float64 {
	return math.Pow(2, exp)
}

// GainSkewFactor returns the factor that places the dB midpoint of
// [minDB, maxDB] at the centre of a skewed linear-gain range.
func GainSkewFactor(minDB, maxDB float64) float64 {
	minGain := core.DBToLinear(minDB)
	maxGain := core.DBToLinear(maxDB)
	midGain := core.DBToLinear((minDB + maxDB) / 2)
	return math.Log(0.5) / math.Log((midGain-minGain)/(maxGain-minGain))
}

// Clamp limits v to the range, rounding for RangeInt.
func (r Range) Clamp(v float64) float64 {
	v = core.Clamp(v, r.Min, r.Max)
	if r.Kind == RangeInt {
		v = math.Round(v)
	}
	return v
}

// Normalize maps a plain value to a position in [0, 1].
func (r Range) Normalize(v float64) float64 {
	span := r.Max - r.Min
	if span <= 0 || math.IsNaN(v) {
		return 0
	}
	p := (r.Clamp(v) - r.Min) / span
	if r.Kind == RangeSkewed {
		p = math.Pow(p, r.skew())
	}
	return p
}

// Unnormalize maps a position in [0, 1] to a plain value.
func (r Range) Unnormalize(p float64) float64 {
	if math.IsNaN(p) {
		p = 0
	}
	p = core.Clamp(p, 0, 1)
	if r.Kind == RangeSkewed {
		p = math.Pow(p, 1/r.skew())
	}
	v := r.Min + p*(r.Max-r.Min)
	if r.Kind == RangeInt {
		v = math.Round(v)
	}
	return v
}

func (r Range) skew() float64 {
	if r.Factor <= 0 || !core.IsFinite(r.Factor) {
		return 1
	}
	return r.Factor
}

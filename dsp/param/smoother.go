package param

import (
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// SmoothingKind selects the interpolation law of a Smoother.
type SmoothingKind int

const (
	// SmoothingNone jumps to the target immediately.
	SmoothingNone SmoothingKind = iota
	// SmoothingLinear moves by a constant delta per step.
	SmoothingLinear
	// SmoothingLogarithmic moves by a constant ratio per step.
	SmoothingLogarithmic
	// SmoothingExponential approaches the target with a one-pole decay.
	SmoothingExponential
)

const (
	// logFloor lifts non-positive endpoints of logarithmic smoothing.
	logFloor = 1e-9

	// expResidual is the fraction of the distance left by the exponential
	// law after the full smoothing time, before it snaps to the target.
	expResidual = 1e-4
)

// Smoothing describes a smoothing law and its duration.
type Smoothing struct {
	Kind   SmoothingKind
	TimeMs float64
}

// NoSmoothing returns a law that applies targets immediately.
func NoSmoothing() Smoothing { return Smoothing{Kind: SmoothingNone} }

// LinearSmoothing interpolates linearly over ms milliseconds.
func LinearSmoothing(ms float64) Smoothing { return Smoothing{Kind: SmoothingLinear, TimeMs: ms} }

// LogSmoothing interpolates in the logarithmic domain over ms milliseconds.
// Both endpoints should be positive.
func LogSmoothing(ms float64) Smoothing { return Smoothing{Kind: SmoothingLogarithmic, TimeMs: ms} }

// ExpSmoothing decays exponentially toward the target over ms milliseconds.
func ExpSmoothing(ms float64) Smoothing { return Smoothing{Kind: SmoothingExponential, TimeMs: ms} }

// Steps returns the number of samples a full transition takes at sampleRate.
func (s Smoothing) Steps(sampleRate float64) int {
	if s.Kind == SmoothingNone || s.TimeMs <= 0 || sampleRate <= 0 ||
		!core.IsFinite(s.TimeMs) || !core.IsFinite(sampleRate) {
		return 0
	}
	return int(math.Round(s.TimeMs / 1000 * sampleRate))
}

// Smoother moves a value toward a target over a fixed number of steps.
// It is not safe for concurrent use; the owning audio goroutine drives it.
type Smoother struct {
	style Smoothing
	steps int

	current   float64
	target    float64
	remaining int

	// step is the per-step delta for the linear law and the log of the
	// per-step ratio for the logarithmic law.
	step float64
	// logCoef is the log of the exponential law's per-step coefficient.
	logCoef float64
	coef    float64
}

// NewSmoother returns a smoother resting at value.
func NewSmoother(style Smoothing, value float64) Smoother {
	s := Smoother{style: style}
	s.Reset(value)
	return s
}

// SetSampleRate recomputes the step count for the configured time. A
// transition in flight keeps its remaining step budget.
func (s *Smoother) SetSampleRate(sampleRate float64) {
	s.steps = s.style.Steps(sampleRate)
	if s.steps > 0 {
		s.logCoef = math.Log(expResidual) / float64(s.steps)
		s.coef = mathExp(s.logCoef)
	} else {
		s.logCoef, s.coef = 0, 0
	}
}

// Reset jumps to value and stops any transition.
func (s *Smoother) Reset(value float64) {
	s.current = value
	s.target = value
	s.remaining = 0
}

// SetTarget starts a transition from the current value to target.
func (s *Smoother) SetTarget(target float64) {
	s.target = target
	if s.steps == 0 || s.style.Kind == SmoothingNone || target == s.current {
		s.current = target
		s.remaining = 0
		return
	}

	s.remaining = s.steps
	switch s.style.Kind {
	case SmoothingLinear:
		s.step = (target - s.current) / float64(s.steps)
	case SmoothingLogarithmic:
		if s.current < logFloor {
			s.current = logFloor
		}
		to := target
		if to < logFloor {
			to = logFloor
		}
		s.step = (mathLog(to) - mathLog(s.current)) / float64(s.steps)
	}
}

// Next advances one step and returns the new current value.
func (s *Smoother) Next() float64 {
	return s.NextN(1)
}

// NextN advances n steps at once in constant time and returns the new
// current value.
func (s *Smoother) NextN(n int) float64 {
	if s.remaining == 0 || n <= 0 {
		return s.current
	}
	if n >= s.remaining {
		s.remaining = 0
		s.current = s.target
		return s.current
	}
	s.remaining -= n

	rising := s.target > s.current
	switch s.style.Kind {
	case SmoothingLinear:
		s.current += s.step * float64(n)
	case SmoothingLogarithmic:
		if n == 1 {
			s.current *= mathExp(s.step)
		} else {
			s.current *= mathExp(s.step * float64(n))
		}
	case SmoothingExponential:
		k := s.coef
		if n > 1 {
			k = mathExp(s.logCoef * float64(n))
		}
		s.current = s.target + (s.current-s.target)*k
	}

	if (rising && s.current > s.target) || (!rising && s.current < s.target) {
		s.current = s.target
		s.remaining = 0
	}
	return s.current
}

// Current returns the value produced by the last step.
func (s *Smoother) Current() float64 { return s.current }

// Target returns the value being approached.
func (s *Smoother) Target() float64 { return s.target }

// IsSmoothing reports whether a transition is in progress.
func (s *Smoother) IsSmoothing() bool { return s.remaining > 0 }

// Remaining returns the number of steps left in the current transition.
func (s *Smoother) Remaining() int { return s.remaining }

// Style returns the configured smoothing law.
func (s *Smoother) Style() Smoothing { return s.style }

package ir

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// Errors returned by IR analysis.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrSilentIR          = errors.New("ir: impulse response is silent")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidDuration   = errors.New("ir: duration must be positive")
)

// DefaultOnsetThresholdDB is the level below the peak at which the response
// is considered to have started.
const DefaultOnsetThresholdDB = -60.0

// curveFloorDB replaces -inf in decay curves.
const curveFloorDB = -200.0

// Metrics holds decay measurements of one channel.
type Metrics struct {
	OnsetIndex int     // first sample within the onset threshold of the peak
	Onset      float64 // OnsetIndex in seconds
	PeakIndex  int     // sample index of the absolute maximum
	EDT        float64 // seconds, from the 0 to -10 dB slope
	T20        float64 // seconds, from the -5 to -25 dB slope
	T30        float64 // seconds, from the -5 to -35 dB slope
	RT60       float64 // T30 if available, else T20
	C80        float64 // dB
}

// Analyzer measures impulse responses at a fixed sample rate.
type Analyzer struct {
	SampleRate       float64
	OnsetThresholdDB float64
}

// NewAnalyzer returns an analyzer with the default onset threshold.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate, OnsetThresholdDB: DefaultOnsetThresholdDB}
}

// Analyze measures ir. Decay times are fitted from the onset on, so a
// pre-delay does not shorten them.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if len(ir) == 0 {
		return Metrics{}, ErrEmptyIR
	}
	if a.SampleRate <= 0 || !core.IsFinite(a.SampleRate) {
		return Metrics{}, ErrInvalidSampleRate
	}

	peak, peakAbs := peakOf(ir)
	if peakAbs == 0 {
		return Metrics{}, ErrSilentIR
	}
	onset := onsetOf(ir, peakAbs*core.DBToLinear(a.OnsetThresholdDB))

	tail := ir[onset:]
	curve := DecayCurve(tail)

	m := Metrics{
		OnsetIndex: onset,
		Onset:      float64(onset) / a.SampleRate,
		PeakIndex:  peak,
		EDT:        a.fitDecay(curve, 0, -10),
		T20:        a.fitDecay(curve, -5, -25),
		T30:        a.fitDecay(curve, -5, -35),
		C80:        a.clarity(tail, 80),
	}
	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}
	return m, nil
}

// DecayCurve returns the Schroeder backward integral of ir in dB relative to
// the total energy. Silent input yields an all-zero curve.
func DecayCurve(ir []float64) []float64 {
	curve := make([]float64, len(ir))
	var acc float64
	for i := len(ir) - 1; i >= 0; i-- {
		acc += ir[i] * ir[i]
		curve[i] = acc
	}
	if len(curve) == 0 || curve[0] <= 0 {
		clear(curve)
		return curve
	}

	total := curve[0]
	for i, e := range curve {
		if e <= 0 {
			curve[i] = curveFloorDB
			continue
		}
		curve[i] = core.LinearPowerToDB(e / total)
	}
	return curve
}

// fitDecay fits a line to curve between the first crossings of fromDB and
// toDB and extrapolates it to a 60 dB decay. It returns 0 when the curve
// does not reach toDB or does not fall.
func (a *Analyzer) fitDecay(curve []float64, fromDB, toDB float64) float64 {
	lo := crossing(curve, 0, fromDB)
	if lo < 0 {
		return 0
	}
	hi := crossing(curve, lo, toDB)
	if hi <= lo {
		return 0
	}

	n := float64(hi - lo + 1)
	var sx, sy, sxx, sxy float64
	for i := lo; i <= hi; i++ {
		x := float64(i - lo)
		sx += x
		sy += curve[i]
		sxx += x * x
		sxy += x * curve[i]
	}
	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}

	dbPerSample := (n*sxy - sx*sy) / den
	if dbPerSample >= 0 {
		return 0
	}
	return -60 / (dbPerSample * a.SampleRate)
}

// clarity is the early-to-late energy ratio in dB with the boundary ms after
// the first sample.
func (a *Analyzer) clarity(ir []float64, ms float64) float64 {
	split := min(int(math.Round(ms*a.SampleRate/1000)), len(ir))
	var early, late float64
	for i, v := range ir {
		if i < split {
			early += v * v
		} else {
			late += v * v
		}
	}
	switch {
	case late == 0:
		return math.Inf(1)
	case early == 0:
		return math.Inf(-1)
	}
	return core.LinearPowerToDB(early / late)
}

// crossing returns the first index at or after from where curve is at or
// below db, or -1.
func crossing(curve []float64, from int, db float64) int {
	for i := from; i < len(curve); i++ {
		if curve[i] <= db {
			return i
		}
	}
	return -1
}

func peakOf(ir []float64) (int, float64) {
	idx, peak := 0, 0.0
	for i, v := range ir {
		if a := math.Abs(v); a > peak {
			idx, peak = i, a
		}
	}
	return idx, peak
}

func onsetOf(ir []float64, threshold float64) int {
	for i, v := range ir {
		if math.Abs(v) >= threshold {
			return i
		}
	}
	return 0
}

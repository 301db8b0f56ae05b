package ir

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// Spectrum is a one-sided power spectrum.
type Spectrum struct {
	SampleRate float64
	// FFTSize is the transform length; PowerDB has FFTSize/2+1 bins.
	FFTSize int
	PowerDB []float64
}

// MagnitudeResponse returns the power spectrum of ir in dB. The response is
// zero-padded to the next power of two.
func MagnitudeResponse(ir []float64, sampleRate float64) (Spectrum, error) {
	if len(ir) == 0 {
		return Spectrum{}, ErrEmptyIR
	}
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return Spectrum{}, ErrInvalidSampleRate
	}

	size := nextPow2(len(ir))
	in := make([]complex128, size)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return Spectrum{}, fmt.Errorf("ir: fft plan: %w", err)
	}
	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return Spectrum{}, fmt.Errorf("ir: fft: %w", err)
	}

	bins := size/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i], im[i] = real(out[i]), imag(out[i])
	}
	power := make([]float64, bins)
	vecmath.Power(power, re, im)

	for i, p := range power {
		db := core.LinearPowerToDB(p)
		if math.IsInf(db, -1) {
			db = curveFloorDB
		}
		power[i] = db
	}

	return Spectrum{SampleRate: sampleRate, FFTSize: size, PowerDB: power}, nil
}

// BinHz returns the bin spacing in Hz.
func (s Spectrum) BinHz() float64 {
	if s.FFTSize == 0 {
		return 0
	}
	return s.SampleRate / float64(s.FFTSize)
}

// BandLevelDB returns the mean power between loHz and hiHz in dB. Bins are
// averaged in the power domain. An empty band yields -inf.
func (s Spectrum) BandLevelDB(loHz, hiHz float64) float64 {
	df := s.BinHz()
	if df == 0 || hiHz < loHz {
		return math.Inf(-1)
	}
	lo := max(int(math.Ceil(loHz/df)), 0)
	hi := min(int(math.Floor(hiHz/df)), len(s.PowerDB)-1)
	if hi < lo {
		return math.Inf(-1)
	}

	var sum float64
	for _, db := range s.PowerDB[lo : hi+1] {
		sum += math.Pow(10, db/10)
	}
	return core.LinearPowerToDB(sum / float64(hi-lo+1))
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

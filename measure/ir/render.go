package ir

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// Processor is the stereo in-place processor Render drives, typically a
// *reverbchain.Chain.
type Processor interface {
	Process(channels [][]float64) error
	Reset()
	SampleRate() float64
}

// Response is a rendered stereo impulse response.
type Response struct {
	SampleRate float64
	Left       []float64
	Right      []float64
}

// Render resets p, feeds a unit impulse into both channels and returns the
// next seconds of output.
func Render(p Processor, seconds float64) (Response, error) {
	sr := p.SampleRate()
	if sr <= 0 || !core.IsFinite(sr) {
		return Response{}, ErrInvalidSampleRate
	}
	if seconds <= 0 || !core.IsFinite(seconds) {
		return Response{}, fmt.Errorf("%w: %v", ErrInvalidDuration, seconds)
	}

	n := max(int(math.Ceil(seconds*sr)), 1)
	resp := Response{
		SampleRate: sr,
		Left:       make([]float64, n),
		Right:      make([]float64, n),
	}
	resp.Left[0], resp.Right[0] = 1, 1

	p.Reset()
	if err := p.Process([][]float64{resp.Left, resp.Right}); err != nil {
		return Response{}, fmt.Errorf("ir: render: %w", err)
	}
	return resp, nil
}

// RemoveDirect subtracts the direct path of the given gain, leaving only the
// reverberant part of the response.
func (r *Response) RemoveDirect(gain float64) {
	if len(r.Left) > 0 {
		r.Left[0] -= gain
	}
	if len(r.Right) > 0 {
		r.Right[0] -= gain
	}
}

// Duration returns the response length in seconds.
func (r Response) Duration() float64 {
	if r.SampleRate <= 0 {
		return 0
	}
	return float64(len(r.Left)) / r.SampleRate
}

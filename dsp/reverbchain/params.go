package reverbchain

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/delay"
	"github.com/cwbudde/algo-reverb/dsp/param"
)

// Parameter IDs.
const (
	IDWet         = "wet"
	IDDry         = "dry"
	IDPreDelay    = "pre_delay"
	IDSize        = "size"
	IDStereoWidth = "stereo_width"
	IDDamping     = "damping"
)

const (
	gainFloorDB = -60.0
	smoothingMs = 10.0

	// maxPreDelayCeilingMs bounds the pre-delay range so it fits an int.
	maxPreDelayCeilingMs = math.MaxInt32
)

// Params holds the chain's controls. Fields are fixed after construction;
// the values behind them are safe to set from any goroutine.
type Params struct {
	// Wet is the reverb gain, linear, shown in dB.
	Wet *param.Param
	// Dry is the input gain, linear, shown in dB.
	Dry *param.Param
	// PreDelay is the gap before the reverb in whole milliseconds. It is
	// neither smoothed nor automatable since it resizes the delay line.
	PreDelay *param.Param
	// Size is the room size in [0, 1].
	Size *param.Param
	// Width is the stereo width in [0, 1].
	Width *param.Param
	// Damping is the high-frequency absorption.
	Damping *param.Param

	store *param.Store
}

// NewParams builds the default parameter set with a pre-delay range of
// [0, maxPreDelayMs].
func NewParams(maxPreDelayMs float64) (*Params, error) {
	if !(maxPreDelayMs >= 0) || maxPreDelayMs > maxPreDelayCeilingMs {
		return nil, fmt.Errorf("reverbchain: pre-delay ceiling %g ms: %w", maxPreDelayMs, delay.ErrInvalidDelay)
	}

	minGain := core.DBToLinear(gainFloorDB)
	gainRange := param.SkewedRange(minGain, 1, param.GainSkewFactor(gainFloorDB, 0))
	gainOpts := []param.Option{
		param.WithSmoothing(param.LogSmoothing(smoothingMs)),
		param.WithUnit(" dB"),
		param.WithFormatter(param.GainToDB(2), param.DBToGain()),
	}

	p := &Params{
		Wet: param.New(IDWet, "Wet", 1, gainRange, gainOpts...),
		Dry: param.New(IDDry, "Dry", minGain, gainRange, gainOpts...),
		PreDelay: param.New(IDPreDelay, "Pre delay", 0,
			param.IntRange(0, int(maxPreDelayMs)),
			param.WithUnit(" ms"),
			param.WithFormatter(param.Rounded(0), nil),
			param.NonAutomatable(),
		),
		Size: param.New(IDSize, "Room size", 0.5, param.LinearRange(0, 1),
			param.WithSmoothing(param.LinearSmoothing(smoothingMs)),
		),
		Width: param.New(IDStereoWidth, "Stereo Width", 0, param.LinearRange(0, 1),
			param.WithSmoothing(param.LinearSmoothing(smoothingMs)),
		),
		Damping: param.New(IDDamping, "Damping", 0.5, param.LinearRange(math.Sqrt(minGain), 1),
			param.WithSmoothing(param.ExpSmoothing(smoothingMs)),
			param.WithFormatter(param.Rounded(2), nil),
		),
	}

	store, err := param.NewStore(p.Wet, p.Dry, p.PreDelay, p.Size, p.Width, p.Damping)
	if err != nil {
		return nil, err
	}
	p.store = store
	return p, nil
}

// Store returns the parameters as an ID-addressable store.
func (p *Params) Store() *param.Store {
	return p.store
}

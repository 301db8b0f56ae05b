package reverb

import (
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

const (
	numCombs     = 8
	numAllpasses = 4

	fixedGain       = 0.015
	scaleWet        = 3.0
	scaleDry        = 2.0
	scaleDamp       = 0.4
	scaleRoom       = 0.28
	offsetRoom      = 0.7
	stereoSpread    = 23
	allpassFeedback = 0.5

	defaultWet      = 1.0 / scaleWet
	defaultDry      = 0.0
	defaultWidth    = 1.0
	defaultRoomSize = 0.5
	defaultDamp     = 0.5

	// Tuning values are calibrated for this rate and scaled to others.
	tuningSampleRate = 44100.0
)

var (
	combTuning    = [numCombs]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
	allpassTuning = [numAllpasses]int{556, 441, 341, 225}
)

type allpass struct {
	buffer []float64
	index  int
}

func newAllpass(size int) allpass {
	return allpass{buffer: make([]float64, size)}
}

func (a *allpass) process(input float64) float64 {
	bufOut := a.buffer[a.index]
	a.buffer[a.index] = input + bufOut*allpassFeedback
	a.index++
	if a.index >= len(a.buffer) {
		a.index = 0
	}
	return bufOut - input
}

func (a *allpass) reset() {
	clear(a.buffer)
	a.index = 0
}

type comb struct {
	feedback    float64
	filterStore float64
	damp        float64
	dampInv     float64
	buffer      []float64
	index       int
}

func newComb(size int) comb {
	return comb{buffer: make([]float64, size)}
}

func (c *comb) tune(feedback, damp float64) {
	c.feedback = feedback
	c.damp = damp
	c.dampInv = 1 - damp
}

func (c *comb) process(input float64) float64 {
	output := c.buffer[c.index]
	c.filterStore = core.FlushDenormals(output*c.dampInv + c.filterStore*c.damp)
	c.buffer[c.index] = input + c.filterStore*c.feedback
	c.index++
	if c.index >= len(c.buffer) {
		c.index = 0
	}
	return output
}

func (c *comb) reset() {
	clear(c.buffer)
	c.index = 0
	c.filterStore = 0
}

// Freeverb is a stereo Freeverb reverb: eight parallel damped combs into four
// series allpasses per side, the right side detuned by a fixed spread.
//
// Wet and dry are linear gains. Width in [0, 1] blends the two reverb
// outputs from mono (0) to fully decorrelated (1). Room size and dampening
// are in [0, 1].
type Freeverb struct {
	sampleRate float64

	wet       float64
	dry       float64
	width     float64
	roomSize  float64
	dampening float64
	frozen    bool

	wet1, wet2 float64
	dryGain    float64
	inputGain  float64

	combsL, combsR         [numCombs]comb
	allpassesL, allpassesR [numAllpasses]allpass
}

// NewFreeverb builds a reverb for sampleRate with default settings.
func NewFreeverb(sampleRate float64) (*Freeverb, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("freeverb sample rate must be > 0: %f", sampleRate)
	}

	f := &Freeverb{sampleRate: sampleRate}
	for i, n := range combTuning {
		f.combsL[i] = newComb(scaleTuning(n, sampleRate))
		f.combsR[i] = newComb(scaleTuning(n+stereoSpread, sampleRate))
	}
	for i, n := range allpassTuning {
		f.allpassesL[i] = newAllpass(scaleTuning(n, sampleRate))
		f.allpassesR[i] = newAllpass(scaleTuning(n+stereoSpread, sampleRate))
	}

	f.wet = defaultWet
	f.dry = defaultDry
	f.width = defaultWidth
	f.roomSize = defaultRoomSize
	f.dampening = defaultDamp
	f.update()
	return f, nil
}

func scaleTuning(n int, sampleRate float64) int {
	size := int(float64(n) * sampleRate / tuningSampleRate)
	if size < 1 {
		size = 1
	}
	return size
}

// Tick processes one stereo frame.
func (f *Freeverb) Tick(left, right float64) (float64, float64) {
	x := (left + right) * f.inputGain

	var outL, outR float64
	for i := range f.combsL {
		outL += f.combsL[i].process(x)
		outR += f.combsR[i].process(x)
	}
	for i := range f.allpassesL {
		outL = f.allpassesL[i].process(outL)
		outR = f.allpassesR[i].process(outR)
	}

	return outL*f.wet1 + outR*f.wet2 + left*f.dryGain,
		outR*f.wet1 + outL*f.wet2 + right*f.dryGain
}

// Reset clears all delay and filter state.
func (f *Freeverb) Reset() {
	for i := range f.combsL {
		f.combsL[i].reset()
		f.combsR[i].reset()
	}
	for i := range f.allpassesL {
		f.allpassesL[i].reset()
		f.allpassesR[i].reset()
	}
}

// SetWet sets the reverb output gain.
func (f *Freeverb) SetWet(v float64) {
	f.wet = v
	f.update()
}

// SetDry sets the gain of the input passed through alongside the reverb.
func (f *Freeverb) SetDry(v float64) {
	f.dry = v
	f.update()
}

// SetWidth sets stereo width in [0, 1].
func (f *Freeverb) SetWidth(v float64) {
	f.width = core.Clamp(v, 0, 1)
	f.update()
}

// SetRoomSize sets comb feedback in [0, 1].
func (f *Freeverb) SetRoomSize(v float64) {
	f.roomSize = core.Clamp(v, 0, 1)
	f.update()
}

// SetDampening sets high-frequency absorption in [0, 1].
func (f *Freeverb) SetDampening(v float64) {
	f.dampening = core.Clamp(v, 0, 1)
	f.update()
}

// SetFrozen holds the current tail indefinitely: input is muted and the
// combs recirculate without loss.
func (f *Freeverb) SetFrozen(frozen bool) {
	f.frozen = frozen
	f.update()
}

func (f *Freeverb) update() {
	wet := f.wet * scaleWet
	f.wet1 = wet * (f.width/2 + 0.5)
	f.wet2 = wet * ((1 - f.width) / 2)
	f.dryGain = f.dry * scaleDry

	feedback := f.roomSize*scaleRoom + offsetRoom
	damp := f.dampening * scaleDamp
	f.inputGain = fixedGain
	if f.frozen {
		feedback = 1
		damp = 0
		f.inputGain = 0
	}

	for i := range f.combsL {
		f.combsL[i].tune(feedback, damp)
		f.combsR[i].tune(feedback, damp)
	}
}

// SampleRate returns the rate the delay lengths were scaled for.
func (f *Freeverb) SampleRate() float64 { return f.sampleRate }

// Wet returns the reverb output gain.
func (f *Freeverb) Wet() float64 { return f.wet }

// Dry returns the pass-through gain.
func (f *Freeverb) Dry() float64 { return f.dry }

// Width returns stereo width.
func (f *Freeverb) Width() float64 { return f.width }

// RoomSize returns the room size.
func (f *Freeverb) RoomSize() float64 { return f.roomSize }

// Dampening returns the damping amount.
func (f *Freeverb) Dampening() float64 { return f.dampening }

// Frozen reports whether the tail is held.
func (f *Freeverb) Frozen() bool { return f.frozen }

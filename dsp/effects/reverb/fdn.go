package reverb

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

const (
	fdnLines = 8

	fdnMinRT60     = 0.2 // seconds at room size 0
	fdnMaxRT60     = 8.0 // seconds at room size 1
	fdnMaxDamp     = 0.7
	fdnModDepthSec = 0.002
	fdnModRateHz   = 0.1
	fdnPadding     = 3
)

// Line lengths in samples at 44.1 kHz, mutually prime.
var fdnTuning = [fdnLines]float64{1537, 1753, 1999, 2251, 2473, 2689, 2851, 3067}

// Unnormalized 8x8 Hadamard matrix; the feedback path scales it by 1/sqrt(8).
var fdnHadamard = [fdnLines][fdnLines]float64{
	{1, 1, 1, 1, 1, 1, 1, 1},
	{1, -1, 1, -1, 1, -1, 1, -1},
	{1, 1, -1, -1, 1, 1, -1, -1},
	{1, -1, -1, 1, 1, -1, -1, 1},
	{1, 1, 1, 1, -1, -1, -1, -1},
	{1, -1, 1, -1, -1, 1, -1, 1},
	{1, 1, -1, -1, -1, -1, 1, 1},
	{1, -1, -1, 1, -1, 1, 1, -1},
}

// FDN is a stereo feedback-delay-network reverb with slowly modulated line
// lengths and one-pole damping in each feedback path. Even lines feed the
// left output and odd lines the right.
//
// Its controls mirror Freeverb's so either can drive a reverb chain: room
// size sets the decay time between 0.2 s and 8 s on a logarithmic scale and
// dampening sets the loop low-pass.
type FDN struct {
	sampleRate float64

	wet, dry, width float64
	roomSize, damp  float64

	wet1, wet2 float64
	dryGain    float64
	lowpass    float64
	rt60       float64

	lines    [fdnLines]fdnLine
	delay    [fdnLines]float64 // nominal length in samples
	feedback [fdnLines]float64
	filter   [fdnLines]float64
	lfoPhase float64
	lfoStep  float64
	modDepth float64
}

// NewFDN builds an FDN reverb for sampleRate.
func NewFDN(sampleRate float64) (*FDN, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("reverb: fdn sample rate must be finite and > 0: %f", sampleRate)
	}

	r := &FDN{
		sampleRate: sampleRate,
		wet:        defaultWet,
		width:      defaultWidth,
		roomSize:   defaultRoomSize,
		damp:       defaultDamp,
		lfoStep:    2 * math.Pi * fdnModRateHz / sampleRate,
		modDepth:   fdnModDepthSec * sampleRate,
	}
	scale := sampleRate / tuningSampleRate
	for i, n := range fdnTuning {
		r.delay[i] = n * scale
		r.lines[i].init(int(math.Ceil(r.delay[i]+r.modDepth)) + fdnPadding)
	}
	r.update()
	return r, nil
}

// Tick processes one stereo frame.
func (r *FDN) Tick(left, right float64) (float64, float64) {
	in := (left + right) * 0.5 / math.Sqrt(fdnLines)

	var taps [fdnLines]float64
	for i := range r.lines {
		mod := 0.5 * (1 + math.Sin(r.lfoPhase+float64(i)*2*math.Pi/fdnLines))
		taps[i] = r.lines[i].read(r.delay[i] + r.modDepth*mod)
	}
	r.lfoPhase += r.lfoStep
	if r.lfoPhase >= 2*math.Pi {
		r.lfoPhase -= 2 * math.Pi
	}

	var outL, outR float64
	for i := range r.lines {
		var mix float64
		for j, tap := range taps {
			mix += fdnHadamard[i][j] * tap
		}
		mix /= math.Sqrt(fdnLines)

		r.filter[i] = core.FlushDenormals(mix*(1-r.lowpass) + r.filter[i]*r.lowpass)
		r.lines[i].write(in + r.filter[i]*r.feedback[i])

		if i%2 == 0 {
			outL += taps[i]
		} else {
			outR += taps[i]
		}
	}
	outL /= math.Sqrt(fdnLines / 2)
	outR /= math.Sqrt(fdnLines / 2)

	return outL*r.wet1 + outR*r.wet2 + left*r.dryGain,
		outR*r.wet1 + outL*r.wet2 + right*r.dryGain
}

// Reset clears all delay and filter state.
func (r *FDN) Reset() {
	for i := range r.lines {
		r.lines[i].reset()
		r.filter[i] = 0
	}
	r.lfoPhase = 0
}

// SetWet sets the reverb output gain. Negative values are treated as 0.
func (r *FDN) SetWet(v float64) {
	r.wet = max(v, 0)
	r.update()
}

// SetDry sets the gain of the input passed through alongside the reverb.
func (r *FDN) SetDry(v float64) {
	r.dry = max(v, 0)
	r.update()
}

// SetWidth sets the stereo width in [0, 1].
func (r *FDN) SetWidth(v float64) {
	r.width = core.Clamp(v, 0, 1)
	r.update()
}

// SetRoomSize sets the decay length in [0, 1].
func (r *FDN) SetRoomSize(v float64) {
	r.roomSize = core.Clamp(v, 0, 1)
	r.update()
}

// SetDampening sets the high-frequency absorption in [0, 1].
func (r *FDN) SetDampening(v float64) {
	r.damp = core.Clamp(v, 0, 1)
	r.update()
}

// SampleRate returns the sample rate in Hz.
func (r *FDN) SampleRate() float64 { return r.sampleRate }

// RT60 returns the decay time implied by the room size, in seconds.
func (r *FDN) RT60() float64 { return r.rt60 }

func (r *FDN) Wet() float64       { return r.wet }
func (r *FDN) Dry() float64       { return r.dry }
func (r *FDN) Width() float64     { return r.width }
func (r *FDN) RoomSize() float64  { return r.roomSize }
func (r *FDN) Dampening() float64 { return r.damp }

func (r *FDN) update() {
	r.wet1 = r.wet * (r.width/2 + 0.5)
	r.wet2 = r.wet * (1 - r.width) / 2
	r.dryGain = r.dry
	r.lowpass = r.damp * fdnMaxDamp

	r.rt60 = fdnMinRT60 * math.Pow(fdnMaxRT60/fdnMinRT60, r.roomSize)
	for i, d := range r.delay {
		r.feedback[i] = math.Pow(10, -3*d/(r.sampleRate*r.rt60))
	}
}

// fdnLine is a circular buffer read with four-point Hermite interpolation.
type fdnLine struct {
	buf []float64
	pos int
}

func (d *fdnLine) init(size int) {
	d.buf = make([]float64, max(size, fdnPadding+1))
	d.pos = 0
}

func (d *fdnLine) reset() {
	clear(d.buf)
	d.pos = 0
}

func (d *fdnLine) write(x float64) {
	d.buf[d.pos] = x
	d.pos++
	if d.pos == len(d.buf) {
		d.pos = 0
	}
}

// read returns the sample delay samples before the last write.
func (d *fdnLine) read(delay float64) float64 {
	delay = core.Clamp(delay, 0, float64(len(d.buf)-fdnPadding))
	n := int(delay)
	t := delay - float64(n)
	return hermite(t, d.at(max(n-1, 0)), d.at(n), d.at(n+1), d.at(n+2))
}

func (d *fdnLine) at(delay int) float64 {
	i := d.pos - 1 - delay
	if i < 0 {
		i += len(d.buf)
	}
	return d.buf[i]
}

func hermite(t, xm1, x0, x1, x2 float64) float64 {
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + x0
}

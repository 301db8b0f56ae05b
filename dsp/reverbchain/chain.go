package reverbchain

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/delay"
	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrUnsupportedLayout is returned for a channel configuration the chain
	// cannot process. The buffer is left untouched.
	ErrUnsupportedLayout = errors.New("reverbchain: unsupported channel layout")
	// ErrNotInitialized is returned when Process runs on a chain that has no
	// engine yet.
	ErrNotInitialized = errors.New("reverbchain: chain not initialized")
)

// Chain is reverb → pre-delay → dry/wet sum.
type Chain struct {
	cfg     core.ProcessorConfig
	factory EngineFactory
	params  *Params

	layout Layout
	engine Engine
	line   *delay.StereoLine

	// dry is latched once per block by ApplyParameters.
	dry float64

	wetL []float64
	wetR []float64
}

// New builds a stereo chain at the configured sample rate. A nil factory
// selects the Freeverb engine.
func New(factory EngineFactory, opts ...core.ProcessorOption) (*Chain, error) {
	cfg := core.ApplyProcessorOptions(opts...)
	if factory == nil {
		factory = NewFreeverbEngine
	}

	params, err := NewParams(cfg.MaxPreDelayMs)
	if err != nil {
		return nil, err
	}

	c := &Chain{
		cfg:     cfg,
		factory: factory,
		params:  params,
	}
	if err := c.Initialize(cfg.SampleRate, Stereo); err != nil {
		return nil, err
	}
	return c, nil
}

// Initialize prepares the chain for a sample rate and the widest layout the
// host will send. It rebuilds the engine and the pre-delay line and snaps all
// smoothed values to their targets. On error the chain keeps its previous
// configuration. It allocates; call it off the audio path.
func (c *Chain) Initialize(sampleRate float64, layout Layout) error {
	if !layout.Valid() {
		return fmt.Errorf("%w: %v", ErrUnsupportedLayout, layout)
	}
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return fmt.Errorf("reverbchain: %w: %v", delay.ErrInvalidSampleRate, sampleRate)
	}

	engine, err := c.factory(sampleRate)
	if err != nil {
		return fmt.Errorf("reverbchain: engine: %w", err)
	}
	// The chain mixes the dry signal itself.
	engine.SetDry(0)

	line, err := delay.NewStereo(c.params.PreDelay.Plain(), c.cfg.MaxPreDelayMs, sampleRate)
	if err != nil {
		return fmt.Errorf("reverbchain: pre-delay: %w", err)
	}

	store := c.params.Store()
	store.SetSampleRate(sampleRate)
	store.Reset()

	c.cfg.SampleRate = sampleRate
	c.layout = layout
	c.engine = engine
	c.line = line
	c.wetL = core.EnsureLen(c.wetL, c.cfg.BlockSize)
	c.wetR = core.EnsureLen(c.wetR, c.cfg.BlockSize)

	return c.ApplyParameters(0)
}

// SetSampleRate re-initializes the chain at a new rate, keeping the layout.
func (c *Chain) SetSampleRate(sampleRate float64) error {
	layout := c.layout
	if !layout.Valid() {
		layout = Stereo
	}
	return c.Initialize(sampleRate, layout)
}

// ApplyParameters advances every smoothed parameter by steps samples and
// pushes the results into the engine and the pre-delay line. A rejected
// pre-delay change is returned as delay.ErrBufferTooSmall; the previous delay
// stays in effect.
func (c *Chain) ApplyParameters(steps int) error {
	if c.engine == nil {
		return ErrNotInitialized
	}
	c.params.Store().Advance(steps)
	c.pushGains()
	return c.line.SetDelay(c.params.PreDelay.Value())
}

// pushGains hands the current smoothed values to the engine and latches dry.
func (c *Chain) pushGains() {
	p := c.params
	c.engine.SetWet(p.Wet.Value())
	c.engine.SetWidth(p.Width.Value())
	c.engine.SetRoomSize(p.Size.Value())
	c.engine.SetDampening(p.Damping.Value())
	c.dry = p.Dry.Value()
}

// Process runs one host block in place. channels holds one (mono) or two
// (stereo) slices of equal length, not more than the initialized layout.
// Parameters are applied once for the whole block; if that fails the error
// is returned and the buffer is left as it was.
func (c *Chain) Process(channels [][]float64) error {
	if c.engine == nil {
		return ErrNotInitialized
	}
	n := len(channels)
	if n < 1 || n > c.layout.Channels() {
		return ErrUnsupportedLayout
	}
	frames := len(channels[0])
	if n == 2 && len(channels[1]) != frames {
		return ErrUnsupportedLayout
	}

	if err := c.ApplyParameters(frames); err != nil {
		return err
	}

	block := c.cfg.BlockSize
	for off := 0; off < frames; off += block {
		end := min(off+block, frames)
		left := channels[0][off:end]
		var right []float64
		if n == 2 {
			right = channels[1][off:end]
		}
		c.processChunk(left, right)
	}
	return nil
}

// processChunk handles at most BlockSize frames. right is nil for mono.
func (c *Chain) processChunk(left, right []float64) {
	wetL := c.wetL[:len(left)]
	wetR := c.wetR[:len(left)]

	for i, l := range left {
		r := 0.0
		if right != nil {
			r = right[i]
		}
		wl, wr := c.engine.Tick(l, r)
		wetL[i], wetR[i] = c.preDelay(wl, wr)
	}

	vecmath.ScaleBlock(left, left, c.dry)
	vecmath.AddBlockInPlace(left, wetL)
	if right != nil {
		vecmath.ScaleBlock(right, right, c.dry)
		vecmath.AddBlockInPlace(right, wetR)
	}
}

// preDelay reads the delayed frame and stores the new one. Lines of zero or
// one sample pass the frame through.
func (c *Chain) preDelay(l, r float64) (float64, float64) {
	if c.line.Length() <= 1 {
		return l, r
	}
	dl, dr := c.line.Head()
	c.line.Consume(l, r)
	return dl, dr
}

// Reset clears the engine state and the pre-delay line and snaps all
// smoothed parameters to their targets. The pre-delay length is left as is;
// a changed pre-delay target takes effect on the next Process.
func (c *Chain) Reset() {
	if c.engine == nil {
		return
	}
	c.engine.Reset()
	c.line.Reset()
	c.params.Store().Reset()
	c.pushGains()
}

// Params returns the control surface.
func (c *Chain) Params() *Params { return c.params }

// Layout returns the initialized channel layout.
func (c *Chain) Layout() Layout { return c.layout }

// SampleRate returns the current sample rate in Hz.
func (c *Chain) SampleRate() float64 { return c.cfg.SampleRate }

// BlockSize returns the internal chunk size.
func (c *Chain) BlockSize() int { return c.cfg.BlockSize }

// PreDelaySamples returns the active pre-delay line length.
func (c *Chain) PreDelaySamples() int {
	if c.line == nil {
		return 0
	}
	return c.line.Length()
}

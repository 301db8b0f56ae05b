package param

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// Param is a control parameter shared between one control writer and one
// audio reader.
//
// Control-side methods (SetNormalized, SetPlain, SetString, Normalized,
// Plain, String) may be called from any goroutine. Audio-side methods
// (SetSampleRate, Advance, Value, Reset) must be called from the single
// goroutine that owns processing.
type Param struct {
	id          string
	name        string
	unit        string
	rng         Range
	smoothing   Smoothing
	automatable bool
	def         float64
	format      Formatter
	parse       Parser

	normalized atomic.Uint64

	// Audio side.
	seen     uint64
	smoother Smoother
}

// Option configures a Param at construction.
type Option func(*Param)

// WithSmoothing sets the smoothing law.
func WithSmoothing(s Smoothing) Option {
	return func(p *Param) { p.smoothing = s }
}

// WithUnit sets the unit suffix used for display, e.g. " dB".
func WithUnit(unit string) Option {
	return func(p *Param) { p.unit = unit }
}

// WithFormatter sets display conversion. A nil parser keeps the default.
func WithFormatter(format Formatter, parse Parser) Option {
	return func(p *Param) {
		if format != nil {
			p.format = format
		}
		if parse != nil {
			p.parse = parse
		}
	}
}

// NonAutomatable marks the parameter as not host-automatable. Such
// parameters are typically also unsmoothed.
func NonAutomatable() Option {
	return func(p *Param) { p.automatable = false }
}

// New creates a parameter resting at def.
func New(id, name string, def float64, rng Range, opts ...Option) *Param {
	p := &Param{
		id:          id,
		name:        name,
		rng:         rng,
		smoothing:   NoSmoothing(),
		automatable: true,
		def:         rng.Clamp(def),
		format:      Rounded(2),
		parse:       FloatParser(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	bits := math.Float64bits(rng.Normalize(p.def))
	p.normalized.Store(bits)
	p.seen = bits
	p.smoother = NewSmoother(p.smoothing, p.def)
	return p
}

// ID returns the stable parameter identifier.
func (p *Param) ID() string { return p.id }

// Name returns the display name.
func (p *Param) Name() string { return p.name }

// Unit returns the display unit suffix.
func (p *Param) Unit() string { return p.unit }

// Range returns the plain-value range.
func (p *Param) Range() Range { return p.rng }

// Smoothing returns the smoothing law.
func (p *Param) Smoothing() Smoothing { return p.smoothing }

// Automatable reports whether hosts may automate the parameter.
func (p *Param) Automatable() bool { return p.automatable }

// Default returns the default plain value.
func (p *Param) Default() float64 { return p.def }

// SetNormalized publishes a new target position in [0, 1]. NaN is ignored.
func (p *Param) SetNormalized(v float64) {
	if math.IsNaN(v) {
		return
	}
	p.normalized.Store(math.Float64bits(core.Clamp(v, 0, 1)))
}

// SetPlain publishes a new target as a plain value.
func (p *Param) SetPlain(v float64) {
	if math.IsNaN(v) {
		return
	}
	p.SetNormalized(p.rng.Normalize(v))
}

// SetString parses display text and publishes it as the new target.
func (p *Param) SetString(text string) error {
	v, err := p.Parse(text)
	if err != nil {
		return err
	}
	p.SetPlain(v)
	return nil
}

// Normalized returns the most recently published target position.
func (p *Param) Normalized() float64 {
	return math.Float64frombits(p.normalized.Load())
}

// Plain returns the most recently published target as a plain value.
func (p *Param) Plain() float64 {
	return p.rng.Unnormalize(p.Normalized())
}

// String formats the published target for display, including the unit.
func (p *Param) String() string {
	return p.Format(p.Plain())
}

// Format renders a plain value with this parameter's formatter and unit.
func (p *Param) Format(v float64) string {
	return p.format(v) + p.unit
}

// Parse converts display text to a plain value. A trailing unit suffix is
// accepted.
func (p *Param) Parse(text string) (float64, error) {
	text = strings.TrimSpace(text)
	if u := strings.TrimSpace(p.unit); u != "" {
		text = strings.TrimSpace(strings.TrimSuffix(text, u))
	}
	v, err := p.parse(text)
	if err != nil {
		return 0, fmt.Errorf("param %s: %w", p.id, err)
	}
	return p.rng.Clamp(v), nil
}

// SetSampleRate recomputes smoothing step counts.
func (p *Param) SetSampleRate(sampleRate float64) {
	p.smoother.SetSampleRate(sampleRate)
}

// Advance picks up any newly published target and moves the smoothed value
// n samples forward. It returns the new smoothed value.
func (p *Param) Advance(n int) float64 {
	if bits := p.normalized.Load(); bits != p.seen {
		p.seen = bits
		p.smoother.SetTarget(p.rng.Unnormalize(math.Float64frombits(bits)))
	}
	return p.smoother.NextN(n)
}

// Value returns the smoothed value produced by the last Advance.
func (p *Param) Value() float64 {
	return p.smoother.Current()
}

// IsSmoothing reports whether the smoothed value is still moving.
func (p *Param) IsSmoothing() bool {
	return p.smoother.IsSmoothing()
}

// Reset jumps the smoothed value to the published target.
func (p *Param) Reset() {
	bits := p.normalized.Load()
	p.seen = bits
	p.smoother.Reset(p.rng.Unnormalize(math.Float64frombits(bits)))
}

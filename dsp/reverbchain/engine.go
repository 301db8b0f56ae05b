package reverbchain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/algo-reverb/dsp/effects/reverb"
)

// ErrUnknownEngine is returned by LookupEngine for an unregistered name.
var ErrUnknownEngine = errors.New("reverbchain: unknown engine")

// Engine is the reverb processed in front of the pre-delay. Setters are
// called once per block; Tick once per frame.
type Engine interface {
	Tick(left, right float64) (float64, float64)
	SetWet(gain float64)
	SetDry(gain float64)
	SetWidth(ratio float64)
	SetRoomSize(ratio float64)
	SetDampening(ratio float64)
	Reset()
}

// EngineFactory builds an engine for a sample rate. The chain calls it on
// every (re)initialization.
type EngineFactory func(sampleRate float64) (Engine, error)

// NewFreeverbEngine is the default EngineFactory.
func NewFreeverbEngine(sampleRate float64) (Engine, error) {
	f, err := reverb.NewFreeverb(sampleRate)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// NewFDNEngine builds the feedback-delay-network engine.
func NewFDNEngine(sampleRate float64) (Engine, error) {
	r, err := reverb.NewFDN(sampleRate)
	if err != nil {
		return nil, err
	}
	return r, nil
}

var engines = []struct {
	name    string
	factory EngineFactory
}{
	{"freeverb", NewFreeverbEngine},
	{"fdn", NewFDNEngine},
}

// EngineNames lists the names LookupEngine accepts, default first.
func EngineNames() []string {
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = e.name
	}
	return names
}

// LookupEngine returns the factory registered under name, ignoring case.
func LookupEngine(name string) (EngineFactory, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range engines {
		if e.name == name {
			return e.factory, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownEngine, name, strings.Join(EngineNames(), ", "))
}

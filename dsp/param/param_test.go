package param

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

func gainParam() *Param {
	minGain := core.DBToLinear(-60)
	return New("wet", "Wet", 1,
		SkewedRange(minGain, 1, GainSkewFactor(-60, 0)),
		WithSmoothing(LogSmoothing(10)),
		WithUnit(" dB"),
		WithFormatter(GainToDB(2), DBToGain()),
	)
}

func TestNewParamDefaults(t *testing.T) {
	p := New("size", "Room size", 0.5, LinearRange(0, 1))
	if p.ID() != "size" || p.Name() != "Room size" {
		t.Fatalf("unexpected identity %q %q", p.ID(), p.Name())
	}
	if p.Value() != 0.5 || p.Plain() != 0.5 || p.Normalized() != 0.5 {
		t.Fatalf("value=%v plain=%v norm=%v, want 0.5", p.Value(), p.Plain(), p.Normalized())
	}
	if !p.Automatable() {
		t.Fatal("parameters are automatable by default")
	}
	if p.Smoothing().Kind != SmoothingNone {
		t.Fatalf("smoothing = %v, want none", p.Smoothing().Kind)
	}
}

func TestNewParamClampsDefault(t *testing.T) {
	p := New("pre_delay", "Pre delay", 250, IntRange(0, 100), NonAutomatable())
	if p.Default() != 100 || p.Value() != 100 {
		t.Fatalf("default = %v value = %v, want 100", p.Default(), p.Value())
	}
	if p.Automatable() {
		t.Fatal("NonAutomatable ignored")
	}
}

func TestAdvanceSmoothsTowardsPublishedTarget(t *testing.T) {
	p := New("size", "Room size", 0, LinearRange(0, 1), WithSmoothing(LinearSmoothing(1)))
	p.SetSampleRate(10000) // 10 steps

	p.SetNormalized(1)
	if p.Value() != 0 {
		t.Fatalf("value changed before Advance: %v", p.Value())
	}
	if v := p.Advance(4); math.Abs(v-0.4) > 1e-12 {
		t.Fatalf("Advance(4) = %v, want 0.4", v)
	}
	if !p.IsSmoothing() {
		t.Fatal("expected smoothing in progress")
	}
	if v := p.Advance(64); v != 1 {
		t.Fatalf("Advance(64) = %v, want 1", v)
	}
}

func TestAdvanceWithoutSmoothingIsImmediate(t *testing.T) {
	p := New("pre_delay", "Pre delay", 0, IntRange(0, 100), NonAutomatable())
	p.SetSampleRate(48000)
	p.SetPlain(42.4)
	if v := p.Advance(1); v != 42 {
		t.Fatalf("Advance = %v, want 42", v)
	}
}

func TestSetNormalizedClampsAndIgnoresNaN(t *testing.T) {
	p := New("size", "Room size", 0.5, LinearRange(0, 1))
	p.SetNormalized(3)
	if p.Normalized() != 1 {
		t.Fatalf("normalized = %v, want 1", p.Normalized())
	}
	p.SetNormalized(math.NaN())
	if p.Normalized() != 1 {
		t.Fatalf("NaN overwrote target: %v", p.Normalized())
	}
	p.SetPlain(math.NaN())
	if p.Normalized() != 1 {
		t.Fatalf("NaN plain overwrote target: %v", p.Normalized())
	}
}

func TestResetSnapsToTarget(t *testing.T) {
	p := gainParam()
	p.SetSampleRate(48000)
	p.SetPlain(core.DBToLinear(-20))
	p.Advance(1)
	p.Reset()
	if p.IsSmoothing() {
		t.Fatal("still smoothing after reset")
	}
	if got := core.LinearToDB(p.Value()); math.Abs(got+20) > 1e-9 {
		t.Fatalf("value = %v dB, want -20", got)
	}
}

func TestGainParamDisplay(t *testing.T) {
	p := gainParam()
	if got := p.String(); got != "0.00 dB" {
		t.Fatalf("String() = %q, want %q", got, "0.00 dB")
	}
	if err := p.SetString("-6 dB"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	if got := p.String(); got != "-6.00 dB" {
		t.Fatalf("String() = %q, want %q", got, "-6.00 dB")
	}
	if err := p.SetString("loud"); !errors.Is(err, ErrParse) {
		t.Fatalf("err = %v, want ErrParse", err)
	}
}

func TestParseClampsToRange(t *testing.T) {
	p := gainParam()
	v, err := p.Parse("+12 dB")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v != 1 {
		t.Fatalf("Parse(+12 dB) = %v, want clamp to 1", v)
	}
}

func TestConcurrentTargetWrites(t *testing.T) {
	p := gainParam()
	p.SetSampleRate(48000)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 2000; i++ {
			p.SetNormalized(float64(i%100) / 100)
		}
	}()

	for i := 0; i < 2000; i++ {
		v := p.Advance(32)
		if math.IsNaN(v) || v < p.Range().Min-1e-12 || v > p.Range().Max+1e-12 {
			t.Errorf("value %v outside range", v)
			break
		}
	}
	wg.Wait()
}

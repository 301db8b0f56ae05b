package reverb

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-reverb/internal/testutil"
)

func newTestFreeverb(t *testing.T) *Freeverb {
	t.Helper()
	f, err := NewFreeverb(44100)
	if err != nil {
		t.Fatalf("NewFreeverb: %v", err)
	}
	return f
}

type stereoTicker interface {
	Tick(left, right float64) (float64, float64)
}

func render(e stereoTicker, left, right []float64) ([]float64, []float64) {
	outL := make([]float64, len(left))
	outR := make([]float64, len(right))
	for i := range left {
		outL[i], outR[i] = e.Tick(left[i], right[i])
	}
	return outL, outR
}

func TestNewFreeverbRejectsBadSampleRate(t *testing.T) {
	for _, sr := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := NewFreeverb(sr); err == nil {
			t.Fatalf("NewFreeverb(%v) succeeded", sr)
		}
	}
}

func TestFreeverbScalesTuning(t *testing.T) {
	f, err := NewFreeverb(88200)
	if err != nil {
		t.Fatalf("NewFreeverb: %v", err)
	}
	if got := len(f.combsL[0].buffer); got != 2232 {
		t.Fatalf("left comb 0 length = %d, want 2232", got)
	}
	if got := len(f.combsR[0].buffer); got != 2278 {
		t.Fatalf("right comb 0 length = %d, want 2278", got)
	}
	if got := len(f.allpassesL[3].buffer); got != 450 {
		t.Fatalf("left allpass 3 length = %d, want 450", got)
	}
}

func TestFreeverbImpulseTailExists(t *testing.T) {
	f := newTestFreeverb(t)
	f.SetDry(0)

	const n = 8192
	outL, outR := render(f, testutil.Impulse(n, 0), testutil.Impulse(n, 0))
	testutil.RequireFinite(t, outL)
	testutil.RequireFinite(t, outR)

	if testutil.Energy(outL[1:]) < 1e-6 || testutil.Energy(outR[1:]) < 1e-6 {
		t.Fatal("expected non-zero reverb tail on both channels")
	}
	// The shortest comb is 1116 samples; nothing arrives before it.
	for i := 0; i < 1116; i++ {
		if outL[i] != 0 {
			t.Fatalf("left output %d = %v before first comb delay", i, outL[i])
		}
	}
}

func TestFreeverbResetRestoresState(t *testing.T) {
	f := newTestFreeverb(t)
	in := testutil.DeterministicNoise(7, 0.5, 4096)

	l1, r1 := render(f, in, in)
	f.Reset()
	l2, r2 := render(f, in, in)

	testutil.RequireSliceNearlyEqual(t, l2, l1, 1e-12)
	testutil.RequireSliceNearlyEqual(t, r2, r1, 1e-12)
}

func TestFreeverbZeroWidthIsMono(t *testing.T) {
	f := newTestFreeverb(t)
	f.SetWidth(0)
	f.SetDry(0)

	l, r := render(f, testutil.DeterministicNoise(1, 1, 6000), testutil.DeterministicNoise(2, 1, 6000))
	testutil.RequireSliceNearlyEqual(t, l, r, 0)
}

func TestFreeverbDryOnly(t *testing.T) {
	f := newTestFreeverb(t)
	f.SetWet(0)
	f.SetDry(0.5)

	in := testutil.DeterministicSine(440, 44100, 0.8, 512)
	l, r := render(f, in, in)
	testutil.RequireSliceNearlyEqual(t, l, in, 1e-15)
	testutil.RequireSliceNearlyEqual(t, r, in, 1e-15)
}

func TestFreeverbWetScalesLinearly(t *testing.T) {
	a := newTestFreeverb(t)
	b := newTestFreeverb(t)
	a.SetWet(0.2)
	b.SetWet(0.4)

	in := testutil.Impulse(4096, 0)
	la, _ := render(a, in, in)
	lb, _ := render(b, in, in)
	for i := range la {
		if math.Abs(lb[i]-2*la[i]) > 1e-12 {
			t.Fatalf("sample %d: wet 0.4 gives %v, want %v", i, lb[i], 2*la[i])
		}
	}
}

func TestFreeverbLargerRoomRingsLonger(t *testing.T) {
	small := newTestFreeverb(t)
	large := newTestFreeverb(t)
	small.SetRoomSize(0.1)
	large.SetRoomSize(0.95)

	in := testutil.Impulse(44100, 0)
	ls, _ := render(small, in, in)
	ll, _ := render(large, in, in)

	if testutil.Energy(ll[22050:]) <= testutil.Energy(ls[22050:]) {
		t.Fatal("larger room should keep more late energy")
	}
}

func TestFreeverbDampeningRemovesHighs(t *testing.T) {
	bright := newTestFreeverb(t)
	dark := newTestFreeverb(t)
	bright.SetDampening(0)
	dark.SetDampening(1)

	in := testutil.Impulse(16384, 0)
	lb, _ := render(bright, in, in)
	ld, _ := render(dark, in, in)

	if testutil.Energy(testutil.Diff(ld)) >= testutil.Energy(testutil.Diff(lb)) {
		t.Fatal("damped tail should carry less high-frequency energy")
	}
}

func TestFreeverbFreezeHoldsTail(t *testing.T) {
	f := newTestFreeverb(t)
	f.SetDry(0)
	render(f, testutil.Impulse(2048, 0), testutil.Impulse(2048, 0))

	f.SetFrozen(true)
	if !f.Frozen() {
		t.Fatal("Frozen() = false")
	}
	noise := testutil.DeterministicNoise(3, 1, 20000)
	l, _ := render(f, noise, noise)
	early := testutil.Energy(l[:5000])
	late := testutil.Energy(l[15000:])
	if early == 0 || late < 0.5*early {
		t.Fatalf("frozen tail decayed: early %v late %v", early, late)
	}
}

func TestFreeverbSetterClamping(t *testing.T) {
	f := newTestFreeverb(t)
	f.SetRoomSize(3)
	f.SetDampening(-1)
	f.SetWidth(2)
	if f.RoomSize() != 1 || f.Dampening() != 0 || f.Width() != 1 {
		t.Fatalf("room=%v damp=%v width=%v", f.RoomSize(), f.Dampening(), f.Width())
	}
	if f.SampleRate() != 44100 {
		t.Fatalf("sample rate = %v", f.SampleRate())
	}
	f.SetWet(0.7)
	f.SetDry(0.1)
	if f.Wet() != 0.7 || f.Dry() != 0.1 {
		t.Fatalf("wet=%v dry=%v", f.Wet(), f.Dry())
	}
}

func BenchmarkFreeverbTick(b *testing.B) {
	f, err := NewFreeverb(48000)
	if err != nil {
		b.Fatal(err)
	}
	b.ReportAllocs()
	x := 0.1
	for i := 0; i < b.N; i++ {
		x, _ = f.Tick(x*0.5+0.01, -x)
	}
}

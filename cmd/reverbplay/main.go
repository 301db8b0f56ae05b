// Command reverbplay plays a click train through the reverb chain on the
// default audio device.
//
// Usage:
//
//	reverbplay [flags]
//
// With -sweep the room size moves between 0 and 1 from a control goroutine
// while audio is running. Built with -tags headless, the stream is drained
// at the device rate without opening a sound card.
//
// Examples:
//
//	reverbplay -size 0.85 -predelay 30
//	reverbplay -interval 1s -sweep 8s -duration 30s
//	reverbplay -engine fdn -size 0.6 -damping 0.8
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/param"
	"github.com/cwbudde/algo-reverb/dsp/reverbchain"
)

// output is a running audio sink pulling from a stream.
type output interface {
	Play()
	Err() error
	Close() error
}

// sweepRate is how often the sweep goroutine publishes a new room size.
const sweepRate = 25 * time.Millisecond

var paramFlags = []struct {
	flag, id string
}{
	{"wet", reverbchain.IDWet},
	{"dry", reverbchain.IDDry},
	{"predelay", reverbchain.IDPreDelay},
	{"size", reverbchain.IDSize},
	{"width", reverbchain.IDStereoWidth},
	{"damping", reverbchain.IDDamping},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("reverbplay", flag.ContinueOnError)
	fs.SetOutput(stderr)
	engine := fs.String("engine", reverbchain.EngineNames()[0], "reverb engine: "+strings.Join(reverbchain.EngineNames(), ", "))
	rate := fs.Int("rate", 48000, "output sample rate in Hz")
	block := fs.Int("block", 512, "processing block size in frames")
	latency := fs.Duration("latency", 20*time.Millisecond, "device buffer length")
	duration := fs.Duration("duration", 10*time.Second, "playback length, 0 runs until interrupted")
	interval := fs.Duration("interval", 750*time.Millisecond, "time between clicks")
	level := fs.String("level", "-6 dB", "click level")
	sweep := fs.Duration("sweep", 0, "room size sweep period, 0 disables")
	values := make(map[string]*string, len(paramFlags))
	for _, pf := range paramFlags {
		values[pf.id] = fs.String(pf.flag, "", "value for "+pf.id)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	factory, err := reverbchain.LookupEngine(*engine)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
	chain, err := reverbchain.New(factory,
		core.WithSampleRate(float64(*rate)),
		core.WithBlockSize(*block),
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	store := chain.Params().Store()
	for _, pf := range paramFlags {
		if text := *values[pf.id]; text != "" {
			if err := store.SetString(pf.id, text); err != nil {
				fmt.Fprintf(stderr, "error: -%s %q: %v\n", pf.flag, text, err)
				return 2
			}
		}
	}
	chain.Reset()

	gain, err := param.DBToGain()(*level)
	if err != nil {
		fmt.Fprintf(stderr, "error: -level %q: %v\n", *level, err)
		return 2
	}
	clicks := &clickTrain{
		interval: max(int(interval.Seconds()*float64(*rate)), 1),
		level:    gain,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	player, err := openOutput(newStream(chain, clicks), *rate, *latency)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer player.Close()

	for _, p := range store.Params() {
		fmt.Fprintf(stdout, "%-12s %s\n", p.ID(), p)
	}
	player.Play()

	if *sweep > 0 {
		go sweepSize(ctx, chain.Params().Size, *sweep)
	}

	<-ctx.Done()
	if err := player.Err(); err != nil {
		fmt.Fprintf(stderr, "error: playback: %v\n", err)
		return 1
	}
	return 0
}

// sweepSize moves p through its range as a triangle wave with the given
// period until ctx is done.
func sweepSize(ctx context.Context, p *param.Param, period time.Duration) {
	ticker := time.NewTicker(sweepRate)
	defer ticker.Stop()

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			p.SetNormalized(triangle(now.Sub(start), period))
		}
	}
}

// triangle maps elapsed time to [0, 1], rising for half a period and
// falling for the other half.
func triangle(elapsed, period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	phase := math.Mod(elapsed.Seconds()/period.Seconds(), 1)
	return 1 - math.Abs(2*phase-1)
}

// Command reverbir renders the reverb chain's impulse response and prints
// its decay and spectral properties.
//
// Usage:
//
//	reverbir [flags]
//
// Parameter flags take display text, so gains accept dB ("-12 dB", "-inf")
// and the pre-delay accepts milliseconds ("25", "25 ms").
//
// Examples:
//
//	reverbir
//	reverbir -size 0.9 -damping 0.2 -seconds 4
//	reverbir -predelay 40 -width 1 -rate 48000
//	reverbir -engine fdn -size 0.7
//	reverbir -params
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-reverb/dsp/core"
	"github.com/cwbudde/algo-reverb/dsp/param"
	"github.com/cwbudde/algo-reverb/dsp/reverbchain"
	"github.com/cwbudde/algo-reverb/measure/ir"
)

type band struct {
	name   string
	lo, hi float64
}

var bands = []band{
	{"Low [dB]", 20, 250},
	{"Mid [dB]", 250, 2000},
	{"High [dB]", 2000, 16000},
}

// paramFlags maps flag names to parameter IDs.
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
	fs := flag.NewFlagSet("reverbir", flag.ContinueOnError)
	fs.SetOutput(stderr)
	engine := fs.String("engine", reverbchain.EngineNames()[0], "reverb engine: "+strings.Join(reverbchain.EngineNames(), ", "))
	rate := fs.Float64("rate", 44100, "sample rate in Hz")
	seconds := fs.Float64("seconds", 3, "rendered length in seconds")
	block := fs.Int("block", 1024, "processing block size in samples")
	onset := fs.Float64("onset", ir.DefaultOnsetThresholdDB, "onset threshold in dB below the peak")
	list := fs.Bool("params", false, "list parameters with defaults and exit")
	values := make(map[string]*string, len(paramFlags))
	for _, pf := range paramFlags {
		values[pf.id] = fs.String(pf.flag, "", "value for "+pf.id)
	}
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: reverbir [flags]\n\n")
		fmt.Fprintf(stderr, "Renders the reverb impulse response and prints decay metrics.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  reverbir -size 0.9 -damping 0.2 -seconds 4\n")
		fmt.Fprintf(stderr, "  reverbir -predelay 40 -dry \"-6 dB\"\n")
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
		core.WithSampleRate(*rate),
		core.WithBlockSize(*block),
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	store := chain.Params().Store()

	if *list {
		if err := printParams(stdout, store); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	for _, pf := range paramFlags {
		text := *values[pf.id]
		if text == "" {
			continue
		}
		if err := store.SetString(pf.id, text); err != nil {
			fmt.Fprintf(stderr, "error: -%s %q: %v\n", pf.flag, text, err)
			return 2
		}
	}

	resp, err := ir.Render(chain, *seconds)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	resp.RemoveDirect(chain.Params().Dry.Value())

	analyzer := ir.NewAnalyzer(resp.SampleRate)
	analyzer.OnsetThresholdDB = *onset
	if err := printReport(stdout, *engine, chain, analyzer, resp); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func printParams(w io.Writer, store *param.Store) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID\tName\tDefault\tMin\tMax\tAutomatable\n")
	fmt.Fprintf(tw, "--\t----\t-------\t---\t---\t-----------\n")
	for _, p := range store.Params() {
		rng := p.Range()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%t\n",
			p.ID(), p.Name(), p.Format(p.Default()), p.Format(rng.Min), p.Format(rng.Max), p.Automatable())
	}
	return tw.Flush()
}

func printReport(w io.Writer, engine string, chain *reverbchain.Chain, a *ir.Analyzer, resp ir.Response) error {
	fmt.Fprintf(w, "%s, sample rate %.0f Hz, %.2f s rendered\n", engine, resp.SampleRate, resp.Duration())
	for _, p := range chain.Params().Store().Params() {
		fmt.Fprintf(w, "  %-12s %s\n", p.ID(), p)
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Channel\tOnset [ms]\tEDT [s]\tT20 [s]\tT30 [s]\tRT60 [s]\tC80 [dB]")
	for _, b := range bands {
		fmt.Fprintf(tw, "\t%s", b.name)
	}
	fmt.Fprintln(tw)

	channels := []struct {
		name string
		data []float64
	}{
		{"left", resp.Left},
		{"right", resp.Right},
	}
	for _, ch := range channels {
		m, err := a.Analyze(ch.data)
		if err != nil {
			return fmt.Errorf("%s: %w", ch.name, err)
		}
		spec, err := ir.MagnitudeResponse(ch.data, resp.SampleRate)
		if err != nil {
			return fmt.Errorf("%s: %w", ch.name, err)
		}

		fmt.Fprintf(tw, "%s\t%.2f\t%.3f\t%.3f\t%.3f\t%.3f\t%.2f",
			ch.name, m.Onset*1000, m.EDT, m.T20, m.T30, m.RT60, m.C80)
		for _, b := range bands {
			fmt.Fprintf(tw, "\t%.2f", spec.BandLevelDB(b.lo, b.hi))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// Package ir renders and measures reverb impulse responses.
//
// [Render] drives a processor with a unit impulse. [Analyzer] derives decay
// metrics from the Schroeder backward integral of the squared response:
//
//   - EDT: early decay time, fitted on 0 to -10 dB
//   - T20, T30: fitted on -5 to -25 dB and -5 to -35 dB
//   - RT60: T30 when the response decays far enough, else T20
//   - C80: early-to-late energy ratio at 80 ms after onset
//   - Onset: first sample within a threshold of the peak, i.e. the
//     audible pre-delay plus the engine's own latency
//
// [MagnitudeResponse] gives the power spectrum of a response in dB.
//
// # Usage
//
//	resp, err := ir.Render(chain, 2)
//	resp.RemoveDirect(chain.Params().Dry.Value())
//	m, err := ir.NewAnalyzer(resp.SampleRate).Analyze(resp.Left)
//	fmt.Printf("onset %.1f ms, RT60 %.2f s\n", m.Onset*1000, m.RT60)
package ir

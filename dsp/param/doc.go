// Package param provides scaled, smoothed control parameters for real-time
// processors.
//
// A [Param] is written from a control goroutine (GUI, automation, CLI) as a
// normalized position in [0, 1] and read from the audio goroutine as a
// smoothed plain value. The only shared state is a single atomic 64-bit word
// per parameter, so the audio side never blocks.
//
// # Ranges
//
// [Range] maps between normalized positions and plain values:
//
//   - [LinearRange]: min + p*(max-min)
//   - [SkewedRange]: normalize(v) = ((v-min)/(max-min))^factor; use
//     [GainSkewFactor] to centre a linear-gain control on its dB midpoint
//   - [IntRange]: linear with values rounded to whole numbers
//
// # Smoothing
//
// [Smoother] advances a current value toward a target with one of a closed
// set of laws: none, linear, logarithmic (constant ratio per step, for gains)
// and exponential (one-pole decay, for size and damping style controls).
// Every law reaches the target exactly after the configured time and never
// passes it.
//
// # Display
//
// [Formatter] and [Parser] convert plain values to and from display text
// (for example linear gain shown in dB). They allocate and must only be used
// from the control side.
package param

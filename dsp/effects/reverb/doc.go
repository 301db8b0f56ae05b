// Package reverb provides reusable non-I/O reverb processors.
//
// Included processors:
//   - Freeverb: stereo Schroeder/Freeverb-style algorithmic reverb with
//     stereo width.
//   - FDN: stereo 8-line feedback delay network with modulated lines and
//     loop damping.
//
// Both share the same control set (wet, dry, width, room size, dampening)
// and plug into reverbchain.Chain as engines.
package reverb

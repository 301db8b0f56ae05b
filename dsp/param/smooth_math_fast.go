//go:build fastmath

package param

import "github.com/meko-christian/algo-approx"

// mathExp computes e^x using fast approximation. Overshoot from the
// approximation error is clipped by Smoother.NextN.
func mathExp(x float64) float64 {
	return approx.FastExp(x)
}

// mathLog computes ln(x) using fast approximation.
func mathLog(x float64) float64 {
	return approx.FastLog(x)
}

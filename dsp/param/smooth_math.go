//go:build !fastmath

package param

import "math"

func mathExp(x float64) float64 {
	return math.Exp(x)
}

func mathLog(x float64) float64 {
	return math.Log(x)
}

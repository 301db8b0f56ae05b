package ir_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-reverb/measure/ir"
)

func ExampleAnalyzer_Analyze() {
	const sampleRate = 48000.0

	// 10 ms of silence, then a decay reaching -60 dB after one second.
	data := make([]float64, 480, 480+3*48000)
	for i := range 3 * 48000 {
		t := float64(i) / sampleRate
		data = append(data, math.Exp(-math.Log(1000)*t))
	}

	m, err := ir.NewAnalyzer(sampleRate).Analyze(data)
	if err != nil {
		panic(err)
	}

	fmt.Printf("onset = %.1f ms\n", m.Onset*1000)
	fmt.Printf("RT60  = %.2f s\n", m.RT60)
	fmt.Printf("EDT   = %.2f s\n", m.EDT)
	fmt.Printf("C80   = %.1f dB\n", m.C80)

	// Output:
	// onset = 10.0 ms
	// RT60  = 1.00 s
	// EDT   = 1.00 s
	// C80   = 3.1 dB
}

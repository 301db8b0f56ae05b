package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(48000),
		core.WithBlockSize(256),
		core.WithMaxPreDelay(100),
	)

	fmt.Printf("sampleRate=%.0f blockSize=%d maxPreDelay=%.0fms\n", cfg.SampleRate, cfg.BlockSize, cfg.MaxPreDelayMs)

	// Output:
	// sampleRate=48000 blockSize=256 maxPreDelay=100ms
}

func ExampleMsToSamples() {
	fmt.Println(core.MsToSamples(50, 44100))

	// Output:
	// 2205
}

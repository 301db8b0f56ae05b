package reverbchain_test

import (
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/reverbchain"
)

func ExampleChain() {
	chain, err := reverbchain.New(nil)
	if err != nil {
		panic(err)
	}

	store := chain.Params().Store()
	_ = store.SetString(reverbchain.IDPreDelay, "20 ms")
	_ = store.SetString(reverbchain.IDDry, "0 dB")

	block := [][]float64{make([]float64, 256), make([]float64, 256)}
	block[0][0], block[1][0] = 1, 1
	if err := chain.Process(block); err != nil {
		panic(err)
	}

	fmt.Println(chain.Params().PreDelay, chain.Params().Dry)
	fmt.Println("pre-delay samples:", chain.PreDelaySamples())
	// Output:
	// 20 ms 0.00 dB
	// pre-delay samples: 882
}

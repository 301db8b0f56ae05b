package main

import (
	"encoding/binary"
	"math"

	"github.com/cwbudde/algo-reverb/dsp/reverbchain"
)

const bytesPerFrame = 2 * 4 // stereo float32

// clickTrain emits a single-sample click every interval samples.
type clickTrain struct {
	interval int
	level    float64
	pos      int
}

func (c *clickTrain) fill(dst []float64) {
	for i := range dst {
		dst[i] = 0
		if c.pos == 0 {
			dst[i] = c.level
		}
		c.pos++
		if c.pos >= c.interval {
			c.pos = 0
		}
	}
}

// stream pulls audio through the chain for an oto player. Read runs on the
// player's goroutine and does not allocate.
type stream struct {
	chain  *reverbchain.Chain
	source *clickTrain

	left, right []float64
	channels    [][]float64
}

func newStream(chain *reverbchain.Chain, source *clickTrain) *stream {
	n := chain.BlockSize()
	s := &stream{
		chain:  chain,
		source: source,
		left:   make([]float64, n),
		right:  make([]float64, n),
	}
	s.channels = [][]float64{nil, nil}
	return s
}

// Read fills p with interleaved little-endian float32 frames. A trailing
// partial frame is left unwritten.
func (s *stream) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame
	written := 0
	for frames > 0 {
		n := min(frames, len(s.left))
		l, r := s.left[:n], s.right[:n]
		s.source.fill(l)
		copy(r, l)

		s.channels[0], s.channels[1] = l, r
		if err := s.chain.Process(s.channels); err != nil {
			return written, err
		}

		out := p[written:]
		for i := range n {
			binary.LittleEndian.PutUint32(out[i*bytesPerFrame:], math.Float32bits(float32(l[i])))
			binary.LittleEndian.PutUint32(out[i*bytesPerFrame+4:], math.Float32bits(float32(r[i])))
		}
		written += n * bytesPerFrame
		frames -= n
	}
	return written, nil
}

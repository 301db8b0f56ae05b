package reverbchain

import "fmt"

// Layout is the channel configuration a chain is initialized for.
type Layout int

const (
	Mono   Layout = 1
	Stereo Layout = 2
)

// Channels returns the channel count.
func (l Layout) Channels() int { return int(l) }

// Valid reports whether the layout is supported.
func (l Layout) Valid() bool { return l == Mono || l == Stereo }

func (l Layout) String() string {
	switch l {
	case Mono:
		return "mono"
	case Stereo:
		return "stereo"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

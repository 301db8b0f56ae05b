// Package delay provides a fixed-capacity stereo delay line for pre-delay use.
package delay

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-reverb/dsp/core"
)

// Errors returned by StereoLine.
var (
	ErrBufferTooSmall    = errors.New("delay: buffer too small for requested delay")
	ErrInvalidDelay      = errors.New("delay: delay time must be finite and >= 0")
	ErrInvalidSampleRate = errors.New("delay: sample rate must be finite and > 0")
)

// MaxCapacity is the largest storage, in samples, NewStereo will allocate.
const MaxCapacity = 1<<31 - 1

// StereoLine is a circular buffer of (left, right) pairs with a single
// read/write cursor. Reading Head before Consume yields a delay of exactly
// Length samples.
//
// Storage is allocated once in NewStereo. SetDelay moves the active length
// within that capacity and never allocates.
type StereoLine struct {
	buf        [][2]float64
	length     int
	head       int
	delayMs    float64
	sampleRate float64
}

// NewStereo allocates a line able to hold maxDelayMs at sampleRate and
// activates delayMs of it.
func NewStereo(delayMs, maxDelayMs, sampleRate float64) (*StereoLine, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidSampleRate, sampleRate)
	}
	if delayMs < 0 || !core.IsFinite(delayMs) {
		return nil, fmt.Errorf("%w: %f", ErrInvalidDelay, delayMs)
	}
	if maxDelayMs < 0 || !core.IsFinite(maxDelayMs) {
		return nil, fmt.Errorf("%w: max %f", ErrInvalidDelay, maxDelayMs)
	}

	maxLength := core.MsToSamples(maxDelayMs, sampleRate)
	if maxLength > MaxCapacity {
		return nil, fmt.Errorf("%w: max %g ms exceeds %d samples", ErrInvalidDelay, maxDelayMs, MaxCapacity)
	}
	length := core.MsToSamples(delayMs, sampleRate)
	if length > maxLength {
		return nil, fmt.Errorf("%w: %g ms needs %d samples, capacity is %d",
			ErrBufferTooSmall, delayMs, length, maxLength)
	}

	return &StereoLine{
		buf:        make([][2]float64, maxLength),
		length:     length,
		delayMs:    delayMs,
		sampleRate: sampleRate,
	}, nil
}

// Head returns the pair under the cursor without advancing.
func (d *StereoLine) Head() (left, right float64) {
	if d.length == 0 {
		return 0, 0
	}
	s := d.buf[d.head]
	return s[0], s[1]
}

// Consume stores a pair under the cursor and advances it.
func (d *StereoLine) Consume(left, right float64) {
	if d.length == 0 {
		return
	}
	d.buf[d.head] = [2]float64{left, right}
	d.head++
	if d.head >= d.length {
		d.head = 0
	}
}

// SetDelay changes the active delay time.
//
// A request that fits the preallocated storage resets the cursor and clears
// the newly active region. A request that does not fit returns
// ErrBufferTooSmall and leaves the line untouched. Errors are returned
// unwrapped so that a rejection costs no allocation.
func (d *StereoLine) SetDelay(delayMs float64) error {
	if delayMs == d.delayMs {
		return nil
	}
	if delayMs < 0 || !core.IsFinite(delayMs) {
		return ErrInvalidDelay
	}

	// MsToSamples saturates, so huge requests land here too.
	samples := core.MsToSamples(delayMs, d.sampleRate)
	if samples > len(d.buf) {
		return ErrBufferTooSmall
	}

	d.delayMs = delayMs
	d.length = samples
	d.head = 0
	clear(d.buf[:samples])
	return nil
}

// Reset clears the whole storage and rewinds the cursor.
func (d *StereoLine) Reset() {
	clear(d.buf)
	d.head = 0
}

// Length returns the active delay in samples.
func (d *StereoLine) Length() int { return d.length }

// MaxLength returns the storage capacity in samples.
func (d *StereoLine) MaxLength() int { return len(d.buf) }

// Cursor returns the current read/write position.
func (d *StereoLine) Cursor() int { return d.head }

// DelayMs returns the configured delay time in milliseconds.
func (d *StereoLine) DelayMs() float64 { return d.delayMs }

// SampleRate returns the sample rate the line was built for.
func (d *StereoLine) SampleRate() float64 { return d.sampleRate }

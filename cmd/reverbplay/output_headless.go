//go:build headless

package main

import (
	"io"
	"sync"
	"time"
)

// headlessOutput drains the stream at the device rate without a sound card.
type headlessOutput struct {
	r       io.Reader
	buf     []byte
	period  time.Duration
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
	mu      sync.Mutex
	err     error
	started bool
}

func openOutput(r io.Reader, rate int, latency time.Duration) (output, error) {
	frames := max(int(latency.Seconds()*float64(rate)), 1)
	return &headlessOutput{
		r:      r,
		buf:    make([]byte, frames*bytesPerFrame),
		period: max(latency, time.Millisecond),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}, nil
}

func (h *headlessOutput) Play() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.started {
		return
	}
	h.started = true
	go h.loop()
}

func (h *headlessOutput) loop() {
	defer close(h.done)
	ticker := time.NewTicker(h.period)
	defer ticker.Stop()
	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			if _, err := h.r.Read(h.buf); err != nil {
				h.mu.Lock()
				h.err = err
				h.mu.Unlock()
				return
			}
		}
	}
}

func (h *headlessOutput) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

func (h *headlessOutput) Close() error {
	h.once.Do(func() { close(h.stop) })
	h.mu.Lock()
	started := h.started
	h.mu.Unlock()
	if started {
		<-h.done
	}
	return nil
}

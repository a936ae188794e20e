package store

import (
	"sync"
	"time"
)

// Flusher coalesces write requests. Schedule (re)arms a single timer; when
// it fires the write function runs once with whatever state is current at
// that moment. Close cancels the timer and performs the final write if one
// is still pending.
type Flusher struct {
	delay time.Duration
	write func()

	mu      sync.Mutex
	timer   *time.Timer
	pending bool
	closed  bool

	// writeMu keeps a timer-driven write and an explicit Flush from
	// running at the same time.
	writeMu sync.Mutex
}

func NewFlusher(delay time.Duration, write func()) *Flusher {
	return &Flusher{delay: delay, write: write}
}

// Schedule marks state dirty and restarts the quiet-period timer.
func (f *Flusher) Schedule() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.pending = true
	if f.timer != nil {
		f.timer.Stop()
	}
	f.timer = time.AfterFunc(f.delay, f.Flush)
}

// Flush writes immediately if anything is pending.
func (f *Flusher) Flush() {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	f.mu.Lock()
	if !f.pending {
		f.mu.Unlock()
		return
	}
	f.pending = false
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.mu.Unlock()

	f.write()
}

// Pending reports whether a write is waiting on the timer.
func (f *Flusher) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Close stops accepting new schedules and flushes what is left.
func (f *Flusher) Close() {
	f.mu.Lock()
	f.closed = true
	if f.timer != nil {
		f.timer.Stop()
	}
	f.mu.Unlock()

	f.Flush()
}

// Package debounce provides a cancel-and-reschedule timer for collapsing
// bursts of events (keystrokes, file writes) into a single call.
package debounce

import (
	"sync"
	"time"
)

// Debouncer runs the most recently scheduled function once no new call has
// arrived for the configured duration. Safe for concurrent use.
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
	seq      uint64
}

// New creates a Debouncer with the given quiet period. A non-positive
// duration runs scheduled functions synchronously.
func New(duration time.Duration) *Debouncer {
	return &Debouncer{duration: duration}
}

// Duration returns the quiet period.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}

// Debounce schedules fn to run after the quiet period, replacing any
// pending function.
func (d *Debouncer) Debounce(fn func()) {
	if d.duration <= 0 {
		d.Immediate(fn)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.seq++
	seq := d.seq
	d.timer = time.AfterFunc(d.duration, func() {
		// A timer that fired while being replaced must not run its stale fn.
		d.mu.Lock()
		current := d.seq == seq
		if current {
			d.timer = nil
		}
		d.mu.Unlock()

		if current {
			fn()
		}
	})
}

// Pending reports whether a scheduled function has not run yet.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops any pending function.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Immediate cancels any pending function and runs fn now.
func (d *Debouncer) Immediate(fn func()) {
	d.Cancel()
	fn()
}

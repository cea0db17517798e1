package controller

import (
	"sync"
	"time"
)

// DefaultDebounce is the settle time between the last keystroke and the
// committed search value.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer coalesces a burst of values into a single commit. Each Trigger
// restarts the timer; only the last value of a burst reaches the callback.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(string)
	timer   *time.Timer
	pending string
	armed   bool
	stopped bool
	gen     uint64
}

// NewDebouncer creates a Debouncer that calls fn with the settled value.
// A non-positive delay falls back to DefaultDebounce.
func NewDebouncer(delay time.Duration, fn func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Trigger records value as the latest candidate and restarts the timer.
// The generation counter invalidates a previous timer that is already
// firing; timer.Stop alone cannot catch that one, and it must not commit
// the new value before its full quiet window.
func (d *Debouncer) Trigger(value string) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.pending = value
	d.armed = true
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
	d.mu.Unlock()
}

// Flush commits the pending value immediately, cancelling the timer.
// A no-op when nothing is pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	if d.stopped || !d.armed {
		d.mu.Unlock()
		return
	}
	d.armed = false
	value := d.pending
	d.mu.Unlock()

	d.fn(value)
}

// Stop discards any pending value and ignores further triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.armed = false
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || d.stopped || !d.armed {
		d.mu.Unlock()
		return
	}
	d.armed = false
	value := d.pending
	d.mu.Unlock()

	d.fn(value)
}

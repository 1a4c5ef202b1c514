package wizard

import (
	"sync"
	"time"
)

// Timer is the cancellable handle returned by a timer factory.
type Timer interface {
	Stop() bool
}

// TimerFactory schedules fn after d and returns a cancellable handle. The
// default wraps time.AfterFunc; tests inject their own to drive virtual
// time.
type TimerFactory func(d time.Duration, fn func()) Timer

func stdTimerFactory(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Debouncer coalesces rapid successive calls into one trailing dispatch.
// Each Schedule resets the delay; only the last scheduled function runs.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	after   TimerFactory
	timer   Timer
	pending func()
	stopped bool
}

// NewDebouncer builds a trailing-edge debouncer. A nil factory uses real
// timers. A non-positive delay dispatches synchronously.
func NewDebouncer(delay time.Duration, after TimerFactory) *Debouncer {
	if after == nil {
		after = stdTimerFactory
	}
	return &Debouncer{delay: delay, after: after}
}

// Schedule queues fn to run after the configured delay, replacing any
// previously queued call.
func (d *Debouncer) Schedule(fn func()) {
	if fn == nil {
		return
	}

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	if d.delay <= 0 {
		d.mu.Unlock()
		fn()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = fn
	d.timer = d.after(d.delay, d.fire)
	d.mu.Unlock()
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.timer = nil
	stopped := d.stopped
	d.mu.Unlock()
	if fn != nil && !stopped {
		fn()
	}
}

// Flush runs any pending dispatch immediately.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stop cancels any pending dispatch and rejects future schedules.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	d.stopped = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
}

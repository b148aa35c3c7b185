package pages

import (
	"sync"
	"time"
)

// Debouncer runs the last of a burst of calls once the input has been quiet
// for delay. Repeating the previous key is ignored, like an input whose
// value did not change.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
	key   string
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn and reports whether it did.
func (d *Debouncer) Trigger(key string, fn func()) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if key == d.key {
		return false
	}
	d.key = key
	d.stopLocked()

	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		stale := gen != d.gen
		d.mu.Unlock()
		if !stale {
			fn()
		}
	})
	return true
}

// Cancel drops any pending call and records key as the current value.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.key = key
	d.stopLocked()
}

func (d *Debouncer) stopLocked() {
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

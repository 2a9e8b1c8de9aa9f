package picker

import (
	"sync"
	"time"
)

// debouncer runs a function only after its interval has elapsed without a
// newer call. Rapid successive calls reset the timer, so only the last
// scheduled function ever fires.
type debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	interval time.Duration
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{interval: interval}
}

func (d *debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, fn)
}

func (d *debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

package watcher

import (
	"sync"
	"time"
)

// Debouncer delays processing until file activity settles. Rapid events for
// the same path are coalesced so the callback fires once per settled file.
type Debouncer struct {
	delay    time.Duration
	pending  map[string]*time.Timer
	callback func(path string)
	inflight sync.WaitGroup
	mu       sync.Mutex
}

// NewDebouncer creates a Debouncer that invokes callback for each path after
// delay has passed without further events for that path.
func NewDebouncer(delay time.Duration, callback func(path string)) *Debouncer {
	return &Debouncer{
		delay:    delay,
		pending:  make(map[string]*time.Timer),
		callback: callback,
	}
}

// Add schedules a path for processing, resetting any pending timer for it.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	// A timer stopped before firing hands its inflight count to the
	// replacement; a fired timer's callback does its own Done.
	if timer, exists := d.pending[path]; !exists || !timer.Stop() {
		d.inflight.Add(1)
	}

	var timer *time.Timer
	timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// Only remove the entry if it is still ours; Add may have already
		// replaced it while this callback was waiting for the lock.
		if d.pending[path] == timer {
			delete(d.pending, path)
		}
		d.mu.Unlock()

		defer d.inflight.Done()
		// Callback runs outside the lock so it may call back into Add.
		if d.callback != nil {
			d.callback(path)
		}
	})
	d.pending[path] = timer
}

// Cancel drops a pending path without firing the callback.
func (d *Debouncer) Cancel(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, exists := d.pending[path]; exists {
		if timer.Stop() {
			d.inflight.Done()
		}
		delete(d.pending, path)
	}
}

// CancelAll drops every pending path. Used during shutdown.
func (d *Debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for path, timer := range d.pending {
		if timer.Stop() {
			d.inflight.Done()
		}
		delete(d.pending, path)
	}
}

// Wait blocks until callbacks already in flight have finished. Call after
// CancelAll so shutdown does not race a file that was mid-settle.
func (d *Debouncer) Wait() {
	d.inflight.Wait()
}

// PendingCount returns the number of paths waiting to settle.
func (d *Debouncer) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

package filekv

import (
	"sync"
	"time"

	"github.com/jotterhq/jotter/pkg/core"
)

// debouncer coalesces bursts of events per key: rapid successive events for
// the same key collapse into one trailing emission after a quiet interval.
// Atomic writes produce create+rename pairs; without this, every Set would
// surface twice.
type debouncer struct {
	interval time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending sync.WaitGroup
	stopped bool
}

func newDebouncer(interval time.Duration) *debouncer {
	return &debouncer{
		interval: interval,
		timers:   make(map[string]*time.Timer),
	}
}

// add schedules fire(event) after the quiet interval, replacing any timer
// already armed for the same key (the latest event wins).
func (d *debouncer) add(event core.Event, fire func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	if t, ok := d.timers[event.Key]; ok {
		if t.Stop() {
			d.pending.Done()
		}
	}

	d.pending.Add(1)
	key := event.Key
	d.timers[key] = time.AfterFunc(d.interval, func() {
		defer d.pending.Done()

		d.mu.Lock()
		delete(d.timers, key)
		stopped := d.stopped
		d.mu.Unlock()

		if !stopped {
			fire(event)
		}
	})
}

// stopAndWait rejects new events, cancels armed timers, and waits up to
// timeout for in-flight emissions to finish.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, t := range d.timers {
		if t.Stop() {
			d.pending.Done()
		}
		delete(d.timers, key)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}

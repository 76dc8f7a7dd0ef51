package checkout

import (
	"sync"
	"time"
)

// Autosaver collapses rapid successive edits into a single persisted write
// after a quiet period. Set replaces any pending value (last write wins);
// Flush persists the pending value immediately and is invoked on teardown
// or navigation away. No ordering guarantee is provided beyond last write
// wins.
type Autosaver struct {
	mu      sync.Mutex
	delay   time.Duration
	save    func(value string)
	timer   *time.Timer
	pending string
	dirty   bool
	closed  bool
}

// NewAutosaver creates an autosaver that calls save with the most recent
// value once delay has elapsed without further edits.
func NewAutosaver(delay time.Duration, save func(value string)) *Autosaver {
	return &Autosaver{
		delay: delay,
		save:  save,
	}
}

// Set records a new pending value and restarts the quiet-period timer.
func (a *Autosaver) Set(value string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.closed {
		return
	}

	a.pending = value
	a.dirty = true

	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.delay, a.Flush)
}

// Flush persists the pending value immediately, if there is one.
func (a *Autosaver) Flush() {
	a.mu.Lock()
	if !a.dirty {
		a.mu.Unlock()
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	value := a.pending
	a.dirty = false
	a.mu.Unlock()

	a.save(value)
}

// Close flushes any pending value and stops accepting further edits.
func (a *Autosaver) Close() {
	a.mu.Lock()
	a.closed = true
	a.mu.Unlock()

	a.Flush()
}

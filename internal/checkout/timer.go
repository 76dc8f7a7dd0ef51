package checkout

import (
	"errors"
	"sync"
	"time"
)

// HoldTimerState represents the lifecycle state of a reservation hold timer.
type HoldTimerState string

const (
	HoldIdle      HoldTimerState = "idle"
	HoldRunning   HoldTimerState = "running"
	HoldExpired   HoldTimerState = "expired"
	HoldCancelled HoldTimerState = "cancelled"
)

var (
	ErrTimerAlreadyStarted = errors.New("hold timer already started")
	ErrTimerNotRunning     = errors.New("hold timer is not running")
)

// HoldTimer is a single-shot countdown that releases a ticket hold when it
// elapses. It moves Idle -> Running -> Expired or Cancelled and never fires
// the expiry callback more than once. The timer is only a courtesy mirror of
// the hold; the authoritative reservation lives in the database.
type HoldTimer struct {
	mu       sync.Mutex
	state    HoldTimerState
	timer    *time.Timer
	onExpire func()
}

// NewHoldTimer creates an idle hold timer. onExpire runs on the timer's
// goroutine when the countdown elapses; it is suppressed by Cancel.
func NewHoldTimer(onExpire func()) *HoldTimer {
	return &HoldTimer{
		state:    HoldIdle,
		onExpire: onExpire,
	}
}

// Start begins the countdown. It fails if the timer has already been
// started; a checkout session owns exactly one hold timer.
func (t *HoldTimer) Start(duration time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != HoldIdle {
		return ErrTimerAlreadyStarted
	}

	t.state = HoldRunning
	t.timer = time.AfterFunc(duration, t.expire)
	return nil
}

// Cancel stops a running countdown and suppresses the expiry callback.
// Cancelling a timer that already expired or was cancelled is an error.
func (t *HoldTimer) Cancel() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != HoldRunning {
		return ErrTimerNotRunning
	}

	t.state = HoldCancelled
	t.timer.Stop()
	return nil
}

// State returns the current timer state.
func (t *HoldTimer) State() HoldTimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *HoldTimer) expire() {
	t.mu.Lock()
	if t.state != HoldRunning {
		// Cancel won the race; the hold was already released elsewhere.
		t.mu.Unlock()
		return
	}
	t.state = HoldExpired
	callback := t.onExpire
	t.mu.Unlock()

	if callback != nil {
		callback()
	}
}

package timer

import (
	"sync"
	"time"
)

// Timer delivers recurring wake-ups on its own goroutine. Callbacks never
// run after Disarm returns for the generation they belong to, but Disarm does
// not wait for an in-flight callback; callers that hold a lock inside the
// callback can therefore disarm from within it.
type Timer struct {
	mu         sync.Mutex
	stop       chan struct{}
	generation uint64
}

// New returns a disarmed Timer.
func New() *Timer {
	return &Timer{}
}

// Arm schedules fn every period. Arming an armed timer replaces the previous
// schedule.
func (t *Timer) Arm(period time.Duration, fn func()) {
	if period <= 0 {
		period = time.Second
	}

	t.mu.Lock()
	t.disarmLocked()
	t.generation++
	gen := t.generation
	stop := make(chan struct{})
	t.stop = stop
	t.mu.Unlock()

	go t.loop(period, gen, stop, fn)
}

func (t *Timer) loop(period time.Duration, gen uint64, stop <-chan struct{}, fn func()) {
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !t.current(gen) {
				return
			}
			fn()
		}
	}
}

func (t *Timer) current(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil && t.generation == gen
}

// Disarm cancels pending wake-ups. Calling it on an unarmed timer is a no-op.
func (t *Timer) Disarm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.disarmLocked()
}

func (t *Timer) disarmLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

// Armed reports whether a ticker goroutine is live.
func (t *Timer) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

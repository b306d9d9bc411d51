// Package scheduler runs the reminder cycle: it counts down the configured
// interval, fires a notification when it expires and records every completed
// cycle. It can drive itself with a background timer or be driven by a UI
// tick loop calling OnTick.
package scheduler

import (
	"sync"
	"time"

	"github.com/julianstephens/sitless/internal/logger"
	"github.com/julianstephens/sitless/internal/models"
	"github.com/julianstephens/sitless/internal/screen"
	"github.com/julianstephens/sitless/internal/timer"
)

// Variant selects what happens after a reminder fires.
type Variant int

const (
	// SingleCycle stops after one firing and records the cycle.
	SingleCycle Variant = iota
	// Continuous re-arms after every firing and records only on Stop.
	Continuous
)

func (v Variant) String() string {
	if v == Continuous {
		return "continuous"
	}
	return "single-cycle"
}

// ModeSource classifies the screen when a reminder fires.
type ModeSource interface {
	Mode() screen.Mode
}

// Notifier delivers a reminder for the given mode.
type Notifier interface {
	Dispatch(mode screen.Mode, settings models.Settings)
}

// RecordSink keeps completed cycles.
type RecordSink interface {
	AddRecord(record models.ReminderRecord)
}

// EventKind identifies an Event.
type EventKind int

const (
	EventStarted EventKind = iota
	EventStopped
	EventFired
)

// Event describes a state change. Record is set on EventStopped when a cycle
// was recorded.
type Event struct {
	Kind   EventKind
	At     time.Time
	Mode   screen.Mode
	Record *models.ReminderRecord
}

// Options wires a Scheduler to its collaborators.
type Options struct {
	Variant    Variant
	Clock      timer.Clock
	Classifier ModeSource
	Dispatcher Notifier
	Records    RecordSink
	// TickInterval is how often the scheduler polls its own deadline. Zero
	// means an external loop calls OnTick and no goroutine is started.
	TickInterval time.Duration
	// OnEvent is called outside the scheduler lock.
	OnEvent func(Event)
}

// Scheduler is the idle/running reminder state machine. It is safe for
// concurrent use.
type Scheduler struct {
	opts  Options
	timer *timer.Timer

	mu         sync.Mutex
	running    bool
	settings   models.Settings
	cycleStart time.Time
	nextExpiry time.Time
}

// New returns an idle scheduler. A nil Clock means the system clock.
func New(opts Options) *Scheduler {
	if opts.Clock == nil {
		opts.Clock = timer.SystemClock{}
	}
	return &Scheduler{
		opts:  opts,
		timer: timer.New(),
	}
}

// Start begins a new cycle with a snapshot of settings. A running cycle is
// stopped and recorded first.
func (s *Scheduler) Start(settings models.Settings) {
	s.mu.Lock()
	var events []Event
	if s.running {
		events = append(events, s.stopLocked())
	}
	events = append(events, s.startLocked(settings))
	s.mu.Unlock()

	s.emit(events...)
}

// Stop ends the current cycle and records it. It is a no-op when idle.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	ev := s.stopLocked()
	s.mu.Unlock()

	s.emit(ev)
}

// Restart stops and starts again with new settings. It only applies while
// running and reports whether it did.
func (s *Scheduler) Restart(settings models.Settings) bool {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return false
	}
	stopped := s.stopLocked()
	started := s.startLocked(settings)
	s.mu.Unlock()

	s.emit(stopped, started)
	return true
}

// OnTick checks the deadline. When it has passed the reminder fires: the
// screen is classified and the notification dispatched. It returns the time
// left in the current cycle and whether a reminder fired on this call.
func (s *Scheduler) OnTick() (time.Duration, bool) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return 0, false
	}

	now := s.opts.Clock.Now()
	remaining := timer.Remaining(s.nextExpiry, now)
	if remaining > 0 {
		s.mu.Unlock()
		return remaining, false
	}

	settings := s.settings.Snapshot()
	mode := s.classify()
	events := []Event{{Kind: EventFired, At: now, Mode: mode}}

	switch s.opts.Variant {
	case Continuous:
		s.nextExpiry = now.Add(interval(settings))
		remaining = interval(settings)
	default:
		events = append(events, s.stopLocked())
		remaining = 0
	}
	s.mu.Unlock()

	logger.Info("Reminder fired", "mode", mode, "variant", s.opts.Variant)
	if s.opts.Dispatcher != nil {
		s.opts.Dispatcher.Dispatch(mode, settings)
	}
	s.emit(events...)

	return remaining, true
}

// TestReminder fires a one-off notification without touching the cycle.
func (s *Scheduler) TestReminder(settings models.Settings) {
	mode := s.classify()
	logger.Info("Test reminder", "mode", mode)
	if s.opts.Dispatcher != nil {
		s.opts.Dispatcher.Dispatch(mode, settings.Snapshot())
	}
}

// IsRunning reports whether a cycle is counting down.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// Remaining returns the time left in the current cycle, or zero when idle.
func (s *Scheduler) Remaining() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return 0
	}
	if r := timer.Remaining(s.nextExpiry, s.opts.Clock.Now()); r > 0 {
		return r
	}
	return 0
}

// Settings returns the snapshot the current cycle runs with.
func (s *Scheduler) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Snapshot()
}

func (s *Scheduler) startLocked(settings models.Settings) Event {
	now := s.opts.Clock.Now()
	s.settings = settings.Snapshot()
	s.cycleStart = now
	s.nextExpiry = now.Add(interval(s.settings))
	s.running = true

	if s.opts.TickInterval > 0 {
		s.timer.Arm(s.opts.TickInterval, func() { s.OnTick() })
	}

	logger.Debug("Reminder cycle started", "interval", s.settings.EffectiveIntervalMinutes(), "next", s.nextExpiry)
	return Event{Kind: EventStarted, At: now}
}

func (s *Scheduler) stopLocked() Event {
	s.timer.Disarm()

	now := s.opts.Clock.Now()
	ev := Event{Kind: EventStopped, At: now}
	if !s.cycleStart.IsZero() {
		rec := models.NewReminderRecord(s.cycleStart, now)
		if s.opts.Records != nil {
			s.opts.Records.AddRecord(rec)
		}
		ev.Record = &rec
		logger.Debug("Reminder cycle recorded", "id", rec.ID(), "duration", rec.DurationString())
	}

	s.cycleStart = time.Time{}
	s.nextExpiry = time.Time{}
	s.running = false
	return ev
}

func (s *Scheduler) classify() screen.Mode {
	if s.opts.Classifier == nil {
		return screen.ModeNormal
	}
	return s.opts.Classifier.Mode()
}

func (s *Scheduler) emit(events ...Event) {
	if s.opts.OnEvent == nil {
		return
	}
	for _, ev := range events {
		s.opts.OnEvent(ev)
	}
}

// interval falls back to the range default when the stored interval was saved
// by a front end with a wider range.
func interval(settings models.Settings) time.Duration {
	return time.Duration(settings.EffectiveIntervalMinutes()) * time.Minute
}

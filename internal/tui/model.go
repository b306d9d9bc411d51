// Package tui is the interactive front end. It drives a single-cycle
// scheduler from the bubbletea tick loop and renders reminders in-app when
// the tray app is not running.
package tui

import (
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/sitless/internal/cli"
	"github.com/julianstephens/sitless/internal/constants"
	"github.com/julianstephens/sitless/internal/dispatch"
	"github.com/julianstephens/sitless/internal/models"
	"github.com/julianstephens/sitless/internal/notifier"
	"github.com/julianstephens/sitless/internal/scheduler"
	"github.com/julianstephens/sitless/internal/timer"
	"github.com/julianstephens/sitless/internal/tui/components/countdown"
	"github.com/julianstephens/sitless/internal/tui/components/records"
)

var errNotBound = errors.New("tui: program not bound")

type SessionState int

const (
	StateTimer SessionState = iota
	StateRecords
	StateSettings
	StateEditSettings
	StateConfirmClear
)

// tabCount is the number of states reachable with tab.
const tabCount = 3

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(constants.TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// runtime is shared by every copy of the model.
type runtime struct {
	clock      timer.Clock
	scheduler  *scheduler.Scheduler
	dispatcher *dispatch.Dispatcher
	inApp      *inAppChannels
	// events is filled by the scheduler hook. Scheduler calls happen on the
	// UI goroutine, so the hook runs there too.
	events []scheduler.Event
}

func (rt *runtime) drain() []scheduler.Event {
	evs := rt.events
	rt.events = nil
	return evs
}

type popup struct {
	text  string
	color models.PopupColor
	until time.Time
}

type flash struct {
	edges     []models.Edge
	remaining int
	on        bool
}

type Model struct {
	ctx          *cli.Context
	rt           *runtime
	state        SessionState
	keys         KeyMap
	help         help.Model
	countdown    countdown.Model
	records      records.Model
	form         *huh.Form
	settingsForm *SettingsFormModel
	popup        *popup
	flash        flash
	status       string
	width        int
	height       int
	quitting     bool
}

// NewModel builds the interactive model. Notifications go to the tray app
// first and are rendered in-app when it is not reachable.
func NewModel(ctx *cli.Context) Model {
	return newModel(ctx, timer.SystemClock{})
}

func newModel(ctx *cli.Context, clock timer.Clock) Model {
	var primary dispatch.Channels = notifier.NewTray()
	if ctx.Channels != nil {
		primary = ctx.Channels
	}

	rt := &runtime{
		clock: clock,
		inApp: &inAppChannels{bell: notifier.NewTerminal(os.Stderr)},
	}
	rt.dispatcher = dispatch.New(notifier.NewFallback(primary, rt.inApp), ctx.Policy)

	rt.scheduler = scheduler.New(scheduler.Options{
		Variant:    scheduler.SingleCycle,
		Clock:      clock,
		Classifier: ctx.Classifier(),
		Dispatcher: rt.dispatcher,
		Records:    ctx.Config,
		OnEvent: func(ev scheduler.Event) {
			rt.events = append(rt.events, ev)
		},
	})

	cd := countdown.New()
	cd.Interval = ctx.Config.Settings().EffectiveIntervalMinutes()
	cd.Now = clock.Now()

	return Model{
		ctx:       ctx,
		rt:        rt,
		state:     StateTimer,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		countdown: cd,
		records:   records.New(ctx.Config.Records(), 0, 0),
	}
}

// Bind connects in-app notifications to the running program.
func (m Model) Bind(send func(tea.Msg)) {
	m.rt.inApp.bind(send)
}

// Shutdown stops a running cycle so it is recorded, and waits briefly for
// notifications still in flight.
func (m Model) Shutdown() {
	m.rt.scheduler.Stop()
	m.rt.inApp.bind(nil)
	cli.WaitForDispatch(m.rt.dispatcher, constants.DispatchDrainTimeout)
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// ShortHelp and FullHelp make the model its own help.KeyMap so the shown
// bindings follow the current state.
func (m Model) ShortHelp() []key.Binding {
	switch {
	case m.popup != nil:
		return []key.Binding{m.keys.Dismiss, m.keys.Quit}
	case m.state == StateConfirmClear:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	case m.state == StateEditSettings:
		return nil
	case m.state == StateRecords:
		return []key.Binding{m.keys.Clear, m.keys.Tab, m.keys.Quit, m.keys.Help}
	case m.state == StateSettings:
		return []key.Binding{m.keys.Edit, m.keys.Test, m.keys.Tab, m.keys.Quit, m.keys.Help}
	}
	return m.keys.ShortHelp()
}

func (m Model) FullHelp() [][]key.Binding {
	return m.keys.FullHelp()
}

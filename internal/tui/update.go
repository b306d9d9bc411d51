package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/sitless/internal/constants"
	"github.com/julianstephens/sitless/internal/logger"
	"github.com/julianstephens/sitless/internal/models"
	"github.com/julianstephens/sitless/internal/scheduler"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.countdown.SetSize(msg.Width, m.contentHeight())
		m.records.SetSize(msg.Width, m.contentHeight())
		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width)
		}
		return m, nil

	case TickMsg:
		return m.onTick(), tick()

	case PopupMsg:
		p := &popup{text: msg.Text, color: msg.Color}
		if msg.Seconds > 0 {
			p.until = m.rt.clock.Now().Add(time.Duration(msg.Seconds) * time.Second)
		}
		m.popup = p
		return m, nil

	case FlashMsg:
		if msg.Count <= 0 || len(msg.Edges) == 0 {
			return m, nil
		}
		m.flash = flash{edges: msg.Edges, remaining: msg.Count * 2, on: true}
		return m, flashStep()

	case flashStepMsg:
		if m.flash.remaining == 0 {
			return m, nil
		}
		m.flash.remaining--
		m.flash.on = !m.flash.on
		if m.flash.remaining == 0 {
			return m, nil
		}
		return m, flashStep()
	}

	keyMsg, isKey := msg.(tea.KeyMsg)
	if isKey && m.popup != nil {
		switch {
		case key.Matches(keyMsg, m.keys.Dismiss):
			m.popup = nil
		case key.Matches(keyMsg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	if m.state == StateEditSettings {
		return m.updateForm(msg)
	}

	if !isKey {
		if m.state == StateRecords {
			var cmd tea.Cmd
			m.records, cmd = m.records.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	if key.Matches(keyMsg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	if m.state == StateConfirmClear {
		switch {
		case key.Matches(keyMsg, m.keys.Confirm):
			m.clearRecords()
			m.state = StateRecords
		case key.Matches(keyMsg, m.keys.Cancel):
			m.state = StateRecords
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(keyMsg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
	case key.Matches(keyMsg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
	case key.Matches(keyMsg, m.keys.Start):
		m.rt.scheduler.Start(m.ctx.Config.Settings())
		m.status = fmt.Sprintf("Started: reminder in %d min", m.rt.scheduler.Settings().EffectiveIntervalMinutes())
		m.applyEvents()
	case key.Matches(keyMsg, m.keys.Stop):
		if m.rt.scheduler.IsRunning() {
			m.rt.scheduler.Stop()
			m.status = "Stopped"
			m.applyEvents()
		}
	case key.Matches(keyMsg, m.keys.Test):
		m.rt.scheduler.TestReminder(m.ctx.Config.Settings())
		m.status = "Test reminder sent"
	case key.Matches(keyMsg, m.keys.Edit):
		m.settingsForm = newSettingsFormModel(m.ctx.Config.Settings())
		m.form = NewSettingsForm(m.settingsForm, m.ctx.Config.IntervalRange())
		if m.width > 0 {
			m.form = m.form.WithWidth(m.width)
		}
		m.state = StateEditSettings
		return m, m.form.Init()
	case key.Matches(keyMsg, m.keys.Clear):
		if m.state == StateRecords && m.records.Len() > 0 {
			m.state = StateConfirmClear
		}
	default:
		if m.state == StateRecords {
			var cmd tea.Cmd
			m.records, cmd = m.records.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.syncCountdown()
	return m, tea.Batch(cmds...)
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.saveSettingsForm()
		m.form = nil
		m.state = StateSettings
	case huh.StateAborted:
		m.form = nil
		m.state = StateSettings
		m.status = "Settings unchanged"
	}
	return m, cmd
}

// saveSettingsForm applies the edited values, persists them and restarts a
// running cycle so the new interval takes effect.
func (m *Model) saveSettingsForm() {
	var rejected []string
	updated := m.ctx.Config.UpdateSettings(func(s *models.Settings) {
		rejected = m.settingsForm.Apply(s)
	})

	if err := m.ctx.Config.Save(); err != nil {
		logger.Error("Failed to save settings", "error", err)
		m.status = "Failed to save settings"
		return
	}

	if m.rt.scheduler.Restart(updated) {
		m.applyEvents()
	}

	m.status = "Settings saved"
	if len(rejected) > 0 {
		m.status = "Ignored invalid " + strings.Join(rejected, ", ")
	}
	m.syncCountdown()
}

func (m *Model) clearRecords() {
	m.ctx.PerformAutomaticBackup()
	n := len(m.ctx.Config.Records())
	m.ctx.Config.ClearRecords()
	if err := m.ctx.Config.Save(); err != nil {
		logger.Error("Failed to save cleared records", "error", err)
		m.status = "Failed to save cleared records"
		return
	}
	m.records.SetRecords(nil)
	m.status = fmt.Sprintf("Cleared %d records", n)
}

func (m Model) onTick() Model {
	now := m.rt.clock.Now()
	if _, fired := m.rt.scheduler.OnTick(); fired {
		m.applyEvents()
	}
	if m.popup != nil && !m.popup.until.IsZero() && !now.Before(m.popup.until) {
		m.popup = nil
	}
	m.countdown.Now = now
	m.syncCountdown()
	return m
}

// applyEvents folds scheduler events into the view.
func (m *Model) applyEvents() {
	for _, ev := range m.rt.drain() {
		switch ev.Kind {
		case scheduler.EventFired:
			m.countdown.LastFired = ev.At
			m.status = fmt.Sprintf("Reminder fired (%s)", ev.Mode)
		case scheduler.EventStopped:
			if ev.Record != nil {
				m.records.SetRecords(m.ctx.Config.Records())
			}
		}
	}
}

func (m *Model) syncCountdown() {
	m.countdown.Running = m.rt.scheduler.IsRunning()
	m.countdown.Remaining = m.rt.scheduler.Remaining()
	if m.countdown.Running {
		m.countdown.Interval = m.rt.scheduler.Settings().EffectiveIntervalMinutes()
	} else {
		m.countdown.Interval = m.ctx.Config.Settings().EffectiveIntervalMinutes()
	}
}

func (m Model) contentHeight() int {
	// tabs, status and help lines
	if h := m.height - 4; h > 0 {
		return h
	}
	return 0
}

func flashStep() tea.Cmd {
	return tea.Tick(constants.FlashIntervalMs*time.Millisecond, func(time.Time) tea.Msg {
		return flashStepMsg{}
	})
}

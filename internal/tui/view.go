package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/sitless/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateTimer:
		content = m.countdown.View()
	case StateRecords:
		content = docStyle.Render(m.records.View())
	case StateSettings:
		content = docStyle.Render(m.viewSettings())
	case StateEditSettings:
		content = docStyle.Render(m.form.View())
	case StateConfirmClear:
		content = m.viewConfirmClear()
	}

	if m.popup != nil {
		content = m.viewPopup()
	}

	ui := lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		statusStyle.Render(m.status),
		content,
		m.help.View(m),
	)
	return m.applyFlash(ui)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Timer", "Records", "Settings"} {
		if m.activeTab() == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// activeTab maps transient states to the tab they belong to.
func (m Model) activeTab() SessionState {
	switch m.state {
	case StateEditSettings:
		return StateSettings
	case StateConfirmClear:
		return StateRecords
	}
	return m.state
}

func (m Model) viewSettings() string {
	s := m.ctx.Config.Settings()
	r := m.ctx.Config.IntervalRange()

	onOff := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}

	rows := [][2]string{
		{"Interval", fmt.Sprintf("%d min (%d-%d)", s.IntervalMinutes(), r.Min, r.Max)},
		{"Reminder text", s.ReminderText()},
		{"Sound file", s.SoundFile()},
		{"Popup", fmt.Sprintf("%s, %ds, %s", onOff(s.PopupEnabled()), s.PopupDurationSeconds(), s.PopupColor())},
		{"Sound", onOff(s.SoundEnabled())},
		{"Flash", fmt.Sprintf("%s, %d times, %s", onOff(s.FlashEnabled()), s.FlashCount(), models.JoinEdges(s.FlashEdges()))},
	}

	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(row[0]),
			valueStyle.Render(row[1]),
		))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewConfirmClear() string {
	return lipgloss.Place(m.width, m.contentHeight(),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Clear all %d reminder records?", m.records.Len())),
			"A backup is taken first.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) viewPopup() string {
	box := popupStyle(m.popup.color.Hex()).Render(m.popup.text)
	footer := "enter to dismiss"
	if !m.popup.until.IsZero() {
		left := m.popup.until.Sub(m.rt.clock.Now()).Round(time.Second)
		footer = fmt.Sprintf("closes in %s", left)
	}
	content := lipgloss.JoinVertical(lipgloss.Center, box, statusStyle.Render(footer))
	return lipgloss.Place(m.width, m.contentHeight(), lipgloss.Center, lipgloss.Center, content)
}

// applyFlash borders the configured edges while a flash is running.
func (m Model) applyFlash(ui string) string {
	if m.flash.remaining == 0 {
		return ui
	}
	color := flashOffColor
	if m.flash.on {
		color = flashOnColor
	}
	has := func(e models.Edge) bool { return slices.Contains(m.flash.edges, e) }
	return lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), has(models.EdgeTop), has(models.EdgeRight), has(models.EdgeBottom), has(models.EdgeLeft)).
		BorderForeground(color).
		Render(ui)
}

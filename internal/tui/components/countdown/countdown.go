package countdown

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true).
			Padding(1, 2).
			Align(lipgloss.Center)

	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true).
			Padding(1, 0).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Width(24).
			Align(lipgloss.Center)

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Model shows the time left in the current reminder cycle.
type Model struct {
	Running   bool
	Remaining time.Duration
	Interval  int
	LastFired time.Time
	Now       time.Time
	width     int
	height    int
}

func New() Model {
	return Model{Now: time.Now()}
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) View() string {
	title := "Idle"
	if m.Running {
		title = "Next reminder in"
	}

	clock := "--:--"
	if m.Running {
		clock = Format(m.Remaining)
	}

	lines := []string{
		titleStyle.Render(title),
		clockStyle.Render(clock),
		dimStyle.Render(fmt.Sprintf("interval %d min", m.Interval)),
	}
	if !m.LastFired.IsZero() {
		lines = append(lines, dimStyle.Render("last reminder "+humanize.RelTime(m.LastFired, m.Now, "ago", "from now")))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, lines...)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	return content
}

// Format renders d as MM:SS, or H:MM:SS from one hour up. Partial seconds
// round up so a fresh 30 minute cycle shows 30:00.
func Format(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int((d + time.Second - 1) / time.Second)
	h, m, s := secs/3600, (secs%3600)/60, secs%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

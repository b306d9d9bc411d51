package records

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/sitless/internal/models"
)

var emptyStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("240")).
	Padding(1, 2)

// Model lists reminder records newest first.
type Model struct {
	table table.Model
	count int
}

func columns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Start", Width: 19},
		{Title: "End", Width: 19},
		{Title: "Duration", Width: 10},
	}
}

func New(records []models.ReminderRecord, width, height int) Model {
	t := table.New(
		table.WithColumns(columns()),
		table.WithFocused(true),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := Model{table: t}
	m.SetSize(width, height)
	m.SetRecords(records)
	return m
}

// SetRecords replaces the rows. Input is oldest first as kept by the log.
func (m *Model) SetRecords(records []models.ReminderRecord) {
	rows := make([]table.Row, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", len(records)-i),
			r.StartTimeString(),
			r.EndTimeString(),
			r.DurationString(),
		})
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
	m.count = len(records)
}

func (m *Model) SetSize(width, height int) {
	if height > 2 {
		m.table.SetHeight(height - 2)
	}
	if width > 0 {
		m.table.SetWidth(width)
	}
}

func (m Model) Len() int {
	return m.count
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.count == 0 {
		return emptyStyle.Render("No reminder records yet.")
	}
	return m.table.View()
}

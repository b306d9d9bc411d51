package tui

import "github.com/charmbracelet/lipgloss"

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	docStyle = lipgloss.NewStyle().Margin(1, 2)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(18)

	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	flashOnColor  = lipgloss.Color("196")
	flashOffColor = lipgloss.Color("236")
)

func popupStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Padding(1, 4).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(hex)).
		Foreground(lipgloss.Color(hex))
}

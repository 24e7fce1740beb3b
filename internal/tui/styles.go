package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))

	oweStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	owedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	evenStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	cursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("208"))
	selectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("236"))

	formStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(0, 1)

	labelStyle   = lipgloss.NewStyle().Width(22)
	focusedStyle = lipgloss.NewStyle().Underline(true).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

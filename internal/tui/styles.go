package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent = "33"
	colorSubtle = "244"
	colorText   = "252"
	colorHeader = "117"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorAccent)).
			MarginBottom(1)

	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSubtle)).Width(8)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorHeader)).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorText)).Padding(0, 1)
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSubtle))
	summaryStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorText))
	enabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent)).Bold(true)
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSubtle)).Faint(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSubtle)).MarginTop(1)
)

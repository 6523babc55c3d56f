package tui

import "github.com/charmbracelet/lipgloss"

// Terminal-friendly palette shared by the console panes.
var (
	colorPrimary = lipgloss.Color("63")
	colorError   = lipgloss.Color("196")
	colorSuccess = lipgloss.Color("42")
	colorBorder  = lipgloss.Color("238")
	colorMuted   = lipgloss.Color("245")
)

var (
	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true).
			Padding(0, 1)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleBorder = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder)

	styleActiveBorder = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary)

	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Padding(0, 1)
)

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// statusModel is the one-line footer with connection info and hints.
type statusModel struct {
	width    int
	database string
	schema   string
	message  string
}

func (m *statusModel) setWidth(w int) {
	m.width = w
}

func (m *statusModel) setMessage(msg string) {
	m.message = msg
}

func (m statusModel) view() string {
	left := lipgloss.NewStyle().Foreground(colorSuccess).Render("●") +
		" " + m.database + "/" + m.schema

	right := "Ctrl+E: run │ Tab: complete/switch │ Ctrl+C: quit"
	if m.message != "" {
		right = m.message
	}

	padding := m.width - lipgloss.Width(left) - len(right) - 4
	if padding < 1 {
		padding = 1
	}
	return styleStatusBar.Width(m.width).Render(left + strings.Repeat(" ", padding) + right)
}

package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joacominatel/trident/internal/output"
	"github.com/joacominatel/trident/internal/warehouse"
)

// resultsModel shows the last execution: the diagnostic context emitted
// by the reporter, then the result table (or the error).
type resultsModel struct {
	frame   *warehouse.Frame
	context []string
	err     error
	elapsed time.Duration

	width   int
	height  int
	focused bool
	loading bool
	scrollY int

	rendered []string // table lines, rebuilt on each result
}

func newResults() resultsModel {
	return resultsModel{}
}

func (m *resultsModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *resultsModel) setFocused(f bool) {
	m.focused = f
}

func (m *resultsModel) setLoading() {
	m.loading = true
	m.err = nil
}

func (m *resultsModel) setResult(frame *warehouse.Frame, context []string, elapsed time.Duration) {
	m.frame = frame
	m.context = context
	m.elapsed = elapsed
	m.err = nil
	m.loading = false
	m.scrollY = 0
	m.rendered = strings.Split(output.FrameTable(frame), "\n")
}

func (m *resultsModel) setError(err error, context []string) {
	m.err = err
	m.context = context
	m.frame = nil
	m.rendered = nil
	m.loading = false
	m.scrollY = 0
}

func (m resultsModel) update(msg tea.Msg) (resultsModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.scrollY > 0 {
				m.scrollY--
			}
		case "down", "j":
			if m.scrollY < m.maxScroll() {
				m.scrollY++
			}
		case "pgup":
			m.scrollY = max(0, m.scrollY-m.height/2)
		case "pgdown":
			m.scrollY = min(m.maxScroll(), m.scrollY+m.height/2)
		case "g":
			m.scrollY = 0
		case "G":
			m.scrollY = m.maxScroll()
		}
	}
	return m, nil
}

func (m resultsModel) maxScroll() int {
	return max(0, len(m.rendered)-1)
}

func (m resultsModel) view() string {
	title := styleTitle.Render("Results")

	if m.loading {
		return title + "\n" + styleMuted.Render("  executing...")
	}

	var b strings.Builder
	b.WriteString(title)

	if m.frame != nil {
		b.WriteString("  " + styleMuted.Render(fmt.Sprintf("%d row(s) | %s", len(m.frame.Rows), m.elapsed.Round(time.Millisecond))))
	}
	b.WriteString("\n")

	for _, line := range m.context {
		b.WriteString(styleMuted.Render("  " + line))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(styleError.Render("  " + m.err.Error()))
		return b.String()
	}
	if m.frame == nil {
		b.WriteString(styleMuted.Render("  run a query to see results"))
		return b.String()
	}

	visible := m.height - len(m.context) - 2
	if visible < 1 {
		visible = 1
	}
	end := min(len(m.rendered), m.scrollY+visible)
	for i := m.scrollY; i < end; i++ {
		b.WriteString(m.rendered[i])
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

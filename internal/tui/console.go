// Package tui is the interactive query console: a SQL editor on top, the
// query context and results below, wired to a warehouse reporter.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joacominatel/trident/internal/warehouse"
)

type pane int

const (
	paneEditor pane = iota
	paneResults
)

type (
	tablesLoadedMsg struct {
		tables []string
		err    error
	}
	queryDoneMsg struct {
		frame   *warehouse.Frame
		context []string
		elapsed time.Duration
		err     error
	}
)

// Model is the top-level console model.
type Model struct {
	reporter *warehouse.Reporter
	sink     *warehouse.MemorySink

	editor  editorModel
	results resultsModel
	status  statusModel

	active pane
	width  int
	height int
}

// New builds the console over a connected reporter. The sink must be the
// one the reporter was built with; the console drains it after each
// execution to show the diagnostic context.
func New(reporter *warehouse.Reporter, sink *warehouse.MemorySink, database string) Model {
	editor := newEditor()
	editor.setFocused(true)
	return Model{
		reporter: reporter,
		sink:     sink,
		editor:   editor,
		results:  newResults(),
		status:   statusModel{database: database, schema: reporter.Schema()},
		active:   paneEditor,
	}
}

// Run starts the console and blocks until it exits.
func Run(reporter *warehouse.Reporter, sink *warehouse.MemorySink, database string) error {
	p := tea.NewProgram(New(reporter, sink, database), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTables(), textarea.Blink)
}

func (m Model) loadTables() tea.Cmd {
	return func() tea.Msg {
		tables, err := m.reporter.ListTables(context.Background(), "")
		return tablesLoadedMsg{tables: tables, err: err}
	}
}

func (m Model) runQuery(query string) tea.Cmd {
	return func() tea.Msg {
		m.sink.Reset()
		start := time.Now()
		frame, err := m.reporter.Frame(context.Background(), query)
		return queryDoneMsg{
			frame:   frame,
			context: m.sink.Lines(),
			elapsed: time.Since(start),
			err:     err,
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab":
			// Tab switches panes unless the editor is completing.
			if m.active == paneResults {
				m.focus(paneEditor)
				return m, nil
			}
		case "shift+tab":
			m.focus(paneEditor)
			return m, nil
		case "esc":
			if m.active == paneResults {
				m.focus(paneEditor)
				return m, nil
			}
		}

	case tablesLoadedMsg:
		if msg.err == nil {
			m.editor.setTableNames(msg.tables)
		}
		return m, nil

	case switchPaneMsg:
		m.focus(paneResults)
		return m, nil

	case executeMsg:
		m.results.setLoading()
		m.focus(paneResults)
		return m, m.runQuery(msg.query)

	case queryDoneMsg:
		if msg.err != nil {
			m.results.setError(msg.err, msg.context)
			m.status.setMessage("query failed")
		} else {
			m.results.setResult(msg.frame, msg.context, msg.elapsed)
			m.status.setMessage("")
		}
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.editor, cmd = m.editor.update(msg)
	cmds = append(cmds, cmd)

	m.results, cmd = m.results.update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) focus(p pane) {
	m.active = p
	m.editor.setFocused(p == paneEditor)
	m.results.setFocused(p == paneResults)
}

func (m *Model) layout() {
	editorHeight := m.height / 3
	if editorHeight < 5 {
		editorHeight = 5
	}
	resultsHeight := m.height - editorHeight - 3
	if resultsHeight < 3 {
		resultsHeight = 3
	}
	m.editor.setSize(m.width-2, editorHeight)
	m.results.setSize(m.width-2, resultsHeight)
	m.status.setWidth(m.width)
}

func (m Model) View() string {
	if m.width == 0 {
		return "loading..."
	}

	editorStyle := styleBorder
	resultsStyle := styleBorder
	if m.active == paneEditor {
		editorStyle = styleActiveBorder
	} else {
		resultsStyle = styleActiveBorder
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		editorStyle.Width(m.width-2).Render(m.editor.view()),
		resultsStyle.Width(m.width-2).Render(m.results.view()),
		m.status.view(),
	)
}

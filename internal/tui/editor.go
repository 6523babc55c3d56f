package tui

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// executeMsg is sent when the user triggers query execution.
type executeMsg struct {
	query string
}

// switchPaneMsg is sent when Tab has no completion to apply.
type switchPaneMsg struct{}

var sqlKeywords = map[string]bool{
	"select": true, "from": true, "where": true, "and": true, "or": true,
	"join": true, "inner": true, "outer": true, "left": true, "right": true,
	"cross": true, "on": true, "not": true, "in": true, "is": true,
	"null": true, "like": true, "ilike": true, "order": true, "by": true,
	"group": true, "having": true, "limit": true, "offset": true,
	"as": true, "distinct": true, "count": true, "sum": true, "avg": true,
	"min": true, "max": true, "between": true, "exists": true,
	"case": true, "when": true, "then": true, "else": true, "end": true,
	"union": true, "all": true, "asc": true, "desc": true, "with": true,
}

// editorModel is the SQL input pane: a textarea with keyword formatting
// and table-name completion fed from the reporter's table memo.
type editorModel struct {
	textarea textarea.Model
	focused  bool

	tableNames  []string
	completions []string
	compIndex   int
	completing  bool
}

func newEditor() editorModel {
	ta := textarea.New()
	ta.Placeholder = "SELECT ... (Ctrl+E to run)"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Prompt = "│ "
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Placeholder = styleMuted
	ta.BlurredStyle.Placeholder = styleMuted
	ta.FocusedStyle.Prompt = lipgloss.NewStyle().Foreground(colorPrimary)
	ta.BlurredStyle.Prompt = lipgloss.NewStyle().Foreground(colorBorder)
	return editorModel{textarea: ta}
}

func (m *editorModel) setSize(w, h int) {
	m.textarea.SetWidth(w - 2)
	m.textarea.SetHeight(h - 2)
}

func (m *editorModel) setFocused(f bool) {
	m.focused = f
	if f {
		m.textarea.Focus()
	} else {
		m.textarea.Blur()
	}
}

func (m *editorModel) setTableNames(names []string) {
	m.tableNames = names
}

func (m editorModel) update(msg tea.Msg) (editorModel, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+e", "f5":
			query := strings.TrimSpace(m.textarea.Value())
			if query == "" {
				return m, nil
			}
			m.completing = false
			return m, func() tea.Msg { return executeMsg{query: query} }

		case "ctrl+k":
			m.textarea.Reset()
			m.completing = false
			return m, nil

		case "ctrl+l":
			m.textarea.SetValue(uppercaseKeywords(m.textarea.Value()))
			return m, nil

		case "tab":
			if m.tryCompletion() {
				return m, nil
			}
			return m, func() tea.Msg { return switchPaneMsg{} }

		case "esc":
			if m.completing {
				m.completing = false
				return m, nil
			}
		default:
			m.completing = false
		}
	}

	var cmd tea.Cmd
	m.textarea, cmd = m.textarea.Update(msg)
	return m, cmd
}

// tryCompletion completes the trailing partial word against the known
// table names; repeated Tab presses cycle the candidates.
func (m *editorModel) tryCompletion() bool {
	if len(m.tableNames) == 0 {
		return false
	}
	value := m.textarea.Value()

	if m.completing && len(m.completions) > 0 {
		m.compIndex = (m.compIndex + 1) % len(m.completions)
		m.applyCompletion()
		return true
	}

	partial := lastWord(value)
	if partial == "" {
		return false
	}

	lower := strings.ToLower(partial)
	var matches []string
	for _, name := range m.tableNames {
		if strings.HasPrefix(strings.ToLower(name), lower) {
			matches = append(matches, name)
		}
	}
	if len(matches) == 0 {
		return false
	}

	m.completing = true
	m.completions = matches
	m.compIndex = 0
	m.applyCompletion()
	return true
}

func (m *editorModel) applyCompletion() {
	value := m.textarea.Value()
	base := strings.TrimSuffix(value, lastWord(value))
	m.textarea.SetValue(base + m.completions[m.compIndex])
}

func (m editorModel) view() string {
	title := styleTitle.Render("Query")
	body := title + "\n" + m.textarea.View()
	if m.completing && len(m.completions) > 1 {
		hints := make([]string, len(m.completions))
		for i, c := range m.completions {
			if i == m.compIndex {
				hints[i] = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render(c)
			} else {
				hints[i] = styleMuted.Render(c)
			}
		}
		body += "\n" + styleMuted.Render(" Tab: ") + strings.Join(hints, " │ ")
	}
	return body
}

// uppercaseKeywords uppercases SQL keywords outside string literals.
func uppercaseKeywords(s string) string {
	var out, word strings.Builder
	inString := false
	var quote rune

	flush := func() {
		if word.Len() == 0 {
			return
		}
		w := word.String()
		if sqlKeywords[strings.ToLower(w)] {
			out.WriteString(strings.ToUpper(w))
		} else {
			out.WriteString(w)
		}
		word.Reset()
	}

	for _, ch := range s {
		switch {
		case inString:
			out.WriteRune(ch)
			if ch == quote {
				inString = false
			}
		case ch == '\'' || ch == '"':
			flush()
			inString = true
			quote = ch
			out.WriteRune(ch)
		case unicode.IsLetter(ch) || ch == '_':
			word.WriteRune(ch)
		default:
			flush()
			out.WriteRune(ch)
		}
	}
	flush()
	return out.String()
}

// lastWord returns the trailing identifier-like token.
func lastWord(s string) string {
	s = strings.TrimRight(s, " \t\n\r")
	i := len(s) - 1
	for i >= 0 && isIdentChar(rune(s[i])) {
		i--
	}
	return s[i+1:]
}

func isIdentChar(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') || c == '_' || c == '.'
}

// Package tui is a full-screen terminal front-end for the command interpreter.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-kv/pkg/command"
	"github.com/dd0wney/cluso-kv/pkg/storage"
)

// lineKind decides how a scrollback line is rendered
type lineKind int

const (
	kindCommand lineKind = iota
	kindOutput
	kindNotice
	kindError
)

type historyLine struct {
	kind lineKind
	text string
}

// Model is the bubbletea model of the terminal UI
type Model struct {
	interp  *command.Interpreter
	input   textinput.Model
	help    help.Model
	keys    keyMap
	history []historyLine
	limit   int
	stats   storage.Statistics
	width   int
	height  int
	ended   bool
}

// New creates a model over interp keeping at most historyLimit scrollback lines
func New(interp *command.Interpreter, historyLimit int) Model {
	ti := textinput.New()
	ti.Placeholder = "SET key value"
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Width = 60
	ti.Focus()

	return Model{
		interp: interp,
		input:  ti,
		help:   help.New(),
		keys:   keys,
		limit:  historyLimit,
		stats:  interp.Store().Stats(),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-4, 10)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Clear):
			m.history = nil
			return m, nil

		case key.Matches(msg, m.keys.Enter):
			m.submit()
			if m.ended {
				return m, tea.Quit
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit executes the current input line and records it in the scrollback
func (m *Model) submit() {
	line := m.input.Value()
	m.input.Reset()

	result, ok, err := m.interp.ExecuteLine(line)
	if !ok {
		return
	}

	m.appendLine(kindCommand, "> "+strings.TrimSpace(line))
	switch {
	case err != nil:
		m.appendLine(kindError, command.OutputError)
	case result.End:
		m.ended = true
	default:
		for _, out := range result.Output {
			kind := kindOutput
			if out == command.OutputNoTransaction {
				kind = kindNotice
			}
			m.appendLine(kind, out)
		}
	}

	m.stats = m.interp.Store().Stats()
}

func (m *Model) appendLine(kind lineKind, text string) {
	m.history = append(m.history, historyLine{kind: kind, text: text})
	if m.limit > 0 && len(m.history) > m.limit {
		m.history = m.history[len(m.history)-m.limit:]
	}
}

// Ended reports whether an END command was executed
func (m Model) Ended() bool {
	return m.ended
}

// History returns the plain scrollback text, oldest first
func (m Model) History() []string {
	lines := make([]string, len(m.history))
	for i, l := range m.history {
		lines[i] = l.text
	}
	return lines
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("cluso-kv"))
	b.WriteString("\n\n")

	for _, l := range m.visibleHistory() {
		b.WriteString(renderLine(l))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// visibleHistory trims the scrollback to what fits above the status line
func (m Model) visibleHistory() []historyLine {
	// title(2) + blank + status + input + help
	const chrome = 6
	if m.height <= chrome || len(m.history) <= m.height-chrome {
		return m.history
	}
	return m.history[len(m.history)-(m.height-chrome):]
}

func renderLine(l historyLine) string {
	switch l.kind {
	case kindCommand:
		return commandStyle.Render(l.text)
	case kindError:
		return errorStyle.Render(l.text)
	case kindNotice:
		return noticeStyle.Render(l.text)
	default:
		return l.text
	}
}

func (m Model) renderStatus() string {
	depth := statusStyle.Render("no transaction")
	if m.stats.Depth > 0 {
		depth = txStatusStyle.Render(fmt.Sprintf("transaction depth %d", m.stats.Depth))
	}
	keys := statusStyle.Render(fmt.Sprintf("%d keys", m.stats.VisibleKeys))
	return lipgloss.JoinHorizontal(lipgloss.Top, depth, " ", keys)
}

// Run starts the terminal UI and blocks until the user quits
func Run(interp *command.Interpreter, historyLimit int, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(New(interp, historyLimit), opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal UI: %w", err)
	}
	return nil
}

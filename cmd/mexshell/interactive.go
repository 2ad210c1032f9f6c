package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/mexbind"
	"github.com/wippyai/mexbind/dispatch"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	classStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectClass modelState = iota
	stateCommand
)

type interactiveModel struct {
	sh       *shell
	obj      *mexbind.Object
	d        *dispatch.Dispatcher
	input    textinput.Model
	result   string
	errText  string
	selected int
	state    modelState
	saved    mexbind.Record
}

func newInteractiveModel(sh *shell) *interactiveModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "new | act <name> [args...] | get <prop> | set <prop> <value> | save | load | delete"
	ti.Width = 70
	return &interactiveModel{sh: sh, input: ti}
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "q":
		if m.state == stateSelectClass {
			return m, tea.Quit
		}

	case "up", "k":
		if m.state == stateSelectClass && m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.state == stateSelectClass && m.selected < len(m.sh.order)-1 {
			m.selected++
		}

	case "esc":
		if m.state == stateCommand {
			m.state = stateSelectClass
			m.input.Blur()
			m.result = ""
			m.errText = ""
		}

	case "enter":
		switch m.state {
		case stateSelectClass:
			name := m.sh.order[m.selected]
			m.d = m.sh.dispatchers[name]
			m.obj = mexbind.NewObject(name)
			m.result = ""
			m.errText = ""
			m.state = stateCommand
			m.input.SetValue("")
			m.input.Focus()

		case stateCommand:
			m.runCommand(strings.TrimSpace(m.input.Value()))
			m.input.SetValue("")
		}
	}

	if m.state == stateCommand {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// runCommand translates one shell line into a dispatch call.
func (m *interactiveModel) runCommand(line string) {
	m.result = ""
	m.errText = ""
	if line == "" {
		return
	}
	fields := strings.Fields(line)

	var (
		out []any
		err error
	)
	switch fields[0] {
	case "new":
		out, err = m.d.Dispatch(1, m.obj)

	case "delete":
		out, err = m.d.Dispatch(0, m.obj, mexbind.ActionDelete)

	case "get":
		in := append([]any{any(m.obj), any("get")}, parseArgs(fields[1:])...)
		out, err = m.d.Dispatch(1, in...)

	case "set":
		in := append([]any{any(m.obj), any("set")}, parseArgs(fields[1:])...)
		out, err = m.d.Dispatch(0, in...)

	case "save":
		out, err = m.d.Dispatch(1, m.obj, "save")
		if err == nil && len(out) == 1 {
			if rec, ok := out[0].(mexbind.Record); ok {
				m.saved = rec
			}
		}

	case "load":
		if m.saved == nil {
			m.errText = "nothing saved yet"
			return
		}
		out, err = m.d.Dispatch(0, m.obj, "load", m.saved)

	case "act":
		if len(fields) < 2 {
			m.errText = "act needs an action name"
			return
		}
		in := append([]any{any(m.obj), any(fields[1])}, parseArgs(fields[2:])...)
		out, err = m.d.Dispatch(1, in...)

	case "static":
		if len(fields) < 2 {
			m.errText = "static needs an action name"
			return
		}
		in := append([]any{any(fields[1])}, parseArgs(fields[2:])...)
		out, err = m.d.Dispatch(0, in...)

	default:
		m.errText = fmt.Sprintf("unknown command: %s", fields[0])
		return
	}

	if err != nil {
		m.errText = err.Error()
		return
	}
	if len(out) == 0 {
		m.result = "ok"
		return
	}
	parts := make([]string, len(out))
	for i, v := range out {
		parts[i] = fmt.Sprintf("%v", v)
	}
	m.result = strings.Join(parts, ", ")
}

func parseArgs(fields []string) []any {
	out := make([]any, len(fields))
	for i, f := range fields {
		out[i] = parseArg(f)
	}
	return out
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("mexshell"))
	b.WriteString(fmt.Sprintf("  outstanding handles: %d\n\n", m.sh.residency.Count()))

	switch m.state {
	case stateSelectClass:
		b.WriteString("Select a class:\n\n")
		for i, name := range m.sh.order {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + name))
			} else {
				b.WriteString("  " + classStyle.Render(name))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter open • q quit"))

	case stateCommand:
		b.WriteString("Class ")
		b.WriteString(classStyle.Render(m.obj.ClassName()))
		if m.obj.Handle() != 0 {
			b.WriteString(fmt.Sprintf("  handle %#x", uint64(m.obj.Handle())))
		} else {
			b.WriteString("  (no instance, run `new`)")
		}
		b.WriteString("\n\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		if m.errText != "" {
			b.WriteString(errorStyle.Render("Error: " + m.errText))
			b.WriteString("\n")
		} else if m.result != "" {
			b.WriteString(resultStyle.Render(m.result))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter run • esc back • ctrl+c quit"))
	}

	return b.String()
}

func runInteractive(sh *shell) error {
	p := tea.NewProgram(newInteractiveModel(sh), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	ascruntime "github.com/wippyai/asc-runtime"
)

type interactiveModel struct {
	err      error
	session  *session
	log      *zap.Logger
	version  ascruntime.Version
	filename string
	result   string
	funcs    []export
	types    []string
	inputs   []textinput.Model
	selected int
	typeIdx  int
	focusIdx int
	state    modelState
}

type modelState int

const (
	stateSelectFunc modelState = iota
	stateSelectType
	stateInputArgs
	stateShowResult
)

func newInteractiveModel(filename string, v ascruntime.Version, log *zap.Logger) *interactiveModel {
	return &interactiveModel{
		filename: filename,
		version:  v,
		log:      log,
		types:    typeNames(),
		state:    stateSelectFunc,
	}
}

type loadedMsg struct {
	err     error
	session *session
	funcs   []export
}

type callResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadModule
}

func (m *interactiveModel) loadModule() tea.Msg {
	s, err := openSession(context.Background(), m.filename, m.version, m.log)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{session: s, funcs: s.exports()}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.session != nil {
				m.session.Close(context.Background())
			}
			return m, tea.Quit

		case "up", "k":
			switch m.state {
			case stateSelectFunc:
				if m.selected > 0 {
					m.selected--
				}
			case stateSelectType:
				if m.typeIdx > 0 {
					m.typeIdx--
				}
			}

		case "down", "j":
			switch m.state {
			case stateSelectFunc:
				if m.selected < len(m.funcs)-1 {
					m.selected++
				}
			case stateSelectType:
				if m.typeIdx < len(m.types)-1 {
					m.typeIdx++
				}
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				if len(m.funcs) > 0 {
					m.state = stateSelectType
				}

			case stateSelectType:
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.callFunction
				}
				m.state = stateInputArgs

			case stateInputArgs:
				return m, m.callFunction

			case stateShowResult:
				m.reset()
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateSelectType:
				m.state = stateSelectFunc
			case stateInputArgs:
				m.state = stateSelectType
				m.inputs = nil
			case stateShowResult:
				m.reset()
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.session = msg.session
		m.funcs = msg.funcs

	case callResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) reset() {
	m.state = stateSelectFunc
	m.inputs = nil
	m.result = ""
	m.err = nil
}

func (m *interactiveModel) prepareInputs() {
	f := m.funcs[m.selected]
	m.inputs = make([]textinput.Model, f.params)
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = "u32"
		ti.Prompt = fmt.Sprintf("arg%d: ", i)
		ti.Width = 20
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) callFunction() tea.Msg {
	if m.session == nil {
		return callResultMsg{err: fmt.Errorf("module not loaded")}
	}

	f := m.funcs[m.selected]
	args := make([]uint32, len(m.inputs))
	for i, input := range m.inputs {
		n, err := strconv.ParseUint(strings.TrimSpace(input.Value()), 0, 32)
		if err != nil {
			return callResultMsg{err: fmt.Errorf("arg%d: %w", i, err)}
		}
		args[i] = uint32(n)
	}

	result, err := m.session.inspect(context.Background(), f.name, m.types[m.typeIdx], args)
	if err != nil {
		return callResultMsg{err: err}
	}

	b, err := encode(result, formatJSON)
	if err != nil {
		return callResultMsg{err: err}
	}
	return callResultMsg{result: string(b)}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.session == nil {
		return "Loading module..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("ascdump"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(" ")
	b.WriteString(typeStyle.Render("api " + m.version.String()))
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectFunc:
		if len(m.funcs) == 0 {
			b.WriteString("No pointer-returning exports.\n\n")
			b.WriteString(helpStyle.Render("q quit"))
			break
		}
		b.WriteString("Select a function to call:\n\n")
		for i, f := range m.funcs {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + formatExport(f)))
			} else {
				b.WriteString("  " + formatExport(f))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter choose • q quit"))

	case stateSelectType:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Decode result of %s as:\n\n", funcStyle.Render(f.name)))
		for i, t := range m.types {
			if i == m.typeIdx {
				b.WriteString(selectedStyle.Render("> " + t))
			} else {
				b.WriteString("  " + typeStyle.Render(t))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter call • esc back"))

	case stateInputArgs:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("Calling %s\n\n", funcStyle.Render(f.name)))
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter call • esc back"))

	case stateShowResult:
		f := m.funcs[m.selected]
		b.WriteString(fmt.Sprintf("%s as %s:\n\n", funcStyle.Render(f.name), typeStyle.Render(m.types[m.typeIdx])))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(filename string, v ascruntime.Version, log *zap.Logger) error {
	p := tea.NewProgram(newInteractiveModel(filename, v, log), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Package tui is the interactive shell: a scrolling log of command output
// beside a status panel, with a prompt underneath.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tatianab/delve/internal/command"
	"github.com/tatianab/delve/internal/engine"
	"github.com/tatianab/delve/internal/render"
)

type sessionState int

const (
	statePlaying sessionState = iota
	stateBusy
	stateError
)

type model struct {
	state     sessionState
	engine    *engine.Engine
	status    engine.Status
	textInput textinput.Model
	viewport  viewport.Model
	err       error
	gameLog   string
	history   []string
	width     int
	height    int
}

var (
	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	stateStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))
)

const banner = "DELVE: descend through the memory sectors. Type 'help' for commands."

func newModel(eng *engine.Engine) model {
	ti := textinput.New()
	ti.Placeholder = "init, enter door_0_root, op MOV..."
	ti.Focus()
	ti.CharLimit = 80
	ti.Width = 40

	return model{
		state:     stateBusy,
		engine:    eng,
		textInput: ti,
		viewport:  viewport.New(0, 0),
		gameLog:   banner + "\n",
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.refresh())
}

// commandDoneMsg carries one command's output and the status after it.
type commandDoneMsg struct {
	text   string
	status engine.Status
	err    error
}

type statusMsg struct {
	status engine.Status
	err    error
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyUp:
			if len(m.history) > 0 && m.state == statePlaying {
				m.textInput.SetValue(m.history[len(m.history)-1])
				m.textInput.CursorEnd()
			}
			return m, nil

		case tea.KeyEnter:
			if m.state != statePlaying {
				return m, nil
			}
			line := strings.TrimSpace(m.textInput.Value())
			if line == "" {
				return m, nil
			}
			m.textInput.Reset()
			m.history = append(m.history, line)

			switch line {
			case "/quit", "quit", "exit":
				return m, tea.Quit
			case "/clear":
				m.gameLog = ""
				m.viewport.SetContent(m.gameLog)
				return m, nil
			}

			m.appendLog(userStyle.Width(m.logWidth()).Render("> " + line))
			if line == "help" || line == "/help" {
				m.appendLog(command.Help())
				return m, nil
			}
			m.state = stateBusy
			return m, m.run(line)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = m.logWidth()
		m.viewport.Height = msg.Height - 6
		m.viewport.SetContent(m.gameLog)

	case statusMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.status = msg.status
		m.state = statePlaying
		return m, nil

	case commandDoneMsg:
		m.state = statePlaying
		if msg.text != "" {
			m.appendLog(msg.text)
		}
		if msg.err != nil {
			m.appendLog(render.Error(msg.err))
		}
		m.status = msg.status
		return m, nil
	}

	if m.state == statePlaying {
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) appendLog(s string) {
	m.gameLog += s + "\n\n"
	m.viewport.SetContent(m.gameLog)
	m.viewport.GotoBottom()
}

func (m model) logWidth() int {
	return int(float64(m.width) * 0.70)
}

func (m model) View() string {
	var s string

	switch m.state {
	case statePlaying, stateBusy:
		mainView := lipgloss.JoinHorizontal(lipgloss.Top,
			m.viewport.View(),
			m.renderState(),
		)
		help := helpStyle.Render("Commands: help, status, /clear, /quit.")
		if m.state == stateBusy {
			help = helpStyle.Render("working...")
		}
		s = lipgloss.JoinVertical(lipgloss.Left,
			mainView,
			"\n"+m.textInput.View(),
			"\n"+help,
		)

	case stateError:
		s = fmt.Sprintf("\n  Error: %v\n\nPress Esc to quit.", m.err)
	}

	return "\n" + s + "\n"
}

func (m model) renderState() string {
	width := int(float64(m.width) * 0.28)
	return stateStyle.Width(width).Height(m.viewport.Height).Render(render.Panel(m.status))
}

func (m model) refresh() tea.Cmd {
	return func() tea.Msg {
		st, err := m.engine.Status(context.Background())
		return statusMsg{status: st, err: err}
	}
}

// run executes line and renders its output. The status panel is reloaded
// afterwards whether or not the command succeeded.
func (m model) run(line string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		out, err := command.Line(ctx, m.engine, line)
		done := commandDoneMsg{err: err}
		switch {
		case out.Status != nil:
			done.text = render.Status(*out.Status)
		case len(out.Result.Events) > 0:
			done.text = render.Result(out.Result)
		}
		st, serr := m.engine.Status(ctx)
		if serr != nil && err == nil {
			done.err = serr
		}
		done.status = st
		return done
	}
}

// Run starts the shell and blocks until the player quits.
func Run(eng *engine.Engine) error {
	p := tea.NewProgram(newModel(eng), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mwantia/vshell/cmd"
	"github.com/mwantia/vshell/session"
)

// Shell is the part of the shell facade the interface drives.
type Shell interface {
	Run(ctx context.Context) error
	Complete(line string) []string
	Active() *session.Context
	Depth() int
}

// Mode represents what the input line is currently collecting
type Mode int

const (
	ModeIdle Mode = iota
	ModeLine
	ModeConfirm
)

// reserved rows for title, input and help
const reserved = 3

type Model struct {
	shell  Shell
	bridge *Bridge
	theme  *Theme
	keys   KeyMap
	help   help.Model

	input  textinput.Model
	output viewport.Model
	buffer strings.Builder

	history []string
	recall  int

	width  int
	height int

	mode     Mode
	prompt   string
	title    string
	status   string
	fullHelp bool
	err      error
}

func NewModel(shell Shell, bridge *Bridge) *Model {
	ti := textinput.New()
	ti.CharLimit = 1024
	ti.Prompt = ""

	return &Model{
		shell:  shell,
		bridge: bridge,
		theme:  DefaultTheme(),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		input:  ti,
		output: viewport.New(0, 0),
	}
}

// Err returns the error the shell terminated with.
func (m *Model) Err() error {
	return m.err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.input.Focus(), textinput.Blink)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case promptMsg:
		m.mode = ModeLine
		m.prompt = msg.prompt
		m.recall = len(m.history)
		m.describe()
		return m, nil

	case confirmMsg:
		m.mode = ModeConfirm
		m.prompt = msg.question + " [y/N] "
		return m, nil

	case outputMsg:
		m.write(string(msg))
		return m, nil

	case doneMsg:
		m.err = msg.err
		m.mode = ModeIdle
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.fullHelp = !m.fullHelp
		m.resize()
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.output.PageUp()
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.output.PageDown()
		return m, nil

	case key.Matches(msg, m.keys.Clear):
		m.buffer.Reset()
		m.output.SetContent("")
		return m, nil
	}

	switch m.mode {
	case ModeLine:
		return m.handleLineMode(msg)
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	}
	return m, nil
}

func (m *Model) handleLineMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		line := m.input.Value()
		m.echo(line)
		if strings.TrimSpace(line) != "" {
			m.history = append(m.history, line)
		}
		return m, m.bridge.submit(line)

	case key.Matches(msg, m.keys.EOF):
		if m.input.Value() != "" {
			break
		}
		m.echo("")
		return m, m.bridge.eof()

	case key.Matches(msg, m.keys.Complete):
		m.complete()
		return m, nil

	case key.Matches(msg, m.keys.Previous):
		m.browse(-1)
		return m, nil

	case key.Matches(msg, m.keys.Next):
		m.browse(1)
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Submit) {
		value := m.input.Value()
		m.echo(value)
		return m, m.bridge.answer(value)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) resize() {
	rows := reserved
	if m.fullHelp {
		rows += len(m.keys.FullHelp()[0]) - 1
	}
	m.output.Width = m.width
	m.output.Height = max(m.height-rows, 1)
	m.output.GotoBottom()
}

// echo copies the finished input line into the output and waits for the
// session to ask again.
func (m *Model) echo(value string) {
	m.write(m.theme.EchoStyle.Render(m.prompt+value) + "\n")
	m.input.Reset()
	m.mode = ModeIdle
}

func (m *Model) write(text string) {
	m.buffer.WriteString(text)
	m.output.SetContent(m.buffer.String())
	m.output.GotoBottom()
}

// complete runs while the session waits for this line, so reading the
// session state cannot race a command.
func (m *Model) complete() {
	line := m.input.Value()
	candidates := m.shell.Complete(line)

	extended := cmd.Extend(line, candidates)
	if extended == line && len(candidates) > 1 {
		m.write(strings.Join(candidates, "  ") + "\n")
	}
	m.input.SetValue(extended)
	m.input.CursorEnd()
}

func (m *Model) browse(delta int) {
	if len(m.history) == 0 {
		return
	}

	m.recall = min(max(m.recall+delta, 0), len(m.history))
	if m.recall == len(m.history) {
		m.input.SetValue("")
		return
	}
	m.input.SetValue(m.history[m.recall])
	m.input.CursorEnd()
}

func (m *Model) describe() {
	active := m.shell.Active()
	if active == nil {
		return
	}
	m.title = fmt.Sprintf("vshell - %s@%s:%s", active.User, active.Host, active.Pwd())
	m.status = fmt.Sprintf("depth %d", m.shell.Depth())
}

type promptMsg struct {
	prompt string
}

type confirmMsg struct {
	question string
}

type outputMsg string

type doneMsg struct {
	err error
}

// Run drives shell through an alternate screen program until the root
// session terminates or the user quits.
func Run(ctx context.Context, shell Shell, bridge *Bridge, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := NewModel(shell, bridge)
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, opts...)
	program := tea.NewProgram(model, opts...)
	bridge.Attach(program.Send)

	errc := make(chan error, 1)
	go func() {
		err := shell.Run(ctx)
		program.Send(doneMsg{err: err})
		errc <- err
	}()

	_, err := program.Run()
	bridge.Close()
	cancel()

	if runErr := <-errc; runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

package tui

import (
	"io"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

type input struct {
	line string
	err  error
}

// Bridge connects the blocking session loop to the event driven program.
// It serves as the line reader, prompter and output of a shell.
type Bridge struct {
	mu   sync.Mutex
	send func(tea.Msg)

	lines   chan input
	answers chan bool
	done    chan struct{}
	once    sync.Once
}

func NewBridge() *Bridge {
	return &Bridge{
		lines:   make(chan input),
		answers: make(chan bool),
		done:    make(chan struct{}),
	}
}

// Attach sets the function messages are delivered through, usually
// (*tea.Program).Send.
func (b *Bridge) Attach(send func(tea.Msg)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = send
}

// Close releases every pending and future read with io.EOF.
func (b *Bridge) Close() {
	b.once.Do(func() {
		close(b.done)
	})
}

func (b *Bridge) deliver(msg tea.Msg) {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()

	if send != nil {
		send(msg)
	}
}

func (b *Bridge) ReadLine(prompt string) (string, error) {
	select {
	case <-b.done:
		return "", io.EOF
	default:
	}

	b.deliver(promptMsg{prompt: prompt})
	select {
	case in := <-b.lines:
		return in.line, in.err
	case <-b.done:
		return "", io.EOF
	}
}

func (b *Bridge) Confirm(question string) (bool, error) {
	b.deliver(confirmMsg{question: question})
	select {
	case answer := <-b.answers:
		return answer, nil
	case <-b.done:
		return false, io.EOF
	}
}

func (b *Bridge) Write(p []byte) (int, error) {
	b.deliver(outputMsg(string(p)))
	return len(p), nil
}

func (b *Bridge) submit(line string) tea.Cmd {
	return b.push(input{line: line})
}

func (b *Bridge) eof() tea.Cmd {
	return b.push(input{err: io.EOF})
}

func (b *Bridge) push(in input) tea.Cmd {
	return func() tea.Msg {
		select {
		case b.lines <- in:
		case <-b.done:
		}
		return nil
	}
}

func (b *Bridge) answer(value string) tea.Cmd {
	value = strings.ToLower(strings.TrimSpace(value))
	yes := value == "y" || value == "yes"

	return func() tea.Msg {
		select {
		case b.answers <- yes:
		case <-b.done:
		}
		return nil
	}
}

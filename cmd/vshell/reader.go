package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/mwantia/vshell"
	"github.com/mwantia/vshell/cmd"
)

// terminalReader edits lines on a raw terminal. It is also the shell output
// so that writes never tear the line being edited.
type terminalReader struct {
	terminal *term.Terminal
}

func newTerminalReader(in io.Reader, out io.Writer) *terminalReader {
	return &terminalReader{
		terminal: term.NewTerminal(struct {
			io.Reader
			io.Writer
		}{in, out}, ""),
	}
}

func (tr *terminalReader) ReadLine(prompt string) (string, error) {
	tr.terminal.SetPrompt(prompt)

	line, err := tr.terminal.ReadLine()
	if errors.Is(err, term.ErrPasteIndicator) {
		err = nil
	}
	return line, err
}

func (tr *terminalReader) Confirm(question string) (bool, error) {
	line, err := tr.ReadLine(question + " [y/N] ")
	if err != nil {
		return false, err
	}
	return isYes(line), nil
}

func (tr *terminalReader) Write(p []byte) (int, error) {
	return tr.terminal.Write(p)
}

// complete binds tab completion to shell.
func (tr *terminalReader) complete(shell *vshell.Shell) {
	tr.terminal.AutoCompleteCallback = func(line string, pos int, key rune) (string, int, bool) {
		if key != '\t' {
			return "", 0, false
		}

		head := line[:pos]
		candidates := shell.Complete(head)
		extended := cmd.Extend(head, candidates)
		if extended == head && len(candidates) > 1 {
			fmt.Fprintln(tr.terminal, strings.Join(candidates, "  "))
		}
		return extended + line[pos:], len(extended), true
	}
}

// lineReader reads newline separated input without prompting.
type lineReader struct {
	scanner *bufio.Scanner
}

func newLineReader(in io.Reader) *lineReader {
	return &lineReader{scanner: bufio.NewScanner(in)}
}

func (lr *lineReader) ReadLine(prompt string) (string, error) {
	if !lr.scanner.Scan() {
		if err := lr.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return lr.scanner.Text(), nil
}

func (lr *lineReader) Confirm(question string) (bool, error) {
	line, err := lr.ReadLine("")
	if err != nil {
		return false, err
	}
	return isYes(line), nil
}

func isYes(answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

package cmd

import (
	"context"
	"io"

	"github.com/mwantia/vshell/log"
	"github.com/mwantia/vshell/session"
)

// Command represents an executable command within the shell.
type Command interface {
	// Name returns the command identifier
	Name() string

	// Description returns human-readable help text
	Description() string

	// Usage returns a usage string for help (e.g. "ls [path] [-l]")
	Usage() string

	// Execute runs the command with parsed arguments against the session
	// in env. Control flow is reported through the Result; the error is
	// reserved for genuine failures.
	Execute(ctx context.Context, env *Env, args *CommandArgs) (Result, error)

	// GetFlags returns the flag set for this command (this is optional)
	GetFlags() *CommandFlagSet
}

// Aliased is implemented by commands answering to additional verbs.
type Aliased interface {
	Aliases() []string
}

// Mutating is implemented by commands that may change a tree. The
// dispatcher saves the world after such a command when autosave is on.
type Mutating interface {
	Mutates(args *CommandArgs) bool
}

// LineReader supplies input lines. io.EOF ends the reading session.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// Stack is the read-only view of the running session stack.
type Stack interface {
	// Contains reports whether s is currently on the stack.
	Contains(s *session.Context) bool
	// Depth returns the number of sessions on the stack.
	Depth() int
}

// Env is everything a command handler may act on. The session is passed
// explicitly with every call; there is no global current session.
type Env struct {
	Session  *session.Context
	World    *session.World
	Registry *Registry
	Stack    Stack
	Prompter Prompter
	Out      io.Writer
	Log      *log.Logger
	Color    bool
}

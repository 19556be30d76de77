package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	verrors "github.com/mwantia/vshell/data/errors"
	"github.com/mwantia/vshell/metrics"
	"github.com/mwantia/vshell/session"
)

// State of the nesting controller.
type State int

const (
	StateActive     State = iota // The innermost session reads input
	StateNested                  // At least one outer session is suspended
	StateTerminated              // The root session has ended
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateNested:
		return "nested"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// DefaultPrompt is used unless the host configures its own prompt.
// {user}, {host}, {path} and {pwd} are replaced per line.
const DefaultPrompt = "[{user}@{host} {path}] # "

// Controller runs session loops as a call stack. Entering a nested
// session suspends the current loop until the nested one terminates;
// only the innermost session ever reads input.
type Controller struct {
	dispatcher *Dispatcher
	reader     LineReader

	stack []*session.Context
	state State
}

func NewController(dispatcher *Dispatcher, reader LineReader) *Controller {
	return &Controller{
		dispatcher: dispatcher,
		reader:     reader,
	}
}

// Run runs the root session until it terminates, its input ends or ctx
// is cancelled. The controller is Terminated afterwards.
func (c *Controller) Run(ctx context.Context, root *session.Context) error {
	if len(c.stack) > 0 {
		return fmt.Errorf("controller is already running")
	}

	err := c.enter(ctx, root)
	c.state = StateTerminated
	return err
}

// State returns the current controller state.
func (c *Controller) State() State {
	return c.state
}

// Depth returns the number of sessions on the stack.
func (c *Controller) Depth() int {
	return len(c.stack)
}

// Active returns the session currently reading input.
func (c *Controller) Active() *session.Context {
	if len(c.stack) == 0 {
		return nil
	}
	return c.stack[len(c.stack)-1]
}

// Contains reports whether s is currently on the stack.
func (c *Controller) Contains(s *session.Context) bool {
	for _, entry := range c.stack {
		if entry == s {
			return true
		}
	}
	return false
}

func (c *Controller) enter(ctx context.Context, s *session.Context) error {
	if s == nil {
		return verrors.HostNotExist(nil, "")
	}
	if c.Contains(s) {
		return verrors.HostActive(nil, s.Host)
	}

	c.push(s)
	defer c.pop()

	log := c.dispatcher.log
	log.Debug("Entered session %s@%s (%s) at depth %d", s.User, s.Host, s.ID, len(c.stack))
	defer log.Debug("Left session %s@%s (%s)", s.User, s.Host, s.ID)

	if motd := s.Config().String(session.ConfigMotd); motd != "" {
		fmt.Fprintln(c.dispatcher.out, motd)
	}

	return c.loop(ctx, s)
}

func (c *Controller) loop(ctx context.Context, s *session.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := c.reader.ReadLine(Prompt(s))
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		result, _ := c.dispatcher.Dispatch(ctx, s, c, line)
		switch result.Signal {
		case SignalTerminate:
			return nil

		case SignalNest:
			if err := c.enter(ctx, result.Target); err != nil {
				if ctx.Err() != nil {
					return err
				}
				c.dispatcher.report(err)
			}
		}
	}
}

func (c *Controller) push(s *session.Context) {
	c.stack = append(c.stack, s)
	c.update()
}

func (c *Controller) pop() {
	c.stack = c.stack[:len(c.stack)-1]
	c.update()
}

func (c *Controller) update() {
	metrics.SetSessionDepth(len(c.stack))
	if len(c.stack) > 1 {
		c.state = StateNested
	} else {
		c.state = StateActive
	}
}

// Prompt renders the input prompt of s.
func Prompt(s *session.Context) string {
	template := s.Config().String(session.ConfigPrompt)
	if template == "" {
		template = DefaultPrompt
	}

	return strings.NewReplacer(
		"{user}", s.User,
		"{host}", s.Host,
		"{path}", strings.Join(s.Path(), "/"),
		"{pwd}", s.Pwd(),
	).Replace(template)
}

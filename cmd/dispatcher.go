package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"strings"
	"time"

	"github.com/buildkite/shellwords"

	"github.com/mwantia/vshell/data"
	verrors "github.com/mwantia/vshell/data/errors"
	"github.com/mwantia/vshell/log"
	"github.com/mwantia/vshell/metrics"
	"github.com/mwantia/vshell/session"
)

// Dispatcher resolves single input lines into commands and runs them
// against a session. A failing line is reported on the output and never
// ends the session.
type Dispatcher struct {
	registry *Registry
	world    *session.World
	log      *log.Logger
	out      io.Writer
	prompter Prompter
	color    bool
	autosave bool
}

type DispatcherOption func(*Dispatcher)

func WithLogger(logger *log.Logger) DispatcherOption {
	return func(d *Dispatcher) {
		d.log = logger
	}
}

func WithOutput(out io.Writer) DispatcherOption {
	return func(d *Dispatcher) {
		d.out = out
	}
}

func WithPrompter(prompter Prompter) DispatcherOption {
	return func(d *Dispatcher) {
		d.prompter = prompter
	}
}

// WithColor enables styled output for kinds and error labels.
func WithColor(color bool) DispatcherOption {
	return func(d *Dispatcher) {
		d.color = color
	}
}

// WithAutoSave saves the world after every successful mutating command.
func WithAutoSave(autosave bool) DispatcherOption {
	return func(d *Dispatcher) {
		d.autosave = autosave
	}
}

func NewDispatcher(registry *Registry, world *session.World, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		world:    world,
		log:      log.Discard(),
		out:      io.Discard,
	}

	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry commands are resolved from.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// World returns the host registry commands act on.
func (d *Dispatcher) World() *session.World {
	return d.world
}

// Output returns the writer command output goes to.
func (d *Dispatcher) Output() io.Writer {
	return d.out
}

// Dispatch runs one input line against s. The returned error has already
// been reported on the output; it is returned for inspection only.
func (d *Dispatcher) Dispatch(ctx context.Context, s *session.Context, stack Stack, line string) (Result, error) {
	if strings.TrimSpace(line) == "" {
		return Done, nil
	}

	tokens, err := shellwords.SplitPosix(line)
	if err != nil {
		err = verrors.Parse(err, "invalid input")
		metrics.RecordCommand("", metrics.OutcomeParse, 0)
		return Done, d.report(err)
	}
	if len(tokens) == 0 {
		return Done, nil
	}

	verb := tokens[0]
	cmd := d.registry.Resolve(verb)

	if _, miss := cmd.(*MissCommand); miss {
		d.log.Debug("Unknown command '%s'", verb)
		metrics.RecordCommand("", metrics.OutcomeMiss, 0)
		_, err := cmd.Execute(ctx, nil, &CommandArgs{Raw: tokens[1:]})
		return Done, d.report(err)
	}

	args, err := NewParser(cmd.GetFlags()).Parse(tokens[1:])
	if err != nil {
		err = verrors.Parse(err, cmd.Name())
		metrics.RecordCommand(cmd.Name(), metrics.OutcomeParse, 0)
		return Done, d.report(err)
	}

	env := &Env{
		Session:  s,
		World:    d.world,
		Registry: d.registry,
		Stack:    stack,
		Prompter: d.prompter,
		Out:      d.out,
		Log:      d.log.Named(cmd.Name()),
		Color:    d.color,
	}

	start := time.Now()
	result, err := d.execute(ctx, cmd, env, args)
	elapsed := time.Since(start)

	if err != nil {
		if !known(err) {
			err = verrors.CommandFailed(err, cmd.Name())
		}
		d.log.Warn("Command '%s' failed: %v", cmd.Name(), err)
		metrics.RecordCommand(cmd.Name(), metrics.OutcomeError, elapsed)
		return Done, d.report(err)
	}

	metrics.RecordCommand(cmd.Name(), outcome(result.Signal), elapsed)

	if d.autosave && (result.Signal == SignalNone || result.Signal == SignalNest) {
		if mutating, ok := cmd.(Mutating); ok && mutating.Mutates(args) {
			if _, err := d.world.Save(ctx); err != nil && !errors.Is(err, data.ErrNoStore) {
				d.log.Warn("Autosave after '%s' failed: %v", cmd.Name(), err)
				return result, d.report(err)
			}
		}
	}

	return result, nil
}

func (d *Dispatcher) execute(ctx context.Context, cmd Command, env *Env, args *CommandArgs) (result Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("Command '%s' panicked: %v\n%s", cmd.Name(), r, debug.Stack())
			result, err = Done, fmt.Errorf("panic: %v", r)
		}
	}()

	return cmd.Execute(ctx, env, args)
}

// report writes err inline and returns it unchanged.
func (d *Dispatcher) report(err error) error {
	if err != nil {
		fmt.Fprintf(d.out, "%s %v\n", data.RenderError("ERR", d.color), err)
	}
	return err
}

var knownErrors = []error{
	data.ErrParse,
	data.ErrUnknownCommand,
	data.ErrCommandFailed,
	data.ErrNotExist,
	data.ErrIsDirectory,
	data.ErrNotDirectory,
	data.ErrWrongKind,
	data.ErrHostNotExist,
	data.ErrExist,
	data.ErrHostExist,
	data.ErrInvalid,
	data.ErrRootRemoval,
	data.ErrBusy,
	data.ErrHostActive,
	data.ErrCorruptSnapshot,
	data.ErrSnapshotNotExist,
	data.ErrUnknownStore,
	data.ErrNoStore,
}

// known reports whether err belongs to the lookup, collision or
// persistence classes. Everything else is an unexpected failure.
func known(err error) bool {
	for _, target := range knownErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func outcome(signal Signal) string {
	switch signal {
	case SignalContinue:
		return metrics.OutcomeContinue
	case SignalTerminate:
		return metrics.OutcomeTerminate
	case SignalNest:
		return metrics.OutcomeNest
	default:
		return metrics.OutcomeOK
	}
}

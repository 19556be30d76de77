package vshell

import (
	"context"
	"errors"
	"fmt"

	"github.com/mwantia/vshell/cmd"
	"github.com/mwantia/vshell/cmd/builtin"
	"github.com/mwantia/vshell/data"
	"github.com/mwantia/vshell/log"
	"github.com/mwantia/vshell/session"
	"github.com/mwantia/vshell/tree"
)

// Shell wires the host registry, the command registry, the dispatcher and
// the nesting controller into a single runnable shell.
type Shell struct {
	log        *log.Logger
	options    *ShellOptions
	world      *session.World
	registry   *cmd.Registry
	dispatcher *cmd.Dispatcher
	controller *cmd.Controller
}

func NewShell(ctx context.Context, opts ...ShellOption) (*Shell, error) {
	options := newDefaultShellOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	logger := options.Logger
	if logger == nil {
		var logOpts []log.LoggerOption
		if options.LogFile != "" {
			logOpts = append(logOpts, log.WithFile(options.LogFile))
		}
		if options.NoTerminalLog {
			logOpts = append(logOpts, log.WithoutTerminal())
		}
		logger = log.NewLogger("vshell", options.LogLevel, logOpts...)
	}

	world, err := session.NewWorld(logger.Named("world"), options.RootUser, options.RootHost)
	if err != nil {
		return nil, err
	}

	if options.Store != nil {
		if err := options.Store.Open(ctx); err != nil {
			return nil, fmt.Errorf("failed to open %s store: %w", options.Store.Name(), err)
		}
		world.Attach(options.Store, options.Slot)
	}

	commands := append(builtin.Commands(), options.Commands...)
	registry, err := cmd.NewRegistry(commands...)
	if err != nil {
		return nil, err
	}

	dispatcher := cmd.NewDispatcher(registry, world,
		cmd.WithLogger(logger.Named("dispatch")),
		cmd.WithOutput(options.Output),
		cmd.WithPrompter(options.Prompter),
		cmd.WithColor(options.Color),
		cmd.WithAutoSave(options.AutoSave),
	)

	return &Shell{
		log:        logger,
		options:    options,
		world:      world,
		registry:   registry,
		dispatcher: dispatcher,
		controller: cmd.NewController(dispatcher, options.Input),
	}, nil
}

// World returns the host registry.
func (s *Shell) World() *session.World {
	return s.world
}

// Registry returns the command registry.
func (s *Shell) Registry() *cmd.Registry {
	return s.registry
}

// Active returns the session currently reading input, or the root session
// while the shell is not running.
func (s *Shell) Active() *session.Context {
	if active := s.controller.Active(); active != nil {
		return active
	}
	return s.world.Root()
}

// State returns the state of the nesting controller.
func (s *Shell) State() cmd.State {
	return s.controller.State()
}

// Depth returns the number of sessions on the nesting stack.
func (s *Shell) Depth() int {
	return s.controller.Depth()
}

// Prompt renders the prompt of the active session.
func (s *Shell) Prompt() string {
	return cmd.Prompt(s.Active())
}

// Exec dispatches a single line against the active session. Nesting
// requests are returned to the caller instead of being run.
func (s *Shell) Exec(ctx context.Context, line string) (cmd.Result, error) {
	return s.dispatcher.Dispatch(ctx, s.Active(), s.controller, line)
}

// Complete returns completion candidates for line in the active session.
func (s *Shell) Complete(line string) []string {
	return cmd.Complete(s.registry, s.world, s.Active(), line)
}

// Run reads and dispatches input until the root session terminates.
func (s *Shell) Run(ctx context.Context) error {
	if s.options.Input == nil {
		return fmt.Errorf("shell has no input configured")
	}
	return s.controller.Run(ctx, s.world.Root())
}

// Load restores the world from the configured slot. It reports false
// without error when the slot holds no snapshot yet.
func (s *Shell) Load(ctx context.Context) (bool, error) {
	if _, err := s.world.Load(ctx); err != nil {
		if errors.Is(err, data.ErrSnapshotNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Save writes the world into the configured slot.
func (s *Shell) Save(ctx context.Context) error {
	_, err := s.world.Save(ctx)
	return err
}

// Close releases the configured store.
func (s *Shell) Close(ctx context.Context) error {
	if s.options.Store == nil {
		return nil
	}
	return s.options.Store.Close(ctx)
}

// Seed fills the root tree with fn when it holds no nodes yet.
func (s *Shell) Seed(fn func(t *tree.Tree) error) error {
	return session.Seed(s.world.Root(), fn)
}

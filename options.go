package vshell

import (
	"fmt"
	"io"

	"github.com/mwantia/vshell/cmd"
	"github.com/mwantia/vshell/log"
	"github.com/mwantia/vshell/snapshot"
)

type ShellOptions struct {
	Logger        *log.Logger
	LogLevel      log.LogLevel
	LogFile       string
	NoTerminalLog bool

	Store    snapshot.Store
	Slot     string
	AutoSave bool

	RootUser string
	RootHost string

	Prompter cmd.Prompter
	Input    cmd.LineReader
	Output   io.Writer
	Color    bool
	Commands []cmd.Command
}

type ShellOption func(*ShellOptions) error

func newDefaultShellOptions() *ShellOptions {
	return &ShellOptions{
		LogLevel: log.Info,
		Slot:     snapshot.DefaultSlot,
		Output:   io.Discard,
	}
}

func WithLogger(logger *log.Logger) ShellOption {
	return func(opts *ShellOptions) error {
		opts.Logger = logger
		return nil
	}
}

func WithLogLevel(logLevel log.LogLevel) ShellOption {
	return func(opts *ShellOptions) error {
		opts.LogLevel = logLevel
		return nil
	}
}

func WithoutTerminalLog() ShellOption {
	return func(opts *ShellOptions) error {
		opts.NoTerminalLog = true
		return nil
	}
}

func WithLogFile(logFile string) ShellOption {
	return func(opts *ShellOptions) error {
		opts.LogFile = logFile
		return nil
	}
}

// WithStore persists snapshots into store.
func WithStore(store snapshot.Store) ShellOption {
	return func(opts *ShellOptions) error {
		if store == nil {
			return fmt.Errorf("store cannot be nil")
		}
		opts.Store = store
		return nil
	}
}

// WithStoreAddress persists snapshots into the store named by address.
func WithStoreAddress(address string) ShellOption {
	return func(opts *ShellOptions) error {
		store, err := snapshot.ParseAddress(address)
		if err != nil {
			return err
		}
		opts.Store = store
		return nil
	}
}

func WithSlot(slot string) ShellOption {
	return func(opts *ShellOptions) error {
		if slot == "" {
			return fmt.Errorf("slot cannot be empty")
		}
		opts.Slot = slot
		return nil
	}
}

// WithAutoSave saves after every successful mutating command.
func WithAutoSave() ShellOption {
	return func(opts *ShellOptions) error {
		opts.AutoSave = true
		return nil
	}
}

// WithRootHost sets the identity of the root session.
func WithRootHost(user, host string) ShellOption {
	return func(opts *ShellOptions) error {
		opts.RootUser = user
		opts.RootHost = host
		return nil
	}
}

func WithPrompter(prompter cmd.Prompter) ShellOption {
	return func(opts *ShellOptions) error {
		opts.Prompter = prompter
		return nil
	}
}

func WithInput(input cmd.LineReader) ShellOption {
	return func(opts *ShellOptions) error {
		opts.Input = input
		return nil
	}
}

func WithOutput(output io.Writer) ShellOption {
	return func(opts *ShellOptions) error {
		if output == nil {
			return fmt.Errorf("output cannot be nil")
		}
		opts.Output = output
		return nil
	}
}

// WithColor enables styled listings and error labels.
func WithColor() ShellOption {
	return func(opts *ShellOptions) error {
		opts.Color = true
		return nil
	}
}

// WithCommands registers additional commands next to the builtins.
func WithCommands(commands ...cmd.Command) ShellOption {
	return func(opts *ShellOptions) error {
		opts.Commands = append(opts.Commands, commands...)
		return nil
	}
}

package cmd

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mwantia/vshell/data/errors"
)

// Registry maps verbs and aliases to commands. It is built once and not
// changed afterwards.
type Registry struct {
	cmds  map[string]Command
	verbs map[string]Command
}

// NewRegistry creates a registry holding cmds. Verbs and aliases must be
// unique across all commands.
func NewRegistry(cmds ...Command) (*Registry, error) {
	r := &Registry{
		cmds:  make(map[string]Command),
		verbs: make(map[string]Command),
	}

	for _, cmd := range cmds {
		if err := r.register(cmd); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) register(cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("command cannot be nil")
	}

	name := cmd.Name()
	if name == "" || strings.ContainsAny(name, " \t") {
		return fmt.Errorf("invalid command name '%s'", name)
	}

	verbs := []string{name}
	if aliased, ok := cmd.(Aliased); ok {
		verbs = append(verbs, aliased.Aliases()...)
	}
	for _, verb := range verbs {
		if _, exists := r.verbs[verb]; exists {
			return fmt.Errorf("command already registered: %s", verb)
		}
	}

	r.cmds[name] = cmd
	for _, verb := range verbs {
		r.verbs[verb] = cmd
	}
	return nil
}

// Lookup returns the command answering to verb.
func (r *Registry) Lookup(verb string) (Command, bool) {
	cmd, exists := r.verbs[verb]
	return cmd, exists
}

// Resolve returns the command answering to verb, or the miss command.
func (r *Registry) Resolve(verb string) Command {
	if cmd, exists := r.verbs[verb]; exists {
		return cmd
	}
	return &MissCommand{verb: verb}
}

// List returns all commands ordered by name.
func (r *Registry) List() []Command {
	commands := make([]Command, 0, len(r.cmds))
	for _, cmd := range r.cmds {
		commands = append(commands, cmd)
	}

	slices.SortFunc(commands, func(a, b Command) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return commands
}

// Verbs returns every verb and alias in sorted order.
func (r *Registry) Verbs() []string {
	verbs := make([]string, 0, len(r.verbs))
	for verb := range r.verbs {
		verbs = append(verbs, verb)
	}

	slices.Sort(verbs)
	return verbs
}

// MissCommand handles every verb the registry does not know.
type MissCommand struct {
	verb string
}

func (m *MissCommand) Name() string {
	return "none"
}

func (m *MissCommand) Description() string {
	return "Reports an unknown command"
}

func (m *MissCommand) Usage() string {
	return ""
}

func (m *MissCommand) Execute(ctx context.Context, env *Env, args *CommandArgs) (Result, error) {
	return Done, errors.UnknownCommand(nil, m.verb)
}

// Arguments of an unknown verb are never parsed.
func (m *MissCommand) GetFlags() *CommandFlagSet {
	return nil
}

package builtin

import (
	"context"

	"github.com/mwantia/vshell/cmd"
)

type ExitCommand struct {
}

func (*ExitCommand) Name() string {
	return "exit"
}

func (*ExitCommand) Aliases() []string {
	return []string{"quit", "logout"}
}

func (*ExitCommand) Description() string {
	return "Leave the current session"
}

func (*ExitCommand) Usage() string {
	return "exit [-y]"
}

// Execute asks for confirmation unless -y is given or no prompter is
// available. A declined exit continues the session.
func (*ExitCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	if args.Bool("yes") || env.Prompter == nil {
		return cmd.Terminate, nil
	}

	question := "Are you sure you want to leave " + env.Session.Host + "?"
	confirmed, err := env.Prompter.Confirm(question)
	if err != nil {
		return cmd.Done, err
	}
	if !confirmed {
		return cmd.Continue, nil
	}
	return cmd.Terminate, nil
}

func (*ExitCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"yes": {Name: "yes", Short: "y", Type: "bool", Description: "Skip the confirmation"},
		},
	}
}

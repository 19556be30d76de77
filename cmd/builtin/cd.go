package builtin

import (
	"context"

	"github.com/mwantia/vshell/cmd"
	"github.com/mwantia/vshell/session"
)

type CdCommand struct {
}

func (*CdCommand) Name() string {
	return "cd"
}

func (*CdCommand) Description() string {
	return "Change the working directory"
}

func (*CdCommand) Usage() string {
	return "cd [path]"
}

// Execute leaves the working path unchanged when the target is not a directory.
func (*CdCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	return cmd.Done, env.Session.Chdir(args.Arg(0))
}

func (*CdCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Args: []*cmd.CommandArg{
			{Name: "path", Default: session.Home, Description: "Target directory", Complete: cmd.CompleteDirs},
		},
	}
}

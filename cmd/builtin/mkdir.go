package builtin

import (
	"context"

	"github.com/mwantia/vshell/cmd"
	"github.com/mwantia/vshell/data"
)

type MkdirCommand struct {
}

func (*MkdirCommand) Name() string {
	return "mkdir"
}

func (*MkdirCommand) Description() string {
	return "Create a directory"
}

func (*MkdirCommand) Usage() string {
	return "mkdir <name>"
}

func (*MkdirCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	parent, name, err := env.Session.Parent(args.Arg(0))
	if err != nil {
		return cmd.Done, err
	}

	t := env.Session.Tree()
	id, err := t.Add(parent, name, data.KindDirectory, nil)
	if err != nil {
		return cmd.Done, err
	}
	return cmd.Done, t.SetFlags(id, data.AllFlags())
}

func (*MkdirCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Args: []*cmd.CommandArg{
			{Name: "name", Required: true, Description: "Name of the new directory", Complete: cmd.CompleteDirs},
		},
	}
}

func (*MkdirCommand) Mutates(args *cmd.CommandArgs) bool {
	return true
}

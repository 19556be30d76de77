package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/vshell/cmd"
)

type HostnameCommand struct {
}

func (*HostnameCommand) Name() string {
	return "hostname"
}

func (*HostnameCommand) Description() string {
	return "Show or change the host label"
}

func (*HostnameCommand) Usage() string {
	return "hostname [name]"
}

// Execute renames the current host. Labels of other known hosts are rejected.
func (*HostnameCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	name := args.Arg(0)
	if name == "" {
		fmt.Fprintln(env.Out, env.Session.Host)
		return cmd.Done, nil
	}

	return cmd.Done, env.World.Rename(env.Session, name)
}

func (*HostnameCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Args: []*cmd.CommandArg{
			{Name: "name", Description: "New host label"},
		},
	}
}

func (*HostnameCommand) Mutates(args *cmd.CommandArgs) bool {
	return len(args.Args) > 0
}

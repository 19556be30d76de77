package builtin

import (
	"context"

	"github.com/rodaine/table"

	"github.com/mwantia/vshell/cmd"
)

type HostsCommand struct {
}

func (*HostsCommand) Name() string {
	return "hosts"
}

func (*HostsCommand) Description() string {
	return "List known hosts"
}

func (*HostsCommand) Usage() string {
	return "hosts"
}

func (*HostsCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	tbl := table.New("Host", "User", "Nodes", "Session").WithWriter(env.Out)
	for _, c := range env.World.Hosts() {
		state := ""
		switch {
		case c == env.Session:
			state = "current"
		case env.Stack != nil && env.Stack.Contains(c):
			state = "suspended"
		}
		tbl.AddRow(c.Host, c.User, c.Nodes(), state)
	}
	tbl.Print()

	return cmd.Done, nil
}

func (*HostsCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}

package builtin

import (
	"context"

	"github.com/mwantia/vshell/cmd"
	"github.com/mwantia/vshell/data/errors"
)

type SshCommand struct {
}

func (*SshCommand) Name() string {
	return "ssh"
}

func (*SshCommand) Description() string {
	return "Connect to another host"
}

func (*SshCommand) Usage() string {
	return "ssh <host> [-c] [-u user]"
}

// Execute requests a nested session. With -c the host is created first
// and must not exist yet.
func (*SshCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	host := args.Arg(0)

	if args.Bool("create") {
		user := args.String("user")
		if user == "" {
			user = env.Session.User
		}

		target, err := env.World.Create(user, host)
		if err != nil {
			return cmd.Done, err
		}
		env.Log.Info("Created host '%s@%s'", user, host)
		return cmd.Nest(target), nil
	}

	target, ok := env.World.Lookup(host)
	if !ok {
		return cmd.Done, errors.HostNotExist(nil, host)
	}
	if env.Stack != nil && env.Stack.Contains(target) {
		return cmd.Done, errors.HostActive(nil, host)
	}
	return cmd.Nest(target), nil
}

func (*SshCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"create": {Name: "create", Short: "c", Type: "bool", Description: "Create the host"},
			"user":   {Name: "user", Short: "u", Type: "string", Description: "User of a created host"},
		},
		Args: []*cmd.CommandArg{
			{Name: "host", Required: true, Description: "Host label", Complete: cmd.CompleteHosts},
		},
	}
}

func (*SshCommand) Mutates(args *cmd.CommandArgs) bool {
	return args.Bool("create")
}

package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/vshell/cmd"
)

type PwdCommand struct {
}

func (*PwdCommand) Name() string {
	return "pwd"
}

func (*PwdCommand) Description() string {
	return "Print the working directory"
}

func (*PwdCommand) Usage() string {
	return "pwd"
}

func (*PwdCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	fmt.Fprintln(env.Out, env.Session.Pwd())
	return cmd.Done, nil
}

func (*PwdCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}

package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/vshell/cmd"
	"github.com/mwantia/vshell/expr"
)

type EnvCommand struct {
}

func (*EnvCommand) Name() string {
	return "env"
}

func (*EnvCommand) Description() string {
	return "List session variables"
}

func (*EnvCommand) Usage() string {
	return "env"
}

func (*EnvCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	for _, name := range env.Session.Env() {
		value, _ := env.Session.Get(name)
		fmt.Fprintf(env.Out, "%s=%s\n", name, expr.Format(value))
	}
	return cmd.Done, nil
}

func (*EnvCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}

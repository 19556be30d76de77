package builtin

import (
	"context"
	"fmt"

	"github.com/mwantia/vshell/cmd"
)

type SaveCommand struct {
}

func (*SaveCommand) Name() string {
	return "save"
}

func (*SaveCommand) Description() string {
	return "Save every host into the snapshot"
}

func (*SaveCommand) Usage() string {
	return "save"
}

func (*SaveCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	size, err := env.World.Save(ctx)
	if err != nil {
		return cmd.Done, err
	}

	fmt.Fprintf(env.Out, "saved %s into slot '%s'\n", formatSize(int64(size)), env.World.Slot())
	return cmd.Done, nil
}

func (*SaveCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}

type LoadCommand struct {
}

func (*LoadCommand) Name() string {
	return "load"
}

func (*LoadCommand) Description() string {
	return "Restore every host from the snapshot"
}

func (*LoadCommand) Usage() string {
	return "load"
}

func (*LoadCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	size, err := env.World.Load(ctx)
	if err != nil {
		return cmd.Done, err
	}

	fmt.Fprintf(env.Out, "loaded %s from slot '%s'\n", formatSize(int64(size)), env.World.Slot())
	return cmd.Done, nil
}

func (*LoadCommand) GetFlags() *cmd.CommandFlagSet {
	return nil
}

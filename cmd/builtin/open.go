package builtin

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/mwantia/vshell/cmd"
	"github.com/mwantia/vshell/data"
	"github.com/mwantia/vshell/data/errors"
)

type OpenCommand struct {
}

func (*OpenCommand) Name() string {
	return "open"
}

func (*OpenCommand) Aliases() []string {
	return []string{"cat"}
}

func (*OpenCommand) Description() string {
	return "Print the content of a file"
}

func (*OpenCommand) Usage() string {
	return "open <file>"
}

// Execute prints the payload of a leaf. Binary payloads hold JSON and are
// decoded before they are shown.
func (*OpenCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	path := args.Arg(0)

	id, err := env.Session.Lookup(path)
	if err != nil {
		return cmd.Done, err
	}

	info, _ := env.Session.Tree().Node(id)
	if info.IsDir() {
		return cmd.Done, errors.NodeIsDirectory(nil, path)
	}

	if info.Kind != data.KindBinary {
		fmt.Fprintln(env.Out, string(info.Data))
		return cmd.Done, nil
	}

	var value any
	if err := json.Unmarshal(info.Data, &value); err != nil {
		return cmd.Done, fmt.Errorf("cannot decode '%s': %w", path, err)
	}
	formatted, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return cmd.Done, err
	}
	fmt.Fprintln(env.Out, string(formatted))
	return cmd.Done, nil
}

func (*OpenCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Args: []*cmd.CommandArg{
			{Name: "file", Required: true, Description: "File to print", Complete: cmd.CompleteFiles},
		},
	}
}

package builtin

import (
	"context"
	"slices"

	"github.com/mwantia/vshell/cmd"
	"github.com/mwantia/vshell/data"
	"github.com/mwantia/vshell/data/errors"
)

type WriteCommand struct {
}

func (*WriteCommand) Name() string {
	return "write"
}

func (*WriteCommand) Description() string {
	return "Create or overwrite a text file"
}

func (*WriteCommand) Usage() string {
	return "write <file> <text> [-a]"
}

// Execute only ever writes text files; other kinds are rejected.
func (*WriteCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	path, text := args.Arg(0), args.Arg(1)
	t := env.Session.Tree()

	parent, name, err := env.Session.Parent(path)
	if err != nil {
		return cmd.Done, err
	}

	id, exists := t.Lookup(parent, name)
	if !exists {
		id, err := t.Add(parent, name, data.KindText, []byte(text))
		if err != nil {
			return cmd.Done, err
		}
		return cmd.Done, t.SetFlags(id, data.NodeFlags{Readable: true, Writable: true, Visible: true})
	}

	info, _ := t.Node(id)
	if info.Kind != data.KindText {
		return cmd.Done, errors.NodeWrongKind(nil, path, data.KindText)
	}

	payload := []byte(text)
	if args.Bool("append") {
		payload = append(slices.Clip(info.Data), payload...)
	}
	return cmd.Done, t.SetData(id, payload)
}

func (*WriteCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"append": {Name: "append", Short: "a", Type: "bool", Description: "Append instead of overwriting"},
		},
		Args: []*cmd.CommandArg{
			{Name: "file", Required: true, Description: "Text file to write", Complete: cmd.CompleteFiles},
			{Name: "text", Description: "Content to write"},
		},
	}
}

func (*WriteCommand) Mutates(args *cmd.CommandArgs) bool {
	return true
}

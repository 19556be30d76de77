package builtin

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/mwantia/vshell/cmd"
	"github.com/mwantia/vshell/data"
	"github.com/mwantia/vshell/data/errors"
	"github.com/mwantia/vshell/expr"
)

type ExpCommand struct {
}

func (*ExpCommand) Name() string {
	return "exp"
}

func (*ExpCommand) Description() string {
	return "Evaluate an arithmetic expression"
}

func (*ExpCommand) Usage() string {
	return "exp <expression> [-o var] [-f file]"
}

// Execute evaluates against the session environment. The result can be
// stored into a variable and into a binary file holding its JSON form.
func (*ExpCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	s := env.Session

	value, err := expr.Eval(args.Arg(0), s)
	if err != nil {
		return cmd.Done, err
	}
	fmt.Fprintln(env.Out, expr.Format(value))

	if out := args.String("out"); out != "" {
		s.Set(out, value)
	}

	path := args.String("file")
	if path == "" {
		return cmd.Done, nil
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		return cmd.Done, err
	}

	parent, name, err := s.Parent(path)
	if err != nil {
		return cmd.Done, err
	}

	t := s.Tree()
	id, exists := t.Lookup(parent, name)
	if !exists {
		id, err := t.Add(parent, name, data.KindBinary, encoded)
		if err != nil {
			return cmd.Done, err
		}
		return cmd.Done, t.SetFlags(id, data.NodeFlags{Readable: true, Writable: true, Visible: true})
	}

	if kind, _ := t.Kind(id); kind.IsDir() {
		return cmd.Done, errors.NodeIsDirectory(nil, path)
	}
	if err := t.SetKind(id, data.KindBinary); err != nil {
		return cmd.Done, err
	}
	return cmd.Done, t.SetData(id, encoded)
}

func (*ExpCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"out":  {Name: "out", Short: "o", Type: "string", Description: "Store the result in a variable"},
			"file": {Name: "file", Short: "f", Type: "string", Description: "Store the result in a binary file"},
		},
		Args: []*cmd.CommandArg{
			{Name: "expression", Required: true, Description: "Expression to evaluate"},
		},
	}
}

func (*ExpCommand) Mutates(args *cmd.CommandArgs) bool {
	return args.String("file") != ""
}

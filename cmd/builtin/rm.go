package builtin

import (
	"context"

	"github.com/mwantia/vshell/cmd"
	"github.com/mwantia/vshell/data"
	"github.com/mwantia/vshell/data/errors"
)

type RmCommand struct {
}

func (*RmCommand) Name() string {
	return "rm"
}

func (*RmCommand) Description() string {
	return "Remove a file or directory"
}

func (*RmCommand) Usage() string {
	return "rm <path> [-r]"
}

// Execute refuses the root and every directory containing the working
// directory. Directories need -r.
func (*RmCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	path := args.Arg(0)
	s := env.Session
	t := s.Tree()

	id, err := s.Lookup(path)
	if err != nil {
		return cmd.Done, err
	}
	if id == t.Root() {
		return cmd.Done, data.ErrRootRemoval
	}
	if t.IsAncestor(id, s.Cwd()) {
		return cmd.Done, errors.DirectoryBusy(nil, path)
	}

	return cmd.Done, t.Remove(id, args.Bool("recursive"))
}

func (*RmCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"recursive": {Name: "recursive", Short: "r", Type: "bool", Description: "Remove directories and their contents"},
		},
		Args: []*cmd.CommandArg{
			{Name: "path", Required: true, Description: "Node to remove", Complete: cmd.CompleteNodes},
		},
	}
}

func (*RmCommand) Mutates(args *cmd.CommandArgs) bool {
	return true
}

package builtin

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rodaine/table"

	"github.com/mwantia/vshell/cmd"
	"github.com/mwantia/vshell/data/errors"
)

type HelpCommand struct {
}

func (*HelpCommand) Name() string {
	return "help"
}

func (*HelpCommand) Aliases() []string {
	return []string{"?"}
}

func (*HelpCommand) Description() string {
	return "Show available commands"
}

func (*HelpCommand) Usage() string {
	return "help [command]"
}

func (*HelpCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	verb := args.Arg(0)
	if verb == "" {
		tbl := table.New("Command", "Description", "Usage").WithWriter(env.Out)
		for _, c := range env.Registry.List() {
			tbl.AddRow(c.Name(), c.Description(), c.Usage())
		}
		tbl.Print()
		return cmd.Done, nil
	}

	c, ok := env.Registry.Lookup(verb)
	if !ok {
		return cmd.Done, errors.UnknownCommand(nil, verb)
	}

	fmt.Fprintf(env.Out, "%s - %s\n\nUsage: %s\n", c.Name(), c.Description(), c.Usage())
	if aliased, ok := c.(cmd.Aliased); ok {
		fmt.Fprintf(env.Out, "Aliases: %s\n", strings.Join(aliased.Aliases(), ", "))
	}

	flags := c.GetFlags()
	if flags == nil || len(flags.Args)+len(flags.Flags) == 0 {
		return cmd.Done, nil
	}

	fmt.Fprintln(env.Out)
	tbl := table.New("Argument", "Description").WithWriter(env.Out)
	for _, arg := range flags.Args {
		name := "<" + arg.Name + ">"
		if !arg.Required {
			name = "[" + arg.Name + "]"
		}
		tbl.AddRow(name, arg.Description)
	}

	names := make([]string, 0, len(flags.Flags))
	for name := range flags.Flags {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		flag := flags.Flags[name]
		label := "--" + flag.Name
		if flag.Short != "" {
			label = "-" + flag.Short + ", " + label
		}
		tbl.AddRow(label, flag.Description)
	}
	tbl.Print()

	return cmd.Done, nil
}

func (*HelpCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Args: []*cmd.CommandArg{
			{Name: "command", Description: "Command to describe", Complete: cmd.CompleteVerbs},
		},
	}
}

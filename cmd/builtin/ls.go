package builtin

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"

	"github.com/mwantia/vshell/cmd"
	"github.com/mwantia/vshell/data"
	"github.com/mwantia/vshell/tree"
)

type LsCommand struct {
}

func (*LsCommand) Name() string {
	return "ls"
}

func (*LsCommand) Description() string {
	return "List directory contents"
}

func (*LsCommand) Usage() string {
	return "ls [path] [-l] [-a]"
}

// Execute lists directories sorted by kind and name. Children starting
// with a dot are hidden unless -a is given; a named node is always shown.
func (*LsCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	s := env.Session
	t := s.Tree()

	id := s.Cwd()
	if target := args.Arg(0); target != "" {
		var err error
		if id, err = s.Lookup(target); err != nil {
			return cmd.Done, err
		}
	}

	info, _ := t.Node(id)
	visible := []tree.Info{info}
	if info.IsDir() {
		all := args.Bool("all")
		visible = visible[:0]
		for _, entry := range t.Sorted(id) {
			if all || !strings.HasPrefix(entry.Name, ".") {
				visible = append(visible, entry)
			}
		}
	}

	if !args.Bool("long") {
		names := make([]string, 0, len(visible))
		for _, entry := range visible {
			names = append(names, data.Render(entry.Kind, entry.Name, env.Color))
		}
		if len(names) > 0 {
			fmt.Fprintln(env.Out, strings.Join(names, "     "))
		}
		return cmd.Done, nil
	}

	tbl := table.New("Kind", "Name", "Size", "Flags").WithWriter(env.Out).WithWidthFunc(lipgloss.Width)
	for _, entry := range visible {
		size := formatSize(entry.Size)
		if entry.IsDir() {
			size = fmt.Sprintf("%d items", entry.Children)
		}
		tbl.AddRow(entry.Kind, data.Render(entry.Kind, entry.Name, env.Color), size, entry.Flags)
	}
	tbl.Print()

	return cmd.Done, nil
}

func (*LsCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"long": {Name: "long", Short: "l", Type: "bool", Description: "Show kind, size and flags"},
			"all":  {Name: "all", Short: "a", Type: "bool", Description: "Include hidden nodes"},
		},
		Args: []*cmd.CommandArg{
			{Name: "path", Description: "Directory or file to list", Complete: cmd.CompleteNodes},
		},
	}
}

func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

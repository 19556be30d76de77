package builtin

import (
	"context"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/mwantia/vshell/cmd"
	"github.com/mwantia/vshell/data/errors"
	"github.com/mwantia/vshell/session"
)

type ConfigCommand struct {
}

func (*ConfigCommand) Name() string {
	return "config"
}

func (*ConfigCommand) Description() string {
	return "Show or change host settings"
}

func (*ConfigCommand) Usage() string {
	return "config [key] [value] [-d]"
}

// Execute lists all settings, prints one, sets one or deletes one. Values
// are parsed as JSON and fall back to plain strings.
func (*ConfigCommand) Execute(ctx context.Context, env *cmd.Env, args *cmd.CommandArgs) (cmd.Result, error) {
	config := env.Session.Config()
	key, raw := args.Arg(0), args.Arg(1)

	switch {
	case key == "":
		for _, k := range config.Keys() {
			v, _ := config.Get(k)
			fmt.Fprintf(env.Out, "%s=%s\n", k, encode(v))
		}
		return cmd.Done, nil

	case args.Bool("delete"):
		if !config.Delete(key) {
			return cmd.Done, errors.NodeNotExist(nil, session.ConfigName+"/"+key)
		}
		return cmd.Done, config.Flush()

	case len(args.Args) < 2:
		v, ok := config.Get(key)
		if !ok {
			return cmd.Done, errors.NodeNotExist(nil, session.ConfigName+"/"+key)
		}
		fmt.Fprintln(env.Out, encode(v))
		return cmd.Done, nil
	}

	var value any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		value = raw
	}
	config.Set(key, value)
	return cmd.Done, config.Flush()
}

func (*ConfigCommand) GetFlags() *cmd.CommandFlagSet {
	return &cmd.CommandFlagSet{
		Flags: map[string]*cmd.CommandFlag{
			"delete": {Name: "delete", Short: "d", Type: "bool", Description: "Delete the key"},
		},
		Args: []*cmd.CommandArg{
			{Name: "key", Description: "Setting to show or change"},
			{Name: "value", Description: "New value"},
		},
	}
}

func (*ConfigCommand) Mutates(args *cmd.CommandArgs) bool {
	return len(args.Args) > 1 || args.Bool("delete")
}

func encode(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	encoded, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(encoded)
}

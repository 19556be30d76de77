// Package builtin holds the commands every shell registers.
package builtin

import (
	"github.com/mwantia/vshell/cmd"
)

// Commands returns a fresh instance of every builtin command.
func Commands() []cmd.Command {
	return []cmd.Command{
		&PwdCommand{},
		&LsCommand{},
		&CdCommand{},
		&MkdirCommand{},
		&OpenCommand{},
		&WriteCommand{},
		&RmCommand{},
		&ExpCommand{},
		&EnvCommand{},
		&ConfigCommand{},
		&HostnameCommand{},
		&HostsCommand{},
		&SshCommand{},
		&SaveCommand{},
		&LoadCommand{},
		&HelpCommand{},
		&ExitCommand{},
	}
}

// NewRegistry creates a registry holding every builtin command.
func NewRegistry() (*cmd.Registry, error) {
	return cmd.NewRegistry(Commands()...)
}

package cmd

import "time"

// CommandArgs contains parsed command arguments
type CommandArgs struct {
	// Positional arguments, defaults already applied
	Args []string

	// Parsed flags
	Flags map[string]any

	// Raw unparsed arguments (for custom parsing)
	Raw []string
}

// CommandFlagSet defines the expected flags and positional arguments
type CommandFlagSet struct {
	Flags map[string]*CommandFlag
	Args  []*CommandArg
}

// CommandFlag represents a single command-line flag
type CommandFlag struct {
	Name        string `json:"name"`              // e.g., "recursive"
	Short       string `json:"short"`             // Single-char shorthand (e.g., "r")
	Type        string `json:"type"`              // "string", "bool", "int", "duration"
	Default     any    `json:"default,omitempty"` // Default value
	Required    bool   `json:"required"`          // Must be provided
	Description string `json:"description"`       // Help text
}

// CommandArg represents a single positional argument
type CommandArg struct {
	Name        string     `json:"name"`
	Default     string     `json:"default,omitempty"`
	Required    bool       `json:"required"`
	Description string     `json:"description"`
	Complete    Completion `json:"complete"`
}

// Completion selects the candidates offered for a positional argument.
type Completion int

const (
	CompleteNone  Completion = iota
	CompleteDirs             // Directories below the working path
	CompleteFiles            // Leaf nodes below the working path
	CompleteNodes            // Every node below the working path
	CompleteHosts            // Known host labels
	CompleteVerbs            // Registered verbs
)

// Arg returns the positional argument at i or an empty string.
func (a *CommandArgs) Arg(i int) string {
	if i < 0 || i >= len(a.Args) {
		return ""
	}
	return a.Args[i]
}

// String returns a string flag.
func (a *CommandArgs) String(name string) string {
	v, _ := a.Flags[name].(string)
	return v
}

// Bool returns a boolean flag.
func (a *CommandArgs) Bool(name string) bool {
	v, _ := a.Flags[name].(bool)
	return v
}

// Int returns an integer flag.
func (a *CommandArgs) Int(name string) int64 {
	switch v := a.Flags[name].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	}
	return 0
}

// Duration returns a duration flag.
func (a *CommandArgs) Duration(name string) time.Duration {
	v, _ := a.Flags[name].(time.Duration)
	return v
}

// Has reports whether a flag carries a value, either given or defaulted.
func (a *CommandArgs) Has(name string) bool {
	_, ok := a.Flags[name]
	return ok
}

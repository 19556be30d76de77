package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Parser parses user-defined arguments into flags and positional arguments
type Parser struct {
	flagSet *CommandFlagSet
}

func NewParser(flagSet *CommandFlagSet) *Parser {
	if flagSet == nil {
		flagSet = &CommandFlagSet{}
	}
	return &Parser{
		flagSet: flagSet,
	}
}

func (cp *Parser) Parse(raw []string) (*CommandArgs, error) {
	args := &CommandArgs{
		Flags: make(map[string]any),
		Raw:   raw,
	}

	for flagName, flag := range cp.flagSet.Flags {
		if flag.Default != nil {
			args.Flags[flagName] = flag.Default
		}
	}

	longToName := make(map[string]string)
	shortToName := make(map[string]string)
	for flagName, flag := range cp.flagSet.Flags {
		longToName[flag.Name] = flagName
		if flag.Short != "" {
			shortToName[flag.Short] = flagName
		}
	}

	var positional []string
	for i := 0; i < len(raw); i++ {
		arg := raw[i]

		if arg == "--" {
			positional = append(positional, raw[i+1:]...)
			break
		}

		if strings.HasPrefix(arg, "--") {
			key, value, hasValue := parseLongFlag(arg)
			flagName, exists := longToName[key]
			if !exists {
				return nil, fmt.Errorf("unknown flag: --%s", key)
			}

			flag := cp.flagSet.Flags[flagName]
			if flag.Type == "bool" && !hasValue {
				args.Flags[flagName] = true
				continue
			}
			if !hasValue {
				if i+1 >= len(raw) || isFlag(raw[i+1]) {
					return nil, fmt.Errorf("flag --%s requires a value", key)
				}
				value = raw[i+1]
				i++
			}

			v, err := coerce(value, flag.Type)
			if err != nil {
				return nil, fmt.Errorf("flag --%s: %w", key, err)
			}
			args.Flags[flagName] = v
			continue
		}

		if isFlag(arg) {
			shortFlags := arg[1:]

			for j, shortChar := range shortFlags {
				shortStr := string(shortChar)
				flagName, exists := shortToName[shortStr]
				if !exists {
					return nil, fmt.Errorf("unknown flag: -%s", shortStr)
				}

				flag := cp.flagSet.Flags[flagName]
				if flag.Type == "bool" {
					args.Flags[flagName] = true
					continue
				}

				var value string
				if j+1 < len(shortFlags) {
					value = shortFlags[j+1:]
				} else if i+1 < len(raw) && !isFlag(raw[i+1]) {
					value = raw[i+1]
					i++
				} else {
					return nil, fmt.Errorf("flag -%s requires a value", shortStr)
				}

				v, err := coerce(value, flag.Type)
				if err != nil {
					return nil, fmt.Errorf("flag -%s: %w", shortStr, err)
				}
				args.Flags[flagName] = v
				break
			}
			continue
		}

		positional = append(positional, arg)
	}

	for flagName, flag := range cp.flagSet.Flags {
		if flag.Required {
			if _, ok := args.Flags[flagName]; !ok {
				if flag.Short != "" {
					return nil, fmt.Errorf("required flag: -%s / --%s", flag.Short, flag.Name)
				} else {
					return nil, fmt.Errorf("required flag: --%s", flag.Name)
				}
			}
		}
	}

	if len(positional) > len(cp.flagSet.Args) {
		return nil, fmt.Errorf("unexpected argument: %s", positional[len(cp.flagSet.Args)])
	}
	for i, spec := range cp.flagSet.Args {
		switch {
		case i < len(positional):
			args.Args = append(args.Args, positional[i])
		case spec.Required:
			return nil, fmt.Errorf("missing argument: <%s>", spec.Name)
		case spec.Default != "":
			args.Args = append(args.Args, spec.Default)
		}
	}

	return args, nil
}

// isFlag reports whether arg looks like a short flag. A dash followed by
// anything but a letter is taken as a positional value such as "-1".
func isFlag(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	if strings.HasPrefix(arg, "--") {
		return len(arg) > 2
	}
	return unicode.IsLetter(rune(arg[1]))
}

func parseLongFlag(arg string) (key, value string, hasValue bool) {
	arg = strings.TrimPrefix(arg, "--")
	if idx := strings.Index(arg, "="); idx >= 0 {
		return arg[:idx], arg[idx+1:], true
	}
	return arg, "", false
}

func coerce(value string, typeStr string) (any, error) {
	switch typeStr {
	case "int":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer '%s'", value)
		}
		return v, nil
	case "bool":
		v, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean '%s'", value)
		}
		return v, nil
	case "duration":
		v, err := time.ParseDuration(value)
		if err != nil {
			if n, nerr := strconv.ParseInt(value, 10, 64); nerr == nil {
				return time.Duration(n) * time.Second, nil
			}
			return nil, fmt.Errorf("invalid duration '%s'", value)
		}
		return v, nil
	default:
		return value, nil
	}
}

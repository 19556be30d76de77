package errors

import "github.com/mwantia/vshell/data"

func Parse(err error, verb string) error {
	return newError(data.ErrParse, err, "%s", verb)
}

func UnknownCommand(err error, verb string) error {
	return newError(data.ErrUnknownCommand, err, "'%s'", verb)
}

func CommandFailed(err error, verb string) error {
	return newError(data.ErrCommandFailed, err, "%s", verb)
}

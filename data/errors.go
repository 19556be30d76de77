package data

import "errors"

// Standard shell errors that commands and stores should use.
var (
	// Dispatch errors
	ErrParse          = errors.New("vshell: parse error")
	ErrUnknownCommand = errors.New("vshell: command not found")
	ErrCommandFailed  = errors.New("vshell: command failed")

	// Lookup errors
	ErrNotExist     = errors.New("vshell: file does not exist")
	ErrIsDirectory  = errors.New("vshell: is a directory")
	ErrNotDirectory = errors.New("vshell: not a directory")
	ErrWrongKind    = errors.New("vshell: wrong file kind")
	ErrHostNotExist = errors.New("vshell: host does not exist")

	// Collision errors
	ErrExist     = errors.New("vshell: file already exists")
	ErrHostExist = errors.New("vshell: host already exists")

	// Mutation guards
	ErrInvalid     = errors.New("vshell: invalid argument")
	ErrRootRemoval = errors.New("vshell: root cannot be removed")
	ErrBusy        = errors.New("vshell: directory in use")
	ErrHostActive  = errors.New("vshell: host already connected")

	// Persistence errors
	ErrCorruptSnapshot  = errors.New("vshell: corrupt snapshot")
	ErrSnapshotNotExist = errors.New("vshell: snapshot does not exist")
	ErrUnknownStore     = errors.New("vshell: unknown store address")
	ErrNoStore          = errors.New("vshell: no store configured")
)

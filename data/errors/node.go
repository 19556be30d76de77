package errors

import "github.com/mwantia/vshell/data"

func NodeNotExist(err error, path string) error {
	return newError(data.ErrNotExist, err, "'%s'", path)
}

func NodeExist(err error, name string) error {
	return newError(data.ErrExist, err, "'%s'", name)
}

func NodeIsDirectory(err error, path string) error {
	return newError(data.ErrIsDirectory, err, "'%s'", path)
}

func NodeNotDirectory(err error, path string) error {
	return newError(data.ErrNotDirectory, err, "'%s'", path)
}

func NodeWrongKind(err error, path string, want data.NodeKind) error {
	return newError(data.ErrWrongKind, err, "'%s' is not of kind %s", path, want)
}

func InvalidName(err error, name string) error {
	return newError(data.ErrInvalid, err, "invalid name '%s'", name)
}

func DirectoryBusy(err error, path string) error {
	return newError(data.ErrBusy, err, "'%s' contains the working directory", path)
}

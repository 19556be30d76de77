package errors

import "github.com/mwantia/vshell/data"

func HostNotExist(err error, host string) error {
	return newError(data.ErrHostNotExist, err, "'%s'", host)
}

func HostExist(err error, host string) error {
	return newError(data.ErrHostExist, err, "'%s'", host)
}

func HostActive(err error, host string) error {
	return newError(data.ErrHostActive, err, "'%s'", host)
}

func SnapshotNotExist(err error, slot string) error {
	return newError(data.ErrSnapshotNotExist, err, "slot '%s'", slot)
}

func CorruptSnapshot(err error, format string, args ...any) error {
	return newError(data.ErrCorruptSnapshot, err, format, args...)
}

func UnknownStore(err error, address string) error {
	return newError(data.ErrUnknownStore, err, "'%s'", address)
}

package errors

import (
	"fmt"
)

func newError(sentinel error, err error, format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", sentinel, text, err)
	}

	return fmt.Errorf("%w: %s", sentinel, text)
}

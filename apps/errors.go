package apps

import "github.com/pkg/errors"

// ArgumentError reports a missing or malformed command line argument.
type ArgumentError struct {
	msg string
}

func NewArgumentError(msg string) error {
	return &ArgumentError{msg}
}

func (err *ArgumentError) Error() string {
	return err.msg
}

func IsArgumentError(err error) bool {
	_, ok := errors.Cause(err).(*ArgumentError)
	return ok
}

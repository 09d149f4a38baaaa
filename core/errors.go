package core

import (
	"fmt"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// UpstreamError is returned when the DTRACS backend answers with a non-2xx status.
type UpstreamError struct {
	Status  int
	Message string
}

func NewUpstreamError(status int, msg string) error {
	return &UpstreamError{Status: status, Message: msg}
}

func (err UpstreamError) Error() string {
	if err.Message == "" {
		return fmt.Sprintf("upstream responded with status %d", err.Status)
	}
	return fmt.Sprintf("upstream responded with status %d: %s", err.Status, err.Message)
}

func IsUpstream(err error) bool {
	_, ok := errors.Cause(err).(*UpstreamError)
	return ok
}

// UnavailableError is returned when a resource the caller asked for could not be loaded
// from the backend. Clients may retry.
type UnavailableError struct {
	Resource string
	Err      error
}

func NewUnavailableError(resource string, err error) error {
	return &UnavailableError{Resource: resource, Err: err}
}

func (err UnavailableError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", err.Resource, err.Err)
}

func (err UnavailableError) Cause() error { return err.Err }

func IsUnavailable(err error) bool {
	for err != nil {
		if _, ok := err.(*UnavailableError); ok {
			return true
		}
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			return false
		}
		err = cause.Cause()
	}
	return false
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}

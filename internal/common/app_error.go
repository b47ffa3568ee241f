package common

import (
	"errors"
	"fmt"

	"skylane/concourse/internal/constants"
)

// AppError carries a stable kind alongside a human readable message.
// The booking core returns these instead of raw transport errors; the
// HTTP layer maps Kind to a status code.
type AppError struct {
	Kind    constants.ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// NewError builds an AppError with a formatted message.
func NewError(kind constants.ErrorKind, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WrapError attaches a kind and message to an underlying cause.
func WrapError(kind constants.ErrorKind, err error, format string, args ...interface{}) *AppError {
	return &AppError{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the error kind, defaulting to Internal for plain errors.
func KindOf(err error) constants.ErrorKind {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return constants.KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind constants.ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

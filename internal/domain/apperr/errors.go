// Package apperr holds the error kinds shared by every domain package.
//
// Domain packages declare their own sentinels on top of these kinds, so
// callers can match either the specific error (classes.ErrClassNotFound)
// or the kind (apperr.ErrNotFound) with errors.Is.
package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("store unavailable")
)

type Error struct {
	Kind    error
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Kind != nil {
		msg = e.Kind.Error()
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

func Invalid(field, message string) *Error {
	return &Error{Kind: ErrValidation, Field: field, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

// Unavailable wraps an infrastructural store failure. The cause is kept for
// logging only; it is never shown to API callers.
func Unavailable(cause error) *Error {
	return &Error{Kind: ErrUnavailable, Message: "store unavailable", Cause: cause}
}

// Public is the message safe to show to an API caller.
func Public(err error) (kind error, field, message string) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return nil, "", ""
	}
	if appErr.Kind == ErrUnavailable {
		return appErr.Kind, "", "service temporarily unavailable"
	}
	message = appErr.Message
	if message == "" && appErr.Kind != nil {
		message = appErr.Kind.Error()
	}
	return appErr.Kind, appErr.Field, message
}

func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

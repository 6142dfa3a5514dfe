package service

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package wraps exactly one of them.
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrAuthFailed   = errors.New("authentication failed")
	ErrInconsistent = errors.New("internal inconsistency")
)

// Error carries a kind, a machine readable code and a message safe to show to clients.
type Error struct {
	Kind    error
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, code, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

func notFound(code, format string, args ...interface{}) error {
	return newError(ErrNotFound, code, format, args...)
}

func invalid(code, format string, args ...interface{}) error {
	return newError(ErrValidation, code, format, args...)
}

// Code returns the machine readable code of err, or "INTERNAL_ERROR".
func Code(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "INTERNAL_ERROR"
}

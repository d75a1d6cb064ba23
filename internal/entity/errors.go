package entity

import (
	"errors"
	"fmt"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrHasDependents = errors.New("has dependents")
)

// Error carries a caller-facing message alongside one of the sentinel kinds.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func NewError(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func NotFound(what string) error {
	return NewError(ErrNotFound, "%s not found", what)
}

func Forbidden(format string, args ...interface{}) error {
	return NewError(ErrForbidden, format, args...)
}

func Invalid(format string, args ...interface{}) error {
	return NewError(ErrValidation, format, args...)
}

func Conflict(format string, args ...interface{}) error {
	return NewError(ErrConflict, format, args...)
}

// Package apperr carries the business error kinds the service layer maps to
// HTTP statuses: NotFound -> 404, InvalidData/InvalidOperation -> 400,
// anything else -> 500.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	NotFound Kind = iota
	InvalidData
	InvalidOperation
	Unavailable
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case InvalidData:
		return "InvalidData"
	case InvalidOperation:
		return "InvalidOperation"
	case Unavailable:
		return "Unavailable"
	}
	return "Unknown"
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an underlying error, keeping it reachable
// through errors.Unwrap.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err if it is (or wraps) an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

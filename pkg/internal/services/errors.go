package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies operation failures for the transport layer. Caller
// mistakes (not found, forbidden, validation, invalid operation) surface
// immediately and are never retried here; dependency failures mark a broken
// collaborator or entity-store write.
type ErrorKind string

const (
	KindNotFound         ErrorKind = "not_found"
	KindForbidden        ErrorKind = "forbidden"
	KindValidation       ErrorKind = "validation"
	KindInvalidOperation ErrorKind = "invalid_operation"
	KindDependency       ErrorKind = "dependency"
)

type OpError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *OpError) Unwrap() error { return e.Err }

func newError(kind ErrorKind, format string, args ...any) *OpError {
	return &OpError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapDependency(message string, err error) *OpError {
	return &OpError{Kind: KindDependency, Message: message, Err: err}
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var op *OpError
	if errors.As(err, &op) {
		return op.Kind == kind
	}
	return false
}

// Kind returns the classification of err, defaulting to a dependency failure
// for errors that did not originate in this package.
func Kind(err error) ErrorKind {
	var op *OpError
	if errors.As(err, &op) {
		return op.Kind
	}
	return KindDependency
}

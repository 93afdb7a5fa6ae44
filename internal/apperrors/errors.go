// Package apperrors defines the failure taxonomy shared by the service
// layers and the error-translation middleware. Every domain-level failure
// carries an explicit Kind decided where the failure is raised, so the
// middleware never has to guess from the error's concrete type.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for HTTP translation.
type Kind int

const (
	// KindInternal is the default for anything unclassified, including
	// backend and connectivity failures.
	KindInternal Kind = iota
	// KindValidation marks malformed or out-of-constraint input.
	KindValidation
	// KindNotFound marks a missing record for a given key.
	KindNotFound
	// KindForbidden marks a caller lacking permission.
	KindForbidden
)

// String returns the human-readable label for the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not found"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error is a failure tagged with its classification kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error // optional underlying cause
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a validation-kind failure.
func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound creates a not-found-kind failure.
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Forbidden creates a forbidden-kind failure.
func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Internal wraps an unclassified failure.
func Internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the classification of err, walking the wrap chain.
// Errors that carry no tag classify as KindInternal.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

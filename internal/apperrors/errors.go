// Package apperrors defines the error taxonomy surfaced by the core
// services. Handlers map each kind to an HTTP status; callers test kinds
// with the Is* helpers rather than string matching.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an application error
type Kind int

const (
	// KindValidation marks malformed input: bad length, missing field,
	// cross-entity references that do not line up.
	KindValidation Kind = iota
	// KindNotFound marks a referenced entity that does not exist.
	KindNotFound
	// KindAuthorization marks an actor lacking permission for a mutation.
	KindAuthorization
	// KindInvalidState marks an operation that is not legal in the
	// entity's current lifecycle state.
	KindInvalidState
)

// Error is a classified application error
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Validation returns a KindValidation error
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound returns a KindNotFound error
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Authorization returns a KindAuthorization error
func Authorization(format string, args ...any) *Error {
	return &Error{Kind: KindAuthorization, Message: fmt.Sprintf(format, args...)}
}

// InvalidState returns a KindInvalidState error
func InvalidState(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool { return is(err, KindValidation) }

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool { return is(err, KindNotFound) }

// IsAuthorization reports whether err is an authorization error
func IsAuthorization(err error) bool { return is(err, KindAuthorization) }

// IsInvalidState reports whether err is an invalid-state error
func IsInvalidState(err error) bool { return is(err, KindInvalidState) }

// Package apperr defines the error taxonomy shared across the plugin.
// Handlers map these kinds onto HTTP statuses; anything that is not an
// *apperr.Error is treated as KindUnknown at the API boundary.
package apperr

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindValidation
	KindUnexpectedValue
	KindNotEnabled
)

type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// NotFound reports a missing entity by its kind and natural key.
func NotFound(entity, key string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("no %s with key %s found", entity, key),
	}
}

// Validation reports malformed input naming the offending field.
func Validation(field, details string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: fmt.Sprintf("invalid %s: %s", field, details),
	}
}

// Unexpected reports a value outside the expected domain.
func Unexpected(details string) *Error {
	return &Error{
		Kind:    KindUnexpectedValue,
		Message: "unexpected value: " + details,
	}
}

// NotEnabled reports an operation the external service refuses to serve.
func NotEnabled() *Error {
	return &Error{
		Kind:    KindNotEnabled,
		Message: "operation not enabled",
	}
}

// Unknown wraps an uncontrolled failure.
func Unknown(details string, cause error) *Error {
	return &Error{
		Kind:    KindUnknown,
		Message: details,
		cause:   cause,
	}
}

// KindOf classifies any error; non-taxonomy errors are KindUnknown.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

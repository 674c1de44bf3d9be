package models

import (
	"errors"
	"fmt"
)

// ErrorType identifies the category of error that occurred.
type ErrorType string

const (
	// Caller-supplied parameters outside the legal domain
	ErrValidation ErrorType = "validation_error"

	// Request could not be decoded
	ErrInvalidRequest ErrorType = "invalid_request"

	// Transport
	ErrNotFound    ErrorType = "not_found"
	ErrRateLimited ErrorType = "rate_limited"

	// Catch-all
	ErrInternalError ErrorType = "internal_error"
)

// ErrInternal marks failures inside trial execution that are not caused by the
// caller's parameters. Wrapped errors keep their cause.
var ErrInternal = errors.New("internal simulation error")

// ValidationError reports a parameter outside the accepted range. Message is the
// untranslated catalog key (a format string when Args is set); the i18n package
// renders it per locale.
type ValidationError struct {
	Field   string
	Message string
	Args    []any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, fmt.Sprintf(e.Message, e.Args...))
}

// Type returns the error category.
func (e *ValidationError) Type() ErrorType {
	return ErrValidation
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

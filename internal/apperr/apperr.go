// Package apperr defines the error kinds shared by the repository and the HTTP
// layer. Data-access code returns *Error values; the api package translates
// them into status codes and JSON bodies in one place.
package apperr

import (
	"errors"
	"net/http"
)

// Kind classifies an error for translation to an HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindRateLimited
)

// Error is the typed error returned across package boundaries.
type Error struct {
	Kind    Kind
	Message string
	// Details holds per-field messages for validation failures.
	Details []string
	Err     error
}

func (e *Error) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func BadRequest(message string, details ...string) *Error {
	return &Error{Kind: KindValidation, Message: message, Details: details}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Unauthorized(message string) *Error {
	if message == "" {
		message = http.StatusText(http.StatusUnauthorized)
	}
	return &Error{Kind: KindUnauthorized, Message: message}
}

func TooManyRequests() *Error {
	return &Error{Kind: KindRateLimited, Message: http.StatusText(http.StatusTooManyRequests)}
}

// Wrap marks err as an unhandled internal failure.
func Wrap(err error, message string) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// Status maps err to an HTTP status code.
func Status(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

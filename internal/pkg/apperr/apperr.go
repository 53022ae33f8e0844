// Package apperr defines the error kinds shared by every HomeKeeper service.
//
// A kind says how the caller should react (fix input, authenticate, give up);
// the message is the short, client-safe text rendered in the HTTP response.
package apperr

import "errors"

var (
	ErrAuth            = errors.New("unauthorized")
	ErrValidation      = errors.New("validation error")
	ErrNotFound        = errors.New("not found")
	ErrUpstream        = errors.New("upstream error")
	ErrWebhookDelivery = errors.New("webhook delivery error")
)

// Error pairs a kind with a client-facing message and an optional cause.
type Error struct {
	kind    error
	message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

// Message is the text safe to show to API clients.
func (e *Error) Message() string { return e.message }

func (e *Error) Unwrap() []error {
	if e.cause == nil {
		return []error{e.kind}
	}
	return []error{e.kind, e.cause}
}

func Auth(message string) error       { return &Error{kind: ErrAuth, message: message} }
func Validation(message string) error { return &Error{kind: ErrValidation, message: message} }
func NotFound(message string) error   { return &Error{kind: ErrNotFound, message: message} }

func Upstream(cause error, message string) error {
	return &Error{kind: ErrUpstream, message: message, cause: cause}
}

func WebhookDelivery(cause error, message string) error {
	return &Error{kind: ErrWebhookDelivery, message: message, cause: cause}
}

// Message extracts the client-facing message, falling back when err carries none.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.message != "" {
		return e.message
	}
	return fallback
}

// Package errors classifies web failures and maps them to HTTP responses.
package errors

import (
	stderrors "errors"
	"net/http"

	"github.com/louisbranch/injuryrisk/internal/prediction"
)

// Kind classifies application failures for consistent HTTP mapping.
type Kind string

const (
	KindUnknown      Kind = "unknown"
	KindInvalidInput Kind = "invalid_input"
	KindTooLarge     Kind = "too_large"
	KindConflict     Kind = "conflict"
	KindUnavailable  Kind = "unavailable"
	KindNotFound     Kind = "not_found"
)

// Error is a typed web failure. Message is safe to show to clients; Cause is
// kept for logs only.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error renders the client-safe message.
func (e Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

// Unwrap exposes the cause.
func (e Error) Unwrap() error {
	return e.Cause
}

// E builds a typed Error.
func E(kind Kind, message string) error {
	return Error{Kind: kind, Message: message}
}

// Wrap builds a typed Error around cause.
func Wrap(kind Kind, message string, cause error) error {
	return Error{Kind: kind, Message: message, Cause: cause}
}

// FormBody classifies a request body parse failure.
func FormBody(err error) error {
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return Wrap(KindTooLarge, "form body too large", err)
	}
	return Wrap(KindInvalidInput, "invalid form body", err)
}

// HTTPStatus maps an error to an HTTP status code.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var appErr Error
	if stderrors.As(err, &appErr) {
		return kindStatus(appErr.Kind)
	}
	switch {
	case stderrors.Is(err, prediction.ErrSubmissionInFlight):
		return http.StatusConflict
	case stderrors.Is(err, prediction.ErrUnknownField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns text that may be sent to clients. Untyped internal
// failures collapse to the status text.
func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr Error
	if stderrors.As(err, &appErr) {
		return appErr.Error()
	}
	switch {
	case stderrors.Is(err, prediction.ErrSubmissionInFlight):
		return prediction.ErrSubmissionInFlight.Error()
	case stderrors.Is(err, prediction.ErrUnknownField):
		return prediction.ErrUnknownField.Error()
	default:
		return http.StatusText(HTTPStatus(err))
	}
}

func kindStatus(kind Kind) int {
	switch kind {
	case KindInvalidInput:
		return http.StatusBadRequest
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindConflict:
		return http.StatusConflict
	case KindUnavailable:
		return http.StatusServiceUnavailable
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

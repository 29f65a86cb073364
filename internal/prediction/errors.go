package prediction

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSubmissionInFlight is returned when Submit is called while a request is pending.
var ErrSubmissionInFlight = errors.New("prediction submission already in flight")

// Kind classifies why a submission attempt failed.
type Kind string

const (
	KindValidation        Kind = "validation"
	KindTransport         Kind = "transport"
	KindServer            Kind = "server"
	KindMalformedResponse Kind = "malformed_response"
)

const (
	validationMessage  = "Please fill all fields with valid values."
	failurePrefix      = "Failed to get prediction: "
	unknownDescription = "Unknown error"
)

// Error is a typed submission failure.
type Error struct {
	Kind Kind
	// StatusCode is the HTTP status for KindServer, zero otherwise.
	StatusCode int
	Cause      error
}

// Error renders the diagnostic description.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case KindValidation:
		return validationMessage
	case KindServer:
		return fmt.Sprintf("API error: %d", e.StatusCode)
	case KindMalformedResponse:
		if desc := causeDescription(e.Cause); desc != "" {
			return "malformed response: " + desc
		}
		return "malformed response"
	default:
		return causeDescription(e.Cause)
	}
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Message returns the user-facing text shown by the view.
func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	if e.Kind == KindValidation {
		return validationMessage
	}
	desc := strings.TrimSpace(e.Error())
	if desc == "" {
		desc = unknownDescription
	}
	return failurePrefix + desc
}

// ValidationError builds the local incomplete-input failure.
func ValidationError() *Error {
	return &Error{Kind: KindValidation}
}

// ServerError builds a non-success status failure.
func ServerError(statusCode int) *Error {
	return &Error{Kind: KindServer, StatusCode: statusCode}
}

// TransportError builds a failure for a request that never produced a response.
func TransportError(cause error) *Error {
	return &Error{Kind: KindTransport, Cause: cause}
}

// MalformedResponseError builds a failure for a success body that does not decode.
func MalformedResponseError(cause error) *Error {
	return &Error{Kind: KindMalformedResponse, Cause: cause}
}

// AsError coerces any predictor error into a typed failure. Untyped errors are
// treated as transport failures.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) && typed != nil {
		return typed
	}
	return TransportError(err)
}

// KindOf returns the failure kind carried by err, or "" when untyped.
func KindOf(err error) Kind {
	var typed *Error
	if errors.As(err, &typed) && typed != nil {
		return typed.Kind
	}
	return ""
}

func causeDescription(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSpace(err.Error())
}

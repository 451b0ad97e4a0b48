package apierror

import "errors"

// Kind classifies failures the way the UI reacts to them: validation
// errors stay on the form, auth errors clear the session, not-found
// errors render an explicit missing state, everything else is a
// transport failure surfaced as a notification.
type Kind string

const (
	KindValidation Kind = "VALIDATION_ERROR"
	KindTransport  Kind = "TRANSPORT_ERROR"
	KindAuth       Kind = "AUTH_ERROR"
	KindNotFound   Kind = "NOT_FOUND"
)

// FallbackMessage is shown when neither the server nor the transport
// produced anything human-readable.
const FallbackMessage = "An unexpected error occurred"

// Error is a classified failure from the API layer.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]string // field -> message, validation only
	Err     error             // underlying cause, may be nil
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Validation creates a field-scoped validation error. It never reaches
// the network; form controllers handle it in place.
func Validation(fields map[string]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Message: "Validation failed",
		Fields:  fields,
	}
}

// Transport creates a network or server failure.
func Transport(message string, cause error) *Error {
	return &Error{
		Kind:    KindTransport,
		Message: message,
		Err:     cause,
	}
}

// Auth creates a 401-class failure. Callers must clear the session and
// send the user back to the login page.
func Auth(message string) *Error {
	if message == "" {
		message = "Authentication required"
	}
	return &Error{
		Kind:    KindAuth,
		Message: message,
	}
}

// NotFound creates an entity-absent failure.
func NotFound(message string) *Error {
	if message == "" {
		message = "Resource not found"
	}
	return &Error{
		Kind:    KindNotFound,
		Message: message,
	}
}

// IsAuth reports whether err is an auth failure anywhere in its chain.
func IsAuth(err error) bool {
	return isKind(err, KindAuth)
}

// IsNotFound reports whether err is a not-found failure.
func IsNotFound(err error) bool {
	return isKind(err, KindNotFound)
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool {
	return isKind(err, KindValidation)
}

func isKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// Extract returns the message to show the user for err. Fallback
// order: the structured server message, then the transport error text,
// then FallbackMessage.
func Extract(err error) string {
	if err == nil {
		return FallbackMessage
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return apiErr.Message
		}
		if apiErr.Err != nil && apiErr.Err.Error() != "" {
			return apiErr.Err.Error()
		}
		return FallbackMessage
	}

	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}

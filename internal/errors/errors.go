package errors

import (
	stderrors "errors"
	"net/http"
)

// APIError is the single error shape every route emits. It carries the HTTP
// status alongside the envelope fields.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details map[string]interface{}
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// New creates an APIError. A nil details map is replaced with an empty one so
// the envelope always carries an object.
func New(code string, status int, message string, details map[string]interface{}) *APIError {
	if details == nil {
		details = map[string]interface{}{}
	}
	return &APIError{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Wrap attaches the underlying cause and records its message under details.error.
func (e *APIError) Wrap(err error) *APIError {
	e.Err = err
	if err != nil {
		e.Details["error"] = err.Error()
	}
	return e
}

// MapErrorToHTTP maps any error to an APIError. Errors that are not already
// APIErrors become INTERNAL_SERVER_ERROR with the given message.
func MapErrorToHTTP(err error, message string) *APIError {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}
	return Internal(message, err)
}

// Internal wraps an unexpected failure.
func Internal(message string, err error) *APIError {
	return New("INTERNAL_SERVER_ERROR", http.StatusInternalServerError, message, nil).Wrap(err)
}

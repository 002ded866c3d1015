package errors

import (
	"errors"
	"net/http"
)

// Kind classifies an HTTPError.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuthentication Kind = "authentication"
	KindAuthorization  Kind = "authorization"
	KindNotFound       Kind = "not_found"
	KindPersistence    Kind = "persistence"
	KindInternal       Kind = "internal"
)

// InternalMessage is returned for errors that carry no user-facing message.
const InternalMessage = "Internal server error"

// ErrorResponse is the JSON body of every error response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// HTTPError is the final status and message of a failed operation.
type HTTPError struct {
	StatusCode int
	Message    string
	Kind       Kind
	// Err is the underlying cause, never exposed to clients.
	Err error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Message: e.Message}
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message string, kind Kind) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Kind:       kind,
	}
}

// Validation reports a rejected request body (400).
func Validation(message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, message, KindValidation)
}

// Unauthenticated reports missing or invalid credentials (401).
func Unauthenticated(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message, KindAuthentication)
}

// Forbidden reports a failed role or ownership check. The status is 401,
// same as authentication failures.
func Forbidden(message string) *HTTPError {
	return NewHTTPError(http.StatusUnauthorized, message, KindAuthorization)
}

// NotFound reports a missing resource (404).
func NotFound(message string) *HTTPError {
	return NewHTTPError(http.StatusNotFound, message, KindNotFound)
}

// Persistence reports a failed write to the backing store (500).
func Persistence(message string, cause error) *HTTPError {
	e := NewHTTPError(http.StatusInternalServerError, message, KindPersistence)
	e.Err = cause
	return e
}

// MapErrorToHTTP maps any error to the HTTPError sent to the client.
func MapErrorToHTTP(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	e := NewHTTPError(http.StatusInternalServerError, InternalMessage, KindInternal)
	e.Err = err
	return e
}

// KindOf returns the kind of the first HTTPError in err's chain.
func KindOf(err error) (Kind, bool) {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		return "", false
	}
	return httpErr.Kind, true
}

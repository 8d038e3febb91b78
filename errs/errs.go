// Package errs defines the error type carried from handlers to the error middleware.
//
// Handlers never write error responses themselves: they return an error, and
// middleware.ErrorHandler turns it into the JSON envelope using the status and
// message found here.
package errs

import (
	"net/http"
	"strings"
)

// HTTPError is an error with a status code and a client-facing message.
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is an *HTTPError with the same status.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}
	return t.Status == e.Status
}

func newHTTPError(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

// NewValidationError creates a 400 error for malformed or out-of-range input.
func NewValidationError(message string) *HTTPError {
	return newHTTPError(http.StatusBadRequest, message)
}

// NewNotFoundError creates a 404 error.
func NewNotFoundError(message string) *HTTPError {
	return newHTTPError(http.StatusNotFound, message)
}

func NewUnauthorizedError(message string) *HTTPError {
	return newHTTPError(http.StatusUnauthorized, message)
}

func NewForbiddenError(message string) *HTTPError {
	return newHTTPError(http.StatusForbidden, message)
}

func NewServiceUnavailableError(message string) *HTTPError {
	return newHTTPError(http.StatusServiceUnavailable, message)
}

// NewInternalServerError creates a 500 error with the generic status text,
// so store failures never leak their cause to the client.
func NewInternalServerError() *HTTPError {
	return newHTTPError(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}

// MakeUpperCaseWithUnderscores turns "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

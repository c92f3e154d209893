package web

import (
	"errors"
	"net/http"
)

// HTTPError represents an HTTP error with the data needed to render a
// complete error page. It implements the error interface; the wrapped
// cause is for logging and is never exposed to clients.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// Title is an optional page title (defaults derived from Code).
	Title string

	// RequestID is the request tracking ID.
	RequestID string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

func WithTitle(title string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Title = title
	}
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// Convenience constructors for common HTTP errors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return applyOpts(NewHTTPError(http.StatusBadRequest, message), opts)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return applyOpts(NewHTTPError(http.StatusUnauthorized, message), opts)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return applyOpts(NewHTTPError(http.StatusNotFound, message), opts)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return applyOpts(NewHTTPError(http.StatusInternalServerError, message), opts)
}

func applyOpts(e *HTTPError, opts []HTTPErrorOption) *HTTPError {
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AsHTTPError extracts an HTTPError from an error chain.
// Returns nil if no HTTPError is present.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}

// StatusFromError returns the declared status of an error, or 500 when the
// error carries none.
func StatusFromError(err error) int {
	if httpErr := AsHTTPError(err); httpErr != nil && httpErr.Code != 0 {
		return httpErr.Code
	}
	return http.StatusInternalServerError
}

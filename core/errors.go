package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// APIError represents an error returned by the platform with full context.
type APIError struct {
	Status    int
	Code      int
	RequestID string
	Message   string
	Err       error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("api: %s (status=%d, code=%d, request_id=%s)",
			e.Message, e.Status, e.Code, e.RequestID)
	}
	return fmt.Sprintf("api: %s (status=%d, code=%d)", e.Message, e.Status, e.Code)
}

// Unwrap returns the underlying error for error chaining.
func (e *APIError) Unwrap() error {
	return e.Err
}

// Sentinel errors for classification.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrRateLimited  = errors.New("rate limited")
	ErrBadRequest   = errors.New("bad request")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("server error")
	ErrNetwork      = errors.New("network error")
	ErrDecode       = errors.New("decode error")
)

// apiErrorBody is the platform's error payload shape.
type apiErrorBody struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NormalizeError converts an HTTP error response into an *APIError wrapping
// the appropriate sentinel. The body is the raw error payload; a malformed
// body falls back to the HTTP status text.
func NormalizeError(status int, body []byte, requestID string) error {
	var parsed apiErrorBody
	_ = json.Unmarshal(body, &parsed)

	message := parsed.Message
	if message == "" {
		message = http.StatusText(status)
	}

	var sentinel error
	switch {
	case status == http.StatusBadRequest:
		sentinel = ErrBadRequest
	case status == http.StatusUnauthorized:
		sentinel = ErrUnauthorized
	case status == http.StatusForbidden:
		sentinel = ErrForbidden
	case status == http.StatusNotFound:
		sentinel = ErrNotFound
	case status == http.StatusTooManyRequests:
		sentinel = ErrRateLimited
	case status >= 500:
		sentinel = ErrServer
	default:
		sentinel = ErrServer
	}

	return &APIError{
		Status:    status,
		Code:      parsed.Code,
		RequestID: requestID,
		Message:   message,
		Err:       sentinel,
	}
}

// NewNetworkError wraps a transport-level failure.
func NewNetworkError(err error) error {
	return &APIError{Message: err.Error(), Err: ErrNetwork}
}

// NewDecodeError wraps a payload decode failure.
func NewDecodeError(err error) error {
	return &APIError{Message: err.Error(), Err: ErrDecode}
}

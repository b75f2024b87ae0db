package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for the session and cart core.
var (
	// ErrAuthenticationFailed is returned when the credential exchange is rejected.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrSessionInvalid means the server rejected the current token on verify or refresh.
	ErrSessionInvalid = errors.New("session invalid")
	// ErrAuthRequired means a cart mutation was attempted without an authenticated session.
	ErrAuthRequired = errors.New("authentication required")
	// ErrRemoteOperationFailed wraps a failed remote cart call.
	ErrRemoteOperationFailed = errors.New("remote operation failed")
	// ErrValidation means the input was rejected before any state change or network call.
	ErrValidation = errors.New("validation error")
	// ErrNoSession means no session is persisted locally.
	ErrNoSession = errors.New("no persisted session")
)

// ErrorCode represents a structured API error code.
type ErrorCode string

const (
	CodeValidation   ErrorCode = "VALIDATION_ERROR"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"
	CodeRateLimited  ErrorCode = "RATE_LIMITED"
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
)

// APIError is a structured error returned by the storefront API.
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// HTTPError is returned when the server answers with a non-success status
// that carries no parseable API error body.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

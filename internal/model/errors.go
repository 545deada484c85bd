package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode represents API error codes
type ErrorCode int

const (
	// Authentication errors (1xxx)
	ErrCodeUnauthorized ErrorCode = 1001
	ErrCodeLoginFailed  ErrorCode = 1004

	// Resource errors (3xxx)
	ErrCodeNotFound      ErrorCode = 3001
	ErrCodeAlreadyExists ErrorCode = 3002

	// Validation errors (4xxx)
	ErrCodeValidation   ErrorCode = 4001
	ErrCodeInvalidInput ErrorCode = 4002
	ErrCodeRateLimited  ErrorCode = 4029

	// Internal errors (5xxx)
	ErrCodeInternal    ErrorCode = 5001
	ErrCodeUnavailable ErrorCode = 5003
)

// AccessDeniedMessage is the single body message for every authentication failure.
const AccessDeniedMessage = "Access denied. Invalid or missing token."

// APIError is the failure envelope returned by every endpoint:
// {"success":false,"message":"...","code":1001}
type APIError struct {
	Status  int          `json:"-"`
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Code    ErrorCode    `json:"code,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// WriteJSON writes the envelope with its status code
func (e *APIError) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.Status)
	_ = json.NewEncoder(w).Encode(e)
}

// Common error constructors

func NewUnauthorizedError(message string) *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: message, Code: ErrCodeUnauthorized}
}

// NewAccessDeniedError is the response for any rejected bearer token.
func NewAccessDeniedError() *APIError {
	return NewUnauthorizedError(AccessDeniedMessage)
}

func NewLoginFailedError() *APIError {
	return &APIError{Status: http.StatusUnauthorized, Message: "Invalid email or password.", Code: ErrCodeLoginFailed}
}

func NewNotFoundError(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: message, Code: ErrCodeNotFound}
}

func NewConflictError(message string) *APIError {
	return &APIError{Status: http.StatusConflict, Message: message, Code: ErrCodeAlreadyExists}
}

func NewBadRequestError(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message, Code: ErrCodeInvalidInput}
}

func NewValidationError(message string, errors ...FieldError) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message, Code: ErrCodeValidation, Errors: errors}
}

func NewInternalError(message string) *APIError {
	if message == "" {
		message = "An unexpected error occurred."
	}
	return &APIError{Status: http.StatusInternalServerError, Message: message, Code: ErrCodeInternal}
}

func NewUnavailableError(message string) *APIError {
	return &APIError{Status: http.StatusServiceUnavailable, Message: message, Code: ErrCodeUnavailable}
}

func NewRateLimitError(retryAfter int) *APIError {
	return &APIError{
		Status:  http.StatusTooManyRequests,
		Message: fmt.Sprintf("Too many requests. Retry after %d seconds.", retryAfter),
		Code:    ErrCodeRateLimited,
	}
}

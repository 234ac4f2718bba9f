// Package errors defines the typed application errors shared across the
// benchmark runner, the scoring API, and storage.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType categorizes an application error.
type ErrorType string

const (
	ErrorTypeValidation ErrorType = "validation"
	ErrorTypeLoad       ErrorType = "load"
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeProcessing ErrorType = "processing"
	ErrorTypeStorage    ErrorType = "storage"
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypeInternal   ErrorType = "internal"
)

// AppError is a structured application error carrying a category and the
// HTTP status the transport layer should map it to.
type AppError struct {
	Type       ErrorType `json:"type"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code"`
	Cause      error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewValidationError creates a validation error (bad request input).
func NewValidationError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeValidation, Message: message, StatusCode: http.StatusBadRequest, Cause: cause}
}

// NewLoadError creates a load error (undecodable or unreadable page image).
func NewLoadError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeLoad, Message: message, StatusCode: http.StatusUnprocessableEntity, Cause: cause}
}

// NewNetworkError creates a network error (upstream fetch failed).
func NewNetworkError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeNetwork, Message: message, StatusCode: http.StatusBadGateway, Cause: cause}
}

// NewProcessingError creates a processing error (scoring could not run).
func NewProcessingError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeProcessing, Message: message, StatusCode: http.StatusUnprocessableEntity, Cause: cause}
}

// NewStorageError creates a storage error (blob upload or history write failed).
func NewStorageError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeStorage, Message: message, StatusCode: http.StatusBadGateway, Cause: cause}
}

// NewNotFoundError creates a not found error.
func NewNotFoundError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeNotFound, Message: message, StatusCode: http.StatusNotFound, Cause: cause}
}

// NewInternalError creates an internal error.
func NewInternalError(message string, cause error) *AppError {
	return &AppError{Type: ErrorTypeInternal, Message: message, StatusCode: http.StatusInternalServerError, Cause: cause}
}

// IsType checks whether err is an AppError of the given type.
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// GetStatusCode extracts the HTTP status code from an error, defaulting to
// 500 for untyped errors.
func GetStatusCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

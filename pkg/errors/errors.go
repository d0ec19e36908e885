package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource was not found
	ErrorTypeNotFound ErrorType = "NOT_FOUND"
	// ErrorTypeValidation indicates user-correctable invalid input
	ErrorTypeValidation ErrorType = "VALIDATION"
	// ErrorTypeReadOnly indicates an attempted mutation of an externally-sourced record
	ErrorTypeReadOnly ErrorType = "READ_ONLY"
	// ErrorTypeUnavailable indicates the remote provider could not be reached
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"
	// ErrorTypeUnauthorized indicates failed credentials
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "INTERNAL"
)

// AppError represents an application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error returns the error message
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new application error
func New(errorType ErrorType, message string) error {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

// Wrap wraps an error with an application error
func Wrap(errorType ErrorType, message string, err error) error {
	return &AppError{
		Type:    errorType,
		Message: message,
		Err:     err,
	}
}

// NotFound creates a not found error
func NotFound(message string) error {
	return New(ErrorTypeNotFound, message)
}

// Validation creates a validation error; the message carries every
// violated rule at once so callers can display them together.
func Validation(message string) error {
	return New(ErrorTypeValidation, message)
}

// ReadOnly creates a read-only source error
func ReadOnly(message string) error {
	return New(ErrorTypeReadOnly, message)
}

// Unavailable creates a provider unavailable error
func Unavailable(message string) error {
	return New(ErrorTypeUnavailable, message)
}

// Unauthorized creates an unauthorized error
func Unauthorized(message string) error {
	return New(ErrorTypeUnauthorized, message)
}

// Internal creates an internal error
func Internal(message string) error {
	return New(ErrorTypeInternal, message)
}

// isType checks whether err is an AppError of the given type.
func isType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsReadOnly checks if an error is a read-only source error
func IsReadOnly(err error) bool {
	return isType(err, ErrorTypeReadOnly)
}

// IsUnavailable checks if an error is a provider unavailable error
func IsUnavailable(err error) bool {
	return isType(err, ErrorTypeUnavailable)
}

// IsUnauthorized checks if an error is an unauthorized error
func IsUnauthorized(err error) bool {
	return isType(err, ErrorTypeUnauthorized)
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	return isType(err, ErrorTypeInternal)
}

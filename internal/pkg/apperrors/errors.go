package apperrors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrValidationFailed      = errors.New("validation failed")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrUnauthenticated       = errors.New("authentication required")
)

// User errors
var (
	ErrUserNotFound       = fmt.Errorf("user: %w", ErrResourceNotFound)
	ErrEmailAlreadyExists = fmt.Errorf("email: %w", ErrResourceAlreadyExists)
)

// Course and registration errors
var (
	ErrCourseNotFound    = fmt.Errorf("course: %w", ErrResourceNotFound)
	ErrAlreadyRegistered = fmt.Errorf("registration: %w", ErrResourceAlreadyExists)
)

// Is returns whether err matches target or any of errList.
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError carries a user-facing message alongside a sentinel.
type CustomError struct {
	Err     error
	Message string
	Field   string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError reports a missing or malformed input field.
func NewValidationError(field, message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
		Field:   field,
	}
}

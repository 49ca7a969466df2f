package common

import (
	"errors"
	"fmt"
)

// ErrorCode represents different types of errors in the system
type ErrorCode int

const (
	// General errors
	ErrInternal ErrorCode = iota + 1000
	ErrInvalidInput
	ErrNotFound
	ErrConflict

	// Authentication errors
	ErrUnauthorized ErrorCode = iota + 2000
	ErrForbidden
	ErrInvalidToken
	ErrInvalidCredentials

	// Store errors
	ErrStoreFailure ErrorCode = iota + 3000
)

// AppError carries an error code alongside a message and optional cause.
type AppError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewError creates a new AppError
func NewError(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// NewErrorWithCause creates a new AppError with an underlying cause
func NewErrorWithCause(code ErrorCode, message string, cause error) *AppError {
	return &AppError{Code: code, Message: message, Cause: cause}
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// Common error constructors
func ErrInternalError(message string) *AppError {
	return NewError(ErrInternal, message)
}

func ErrInvalidInputError(message string) *AppError {
	return NewError(ErrInvalidInput, message)
}

func ErrNotFoundError(message string) *AppError {
	return NewError(ErrNotFound, message)
}

func ErrConflictError(message string) *AppError {
	return NewError(ErrConflict, message)
}

func ErrUnauthorizedError(message string) *AppError {
	return NewError(ErrUnauthorized, message)
}

func ErrStoreFailureError(message string, cause error) *AppError {
	return NewErrorWithCause(ErrStoreFailure, message, cause)
}

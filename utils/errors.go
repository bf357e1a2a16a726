package utils

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies failures so handlers can pick the right status code.
type ErrorKind string

const (
	ErrKindValidation     ErrorKind = "validation"
	ErrKindAuthentication ErrorKind = "authentication"
	ErrKindUpstream       ErrorKind = "upstream"
	ErrKindStore          ErrorKind = "store"
)

// AppError represents an application error
type AppError struct {
	Kind    ErrorKind `json:"kind"`
	Code    int       `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationFailed creates a 400 validation error from bad client input.
func ValidationFailed(message string, err error) *AppError {
	return &AppError{Kind: ErrKindValidation, Code: http.StatusBadRequest, Message: message, Err: err}
}

// AuthenticationFailed creates a 400 error for a missing or invalid webhook
// signature. Razorpay expects a 4xx here, not a 401 challenge.
func AuthenticationFailed(message string) *AppError {
	return &AppError{Kind: ErrKindAuthentication, Code: http.StatusBadRequest, Message: message}
}

// UpstreamFailure creates a 500 error for a failed gateway call.
func UpstreamFailure(message string, err error) *AppError {
	return &AppError{Kind: ErrKindUpstream, Code: http.StatusInternalServerError, Message: message, Err: err}
}

// StoreFailure creates a 500 error for a persistence failure.
func StoreFailure(message string, err error) *AppError {
	return &AppError{Kind: ErrKindStore, Code: http.StatusInternalServerError, Message: message, Err: err}
}

// GetAppError returns the AppError if the error wraps one
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind == ErrKindValidation
	}
	return false
}

// IsUpstreamError checks if an error is an upstream gateway error
func IsUpstreamError(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind == ErrKindUpstream
	}
	return false
}

// IsStoreError checks if an error is a persistence error
func IsStoreError(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Kind == ErrKindStore
	}
	return false
}

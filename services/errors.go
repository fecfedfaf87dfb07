package services

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an AppError for the HTTP layer
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindNotFound   ErrorKind = "not_found"
	KindInternal   ErrorKind = "internal"
)

// AppError is the error type returned by the order, catalog and schedule services
type AppError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// ValidationError builds a validation-kind AppError
func ValidationError(code, message string) *AppError {
	return &AppError{Kind: KindValidation, Code: code, Message: message}
}

// NotFoundError builds a not-found-kind AppError
func NotFoundError(code, message string) *AppError {
	return &AppError{Kind: KindNotFound, Code: code, Message: message}
}

// InternalError wraps a persistence or infrastructure failure
func InternalError(message string, err error) *AppError {
	return &AppError{Kind: KindInternal, Code: "DATABASE_ERROR", Message: message, Err: err}
}

// AsAppError extracts an AppError from err. Unknown errors are reported as internal.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError("Unexpected error", err)
}

// IsKind reports whether err carries an AppError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// Package errors provides application-level error types and utilities.
// Each AppError carries the HTTP status the interface layer responds with.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrorTypeValidation      ErrorType = "validation_error"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeConflict        ErrorType = "conflict"
	ErrorTypeUnauthorized    ErrorType = "unauthorized"
	ErrorTypeForbidden       ErrorType = "forbidden"
	ErrorTypeInternal        ErrorType = "internal_error"
	ErrorTypeBadRequest      ErrorType = "bad_request"
	ErrorTypeProtectedEntity ErrorType = "protected_entity"
	ErrorTypeTokenInvalid    ErrorType = "token_invalid"
	ErrorTypeTokenExpired    ErrorType = "token_expired"
)

var statusByType = map[ErrorType]int{
	ErrorTypeValidation:      http.StatusBadRequest,
	ErrorTypeNotFound:        http.StatusNotFound,
	ErrorTypeConflict:        http.StatusConflict,
	ErrorTypeUnauthorized:    http.StatusUnauthorized,
	ErrorTypeForbidden:       http.StatusForbidden,
	ErrorTypeInternal:        http.StatusInternalServerError,
	ErrorTypeBadRequest:      http.StatusBadRequest,
	ErrorTypeProtectedEntity: http.StatusUnprocessableEntity,
	ErrorTypeTokenInvalid:    http.StatusUnauthorized,
	ErrorTypeTokenExpired:    http.StatusUnauthorized,
}

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// New builds an AppError of the given type. Only the first detail is kept.
func New(errType ErrorType, message string, details ...string) *AppError {
	code, ok := statusByType[errType]
	if !ok {
		code = http.StatusInternalServerError
	}
	appErr := &AppError{Type: errType, Message: message, Code: code}
	if len(details) > 0 {
		appErr.Details = details[0]
	}
	return appErr
}

func NewValidationError(message string, details ...string) *AppError {
	return New(ErrorTypeValidation, message, details...)
}

func NewNotFoundError(message string, details ...string) *AppError {
	return New(ErrorTypeNotFound, message, details...)
}

func NewConflictError(message string, details ...string) *AppError {
	return New(ErrorTypeConflict, message, details...)
}

func NewUnauthorizedError(message string, details ...string) *AppError {
	return New(ErrorTypeUnauthorized, message, details...)
}

func NewForbiddenError(message string, details ...string) *AppError {
	return New(ErrorTypeForbidden, message, details...)
}

func NewInternalError(message string, details ...string) *AppError {
	return New(ErrorTypeInternal, message, details...)
}

func NewBadRequestError(message string, details ...string) *AppError {
	return New(ErrorTypeBadRequest, message, details...)
}

// NewProtectedEntityError is returned when a write targets a role that must never change.
func NewProtectedEntityError(message string, details ...string) *AppError {
	return New(ErrorTypeProtectedEntity, message, details...)
}

func NewTokenInvalidError(message string, details ...string) *AppError {
	return New(ErrorTypeTokenInvalid, message, details...)
}

func NewTokenExpiredError(message string, details ...string) *AppError {
	return New(ErrorTypeTokenExpired, message, details...)
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

func isType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

func IsConflictError(err error) bool        { return isType(err, ErrorTypeConflict) }
func IsNotFoundError(err error) bool        { return isType(err, ErrorTypeNotFound) }
func IsValidationError(err error) bool      { return isType(err, ErrorTypeValidation) }
func IsForbiddenError(err error) bool       { return isType(err, ErrorTypeForbidden) }
func IsUnauthorizedError(err error) bool    { return isType(err, ErrorTypeUnauthorized) }
func IsProtectedEntityError(err error) bool { return isType(err, ErrorTypeProtectedEntity) }

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// PostgreSQL
	if strings.Contains(errStr, "violates unique constraint") {
		return true
	}
	// SQLite
	return strings.Contains(errStr, "UNIQUE constraint failed")
}

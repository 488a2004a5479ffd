// Package errors provides application-level error types and utilities.
// It defines the error taxonomy used across the service: validation,
// not-found, referential-integrity, persistence-integrity, upstream-provider,
// configuration and migration errors.
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
	ErrorTypeValidation           ErrorType = "validation_error"
	ErrorTypeNotFound             ErrorType = "not_found"
	ErrorTypeConflict             ErrorType = "conflict"
	ErrorTypeInternal             ErrorType = "internal_error"
	ErrorTypeBadRequest           ErrorType = "bad_request"
	ErrorTypeConfiguration        ErrorType = "configuration_error"
	ErrorTypeUpstream             ErrorType = "upstream_error"
	ErrorTypeReferentialIntegrity ErrorType = "referential_integrity_error"
	ErrorTypePersistenceIntegrity ErrorType = "persistence_integrity_error"
	ErrorTypeMigration            ErrorType = "migration_error"
)

// AppError represents an application error with additional context
type AppError struct {
	Type    ErrorType `json:"type"`
	Message string    `json:"message"`
	Code    int       `json:"code"`
	Details string    `json:"details,omitempty"`
	wrapped error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap exposes the underlying cause to errors.Is / errors.As.
func (e *AppError) Unwrap() error {
	return e.wrapped
}

// WithCause attaches the underlying error.
func (e *AppError) WithCause(err error) *AppError {
	e.wrapped = err
	return e
}

func firstDetail(details []string) string {
	if len(details) > 0 {
		return details[0]
	}
	return ""
}

// NewValidationError creates a new validation error
func NewValidationError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    http.StatusBadRequest,
		Details: firstDetail(details),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: message,
		Code:    http.StatusNotFound,
		Details: firstDetail(details),
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeConflict,
		Message: message,
		Code:    http.StatusConflict,
		Details: firstDetail(details),
	}
}

// NewInternalError creates a new internal error
func NewInternalError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeInternal,
		Message: message,
		Code:    http.StatusInternalServerError,
		Details: firstDetail(details),
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeBadRequest,
		Message: message,
		Code:    http.StatusBadRequest,
		Details: firstDetail(details),
	}
}

// NewConfigurationError reports a missing or invalid piece of configuration,
// typically an absent upstream credential. Not retryable.
func NewConfigurationError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeConfiguration,
		Message: message,
		Code:    http.StatusInternalServerError,
		Details: firstDetail(details),
	}
}

// NewUpstreamError reports a failure or timeout of an external generation
// provider. The service does not retry these.
func NewUpstreamError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeUpstream,
		Message: message,
		Code:    http.StatusBadGateway,
		Details: firstDetail(details),
	}
}

// NewReferentialIntegrityError reports a write that references a missing
// parent entity. The write is rejected.
func NewReferentialIntegrityError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeReferentialIntegrity,
		Message: message,
		Code:    http.StatusNotFound,
		Details: firstDetail(details),
	}
}

// NewPersistenceIntegrityError reports stored data that fails to decode per
// its declared type. This is a data-corruption signal and is never masked.
func NewPersistenceIntegrityError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypePersistenceIntegrity,
		Message: message,
		Code:    http.StatusInternalServerError,
		Details: firstDetail(details),
	}
}

// NewMigrationError reports a failed schema migration. The transaction has
// been rolled back and the process must not continue partially migrated.
func NewMigrationError(message string, details ...string) *AppError {
	return &AppError{
		Type:    ErrorTypeMigration,
		Message: message,
		Code:    http.StatusInternalServerError,
		Details: firstDetail(details),
	}
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

func isType(err error, t ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == t
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return isType(err, ErrorTypeNotFound)
}

// IsValidationError checks if the error is a validation error
func IsValidationError(err error) bool {
	return isType(err, ErrorTypeValidation)
}

// IsConflictError checks if the error is a conflict error
func IsConflictError(err error) bool {
	return isType(err, ErrorTypeConflict)
}

// IsUpstreamError checks if the error is an upstream provider error
func IsUpstreamError(err error) bool {
	return isType(err, ErrorTypeUpstream)
}

// IsReferentialIntegrityError checks for a rejected write against a missing parent
func IsReferentialIntegrityError(err error) bool {
	return isType(err, ErrorTypeReferentialIntegrity)
}

// IsPersistenceIntegrityError checks for a stored-data decode failure
func IsPersistenceIntegrityError(err error) bool {
	return isType(err, ErrorTypePersistenceIntegrity)
}

// IsMigrationError checks if the error is a migration error
func IsMigrationError(err error) bool {
	return isType(err, ErrorTypeMigration)
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL duplicate entry error
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// SQLite unique violation
	if strings.Contains(errStr, "UNIQUE constraint failed") || strings.Contains(errStr, "unique constraint") {
		return true
	}
	return false
}

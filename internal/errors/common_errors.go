package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeInvalidFormat     ErrorType = "INVALID_FORMAT"
	ErrTypeNotFound          ErrorType = "NOT_FOUND"
	ErrTypeMissingField      ErrorType = "MISSING_FIELD"
	ErrTypeParsing           ErrorType = "PARSING"
	ErrTypeUnsupportedFormat ErrorType = "UNSUPPORTED_FORMAT"
	ErrTypeValidation        ErrorType = "VALIDATION"
	ErrTypeStorage           ErrorType = "STORAGE"
	ErrTypeConfig            ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether any error in err's chain is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return false
	}
	if appErr.Type == errType {
		return true
	}
	return appErr.Cause != nil && IsType(appErr.Cause, errType)
}

// TypeOf returns the type of the outermost AppError in err's chain, or "" if there is none.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// Helper functions for common error types

// NewInvalidFormatError is returned when a source name does not carry the expected suffix.
func NewInvalidFormatError(source, suffix string) *AppError {
	return NewAppError(ErrTypeInvalidFormat,
		fmt.Sprintf("invalid file format for %q: expected a %s file", source, suffix), nil).
		WithContext("source", source)
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string, cause error) *AppError {
	return NewAppError(ErrTypeNotFound, fmt.Sprintf("%s not found", resource), cause).
		WithContext("resource", resource)
}

// NewMissingFieldError creates an error naming a required field that could not be resolved.
func NewMissingFieldError(field string, message string) *AppError {
	return NewAppError(ErrTypeMissingField, message, nil).WithContext("field", field)
}

// NewParsingError creates a parsing-related error
func NewParsingError(message string, cause error) *AppError {
	return NewAppError(ErrTypeParsing, message, cause)
}

// NewUnsupportedFormatError lists the supported suffixes so callers can show them as-is.
func NewUnsupportedFormatError(suffix string, supported []string) *AppError {
	list := append([]string(nil), supported...)
	sort.Strings(list)
	return NewAppError(ErrTypeUnsupportedFormat,
		fmt.Sprintf("unsupported format %q, supported formats: %s", suffix, strings.Join(list, ", ")), nil).
		WithContext("supported", list)
}

// NewAppValidationError creates a validation error for AppError type
func NewAppValidationError(message string, cause error) *AppError {
	return NewAppError(ErrTypeValidation, message, cause)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

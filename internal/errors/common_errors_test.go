package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Constants(t *testing.T) {
	tests := []struct {
		name     string
		errType  ErrorType
		expected string
	}{
		{name: "invalid format", errType: ErrTypeInvalidFormat, expected: "INVALID_FORMAT"},
		{name: "not found", errType: ErrTypeNotFound, expected: "NOT_FOUND"},
		{name: "missing field", errType: ErrTypeMissingField, expected: "MISSING_FIELD"},
		{name: "parsing", errType: ErrTypeParsing, expected: "PARSING"},
		{name: "unsupported format", errType: ErrTypeUnsupportedFormat, expected: "UNSUPPORTED_FORMAT"},
		{name: "validation", errType: ErrTypeValidation, expected: "VALIDATION"},
		{name: "storage", errType: ErrTypeStorage, expected: "STORAGE"},
		{name: "config", errType: ErrTypeConfig, expected: "CONFIG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(tt.errType))
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name        string
		appError    *AppError
		wantMessage string
	}{
		{
			name: "error without cause",
			appError: &AppError{
				Type:    ErrTypeMissingField,
				Message: "rate column missing",
			},
			wantMessage: "[MISSING_FIELD] rate column missing",
		},
		{
			name: "error with cause",
			appError: &AppError{
				Type:    ErrTypeStorage,
				Message: "write failed",
				Cause:   fmt.Errorf("disk full"),
			},
			wantMessage: "[STORAGE] write failed: disk full",
		},
		{
			name: "error with empty message",
			appError: &AppError{
				Type: ErrTypeValidation,
			},
			wantMessage: "[VALIDATION] ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantMessage, tt.appError.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("original error")
	appErr := NewParsingError("bad number", cause)

	assert.Same(t, cause, appErr.Unwrap())
	assert.True(t, errors.Is(appErr, cause))
	assert.Nil(t, NewAppValidationError("no cause", nil).Unwrap())
}

func TestAppError_WithContext(t *testing.T) {
	appErr := &AppError{Type: ErrTypeParsing, Message: "bad row"}

	got := appErr.WithContext("line", 3).WithContext("field", "hours_worked")

	require.Same(t, appErr, got)
	assert.Equal(t, 3, appErr.Context["line"])
	assert.Equal(t, "hours_worked", appErr.Context["field"])
}

func TestIsType(t *testing.T) {
	notFound := NewNotFoundError("file missing.csv", errors.New("no such file"))
	wrapped := fmt.Errorf("ingest: %w", notFound)
	nested := NewParsingError("parse failed", notFound)

	assert.True(t, IsType(notFound, ErrTypeNotFound))
	assert.True(t, IsType(wrapped, ErrTypeNotFound))
	assert.True(t, IsType(nested, ErrTypeParsing))
	assert.True(t, IsType(nested, ErrTypeNotFound))
	assert.False(t, IsType(wrapped, ErrTypeParsing))
	assert.False(t, IsType(errors.New("plain"), ErrTypeNotFound))
	assert.False(t, IsType(nil, ErrTypeNotFound))
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrTypeConfig, TypeOf(fmt.Errorf("load: %w", NewConfigError("bad", nil))))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))
}

func TestHelperConstructors(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantType    ErrorType
		wantContain string
	}{
		{
			name:        "invalid format names source and suffix",
			err:         NewInvalidFormatError("data.txt", ".csv"),
			wantType:    ErrTypeInvalidFormat,
			wantContain: `"data.txt": expected a .csv file`,
		},
		{
			name:        "not found embeds resource",
			err:         NewNotFoundError("file test.csv", nil),
			wantType:    ErrTypeNotFound,
			wantContain: "file test.csv not found",
		},
		{
			name:        "missing field keeps message",
			err:         NewMissingFieldError("hourly_rate", "no rate column"),
			wantType:    ErrTypeMissingField,
			wantContain: "no rate column",
		},
		{
			name:        "unsupported format enumerates suffixes",
			err:         NewUnsupportedFormatError(".txt", []string{".yaml", ".json"}),
			wantType:    ErrTypeUnsupportedFormat,
			wantContain: `unsupported format ".txt", supported formats: .json, .yaml`,
		},
		{
			name:        "storage",
			err:         NewStorageError("rename failed", errors.New("busy")),
			wantType:    ErrTypeStorage,
			wantContain: "rename failed: busy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Contains(t, tt.err.Error(), tt.wantContain)
		})
	}
}

func TestNewMissingFieldError_Context(t *testing.T) {
	err := NewMissingFieldError("email", "row 4 has no email")
	assert.Equal(t, "email", err.Context["field"])
}

func TestNewUnsupportedFormatError_DoesNotReorderInput(t *testing.T) {
	supported := []string{".yaml", ".json"}
	_ = NewUnsupportedFormatError(".txt", supported)
	assert.Equal(t, []string{".yaml", ".json"}, supported)
}

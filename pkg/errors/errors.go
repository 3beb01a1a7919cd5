package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Template errors
	ErrTemplateMissing ErrorCode = "TEMPLATE_MISSING"
	ErrTemplateRead    ErrorCode = "TEMPLATE_READ"

	// Installation errors
	ErrSettingsParse  ErrorCode = "SETTINGS_PARSE"
	ErrPartialInstall ErrorCode = "PARTIAL_INSTALL"
	ErrLocked         ErrorCode = "LOCKED"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileRead     ErrorCode = "FILE_READ"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrFileRemove   ErrorCode = "FILE_REMOVE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
)

// HandoffError represents a structured error with code and details
type HandoffError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *HandoffError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *HandoffError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *HandoffError) Is(target error) bool {
	var targetErr *HandoffError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new HandoffError with the given code and message
func New(code ErrorCode, message string) *HandoffError {
	return &HandoffError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new HandoffError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *HandoffError {
	return &HandoffError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a HandoffError
func Wrap(err error, code ErrorCode, message string) *HandoffError {
	if err == nil {
		return nil
	}
	return &HandoffError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *HandoffError {
	if err == nil {
		return nil
	}
	return &HandoffError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *HandoffError) WithDetail(key string, value interface{}) *HandoffError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var handoffErr *HandoffError
	if errors.As(err, &handoffErr) {
		return handoffErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a HandoffError
func GetErrorCode(err error) ErrorCode {
	var handoffErr *HandoffError
	if errors.As(err, &handoffErr) {
		return handoffErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a HandoffError
func GetErrorDetails(err error) map[string]interface{} {
	var handoffErr *HandoffError
	if errors.As(err, &handoffErr) {
		return handoffErr.Details
	}
	return nil
}

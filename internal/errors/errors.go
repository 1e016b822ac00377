// Package errors provides a lightweight structured error type (ApkOptError)
// for category-based classification and exit code mapping in the CLI.
package errors

import (
	stdErrors "errors"
	"fmt"
)

// ErrorCategory represents the category of an apkopt error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// Workspace and extraction errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryArchive    ErrorCategory = "archive"

	// External process errors
	CategoryOptimizer ErrorCategory = "optimizer"

	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// ApkOptError is a structured error with category, severity and context
type ApkOptError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ApkOptError
type ContextFields map[string]any

// Error implements the error interface
func (e *ApkOptError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping for Go 1.13+ error handling
func (e *ApkOptError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *ApkOptError) WithContext(key string, value any) *ApkOptError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// New creates a new ApkOptError
func New(category ErrorCategory, severity ErrorSeverity, message string) *ApkOptError {
	return &ApkOptError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new ApkOptError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ApkOptError {
	return &ApkOptError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the outermost ApkOptError in err's chain.
func As(err error) (*ApkOptError, bool) {
	var aoe *ApkOptError
	if stdErrors.As(err, &aoe) {
		return aoe, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if aoe, ok := As(err); ok {
		return aoe.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not an ApkOptError
func GetCategory(err error) ErrorCategory {
	if aoe, ok := As(err); ok {
		return aoe.Category
	}
	return CategoryInternal
}

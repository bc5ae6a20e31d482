package errors

import (
	stderrors "errors"
	"fmt"
)

// HookError is the structured error type for vibehooks.
type HookError struct {
	// Code is the unique error code (e.g., "ERR_102_CONFIG_INVALID").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is derived from the code.
	Category Category

	// Severity is derived from the code.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *HookError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *HookError) Unwrap() error {
	return e.Cause
}

// Is matches another HookError by code.
func (e *HookError) Is(target error) bool {
	if t, ok := target.(*HookError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
func (e *HookError) WithDetail(key, value string) *HookError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *HookError) WithSuggestion(suggestion string) *HookError {
	e.Suggestion = suggestion
	return e
}

// New creates a new HookError with the given code and message.
func New(code string, message string, cause error) *HookError {
	return &HookError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a HookError from an existing error.
func Wrap(code string, err error) *HookError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *HookError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// IOError creates an I/O-related error.
func IOError(message string, cause error) *HookError {
	return New(ErrCodeFileWrite, message, cause)
}

// InputError creates a hook input error.
func InputError(message string, cause error) *HookError {
	return New(ErrCodeInvalidPayload, message, cause)
}

// InternalError creates an internal error.
func InternalError(message string, cause error) *HookError {
	return New(ErrCodeInternal, message, cause)
}

// As finds the first HookError in err's chain.
func As(err error) (*HookError, bool) {
	var he *HookError
	if stderrors.As(err, &he) {
		return he, true
	}
	return nil, false
}

// GetCode extracts the error code from a HookError anywhere in the chain.
// Returns empty string if there is none.
func GetCode(err error) string {
	if he, ok := As(err); ok {
		return he.Code
	}
	return ""
}

// GetCategory extracts the category from a HookError anywhere in the chain.
func GetCategory(err error) Category {
	if he, ok := As(err); ok {
		return he.Category
	}
	return ""
}

// IsFatal checks if an error has fatal severity.
func IsFatal(err error) bool {
	if he, ok := As(err); ok {
		return he.Severity == SeverityFatal
	}
	return false
}

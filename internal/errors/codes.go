// Package errors provides structured error handling for vibehooks.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: IO errors (file, disk)
//   - 4XX: Hook input and validation errors
//   - 5XX: Internal errors
//
// Hooks never surface these to the host: a hook that hits one logs it and
// fails open. Management commands (install, config, usage) print them.
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryIO indicates file and disk I/O errors.
	CategoryIO Category = "IO"
	// CategoryInput indicates malformed hook payloads or invalid values.
	CategoryInput Category = "INPUT"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"
	ErrCodeConfigParse    = "ERR_103_CONFIG_PARSE"

	// IO errors (200-299)
	ErrCodeFileNotFound   = "ERR_201_FILE_NOT_FOUND"
	ErrCodeFilePermission = "ERR_202_FILE_PERMISSION"
	ErrCodeFileWrite      = "ERR_203_FILE_WRITE"
	ErrCodeFileCorrupt    = "ERR_206_FILE_CORRUPT"

	// Input errors (400-499)
	ErrCodeInvalidInput   = "ERR_401_INVALID_INPUT"
	ErrCodeInvalidPayload = "ERR_402_INVALID_PAYLOAD"
	ErrCodePayloadTooBig  = "ERR_403_PAYLOAD_TOO_BIG"
	ErrCodeUnknownHook    = "ERR_404_UNKNOWN_HOOK"

	// Internal errors (500-599)
	ErrCodeInternal      = "ERR_501_INTERNAL"
	ErrCodeCommandFailed = "ERR_502_COMMAND_FAILED"
	ErrCodeHookPanic     = "ERR_503_HOOK_PANIC"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}

	// Numeric portion, e.g. "101" from "ERR_101_CONFIG_NOT_FOUND"
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryIO
	case '4':
		return CategoryInput
	default:
		return CategoryInternal
	}
}

// severityFromCode determines severity based on error code.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeHookPanic:
		return SeverityFatal
	case ErrCodeCommandFailed:
		return SeverityWarning
	}
	return SeverityError
}

package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHookError_Unwrap_PreservesOriginalError(t *testing.T) {
	// Given: an original error
	originalErr := errors.New("original error")

	// When: wrapping with HookError
	hookErr := New(ErrCodeFileNotFound, "file not found: settings.json", originalErr)

	// Then: unwrapping returns original error
	require.NotNil(t, hookErr)
	assert.Equal(t, originalErr, errors.Unwrap(hookErr))
	assert.True(t, errors.Is(hookErr, originalErr))
}

func TestHookError_Error_ReturnsFormattedMessage(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		message  string
		expected string
	}{
		{
			name:     "config error",
			code:     ErrCodeConfigNotFound,
			message:  "config file not found",
			expected: "[ERR_101_CONFIG_NOT_FOUND] config file not found",
		},
		{
			name:     "payload error",
			code:     ErrCodeInvalidPayload,
			message:  "bad json",
			expected: "[ERR_402_INVALID_PAYLOAD] bad json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, nil)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestHookError_Is_MatchesByCode(t *testing.T) {
	err1 := New(ErrCodeConfigInvalid, "message 1", nil)
	err2 := New(ErrCodeConfigInvalid, "message 2", nil)
	err3 := New(ErrCodeInternal, "message 1", nil)

	assert.True(t, errors.Is(err1, err2))
	assert.False(t, errors.Is(err1, err3))
}

func TestHookError_WithDetailAndSuggestion(t *testing.T) {
	err := New(ErrCodeConfigInvalid, "bad size", nil).
		WithDetail("field", "usage_log.max_size").
		WithSuggestion("use a value like 100KiB")

	assert.Equal(t, "usage_log.max_size", err.Details["field"])
	assert.Equal(t, "use a value like 100KiB", err.Suggestion)
}

func TestCategoryFromCode(t *testing.T) {
	tests := []struct {
		code     string
		expected Category
	}{
		{ErrCodeConfigParse, CategoryConfig},
		{ErrCodeFileWrite, CategoryIO},
		{ErrCodeInvalidPayload, CategoryInput},
		{ErrCodeCommandFailed, CategoryInternal},
		{"bad", CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, categoryFromCode(tt.code))
		})
	}
}

func TestSeverityFromCode(t *testing.T) {
	assert.Equal(t, SeverityFatal, severityFromCode(ErrCodeHookPanic))
	assert.Equal(t, SeverityWarning, severityFromCode(ErrCodeCommandFailed))
	assert.Equal(t, SeverityError, severityFromCode(ErrCodeConfigInvalid))
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestConstructors_SetCategory(t *testing.T) {
	assert.Equal(t, CategoryConfig, ConfigError("x", nil).Category)
	assert.Equal(t, CategoryIO, IOError("x", nil).Category)
	assert.Equal(t, CategoryInput, InputError("x", nil).Category)
	assert.Equal(t, CategoryInternal, InternalError("x", nil).Category)
}

func TestGetCode_FindsWrappedHookError(t *testing.T) {
	// Given: a HookError wrapped by fmt.Errorf
	inner := ConfigError("invalid", nil)
	outer := fmt.Errorf("loading: %w", inner)

	// Then: code and category are found through the chain
	assert.Equal(t, ErrCodeConfigInvalid, GetCode(outer))
	assert.Equal(t, CategoryConfig, GetCategory(outer))
	assert.Equal(t, "", GetCode(errors.New("plain")))
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(New(ErrCodeHookPanic, "boom", nil)))
	assert.False(t, IsFatal(New(ErrCodeInternal, "x", nil)))
	assert.False(t, IsFatal(nil))
}

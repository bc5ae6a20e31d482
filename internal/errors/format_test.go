package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatForCLI_IncludesHintAndCode(t *testing.T) {
	err := ConfigError("usage_log.max_size must be positive", nil).
		WithSuggestion("set usage_log.max_size to e.g. 100KiB")

	out := FormatForCLI(err)

	assert.Contains(t, out, "Error: usage_log.max_size must be positive")
	assert.Contains(t, out, "Hint: set usage_log.max_size to e.g. 100KiB")
	assert.Contains(t, out, "Code: ERR_102_CONFIG_INVALID")
}

func TestFormatForCLI_StandardError(t *testing.T) {
	out := FormatForCLI(errors.New("boom"))

	assert.Contains(t, out, "Error: boom")
	assert.Contains(t, out, ErrCodeInternal)
}

func TestFormatForCLI_NilError(t *testing.T) {
	assert.Equal(t, "", FormatForCLI(nil))
}

func TestFormatForHook(t *testing.T) {
	assert.Equal(t, "Hook error: unexpected end of JSON input",
		FormatForHook(InputError("unexpected end of JSON input", nil)))
	assert.Equal(t, "Hook error: boom", FormatForHook(errors.New("boom")))
	assert.Equal(t, "", FormatForHook(nil))
}

func TestFormatForLog(t *testing.T) {
	err := IOError("write failed", errors.New("disk full")).WithDetail("path", "settings.json")

	fields := FormatForLog(err)

	assert.Equal(t, ErrCodeFileWrite, fields["error_code"])
	assert.Equal(t, "disk full", fields["cause"])
	assert.Equal(t, "settings.json", fields["detail_path"])
	assert.Equal(t, map[string]any{"error": "x"}, FormatForLog(errors.New("x")))
	assert.Nil(t, FormatForLog(nil))
}

package errors

import (
	"fmt"
	"strings"
)

// FormatForCLI formats an error for CLI output.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	he, ok := As(err)
	if !ok {
		he = Wrap(ErrCodeInternal, err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n", he.Message))
	if he.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", he.Suggestion))
	}
	sb.WriteString(fmt.Sprintf("  Code: %s\n", he.Code))

	return sb.String()
}

// FormatForHook formats an error as the single line a hook prints to stderr
// before failing open.
func FormatForHook(err error) string {
	if err == nil {
		return ""
	}
	if he, ok := As(err); ok {
		return "Hook error: " + he.Message
	}
	return "Hook error: " + err.Error()
}

// FormatForLog formats an error for structured logging.
// Returns key-value pairs suitable for slog attributes.
func FormatForLog(err error) map[string]any {
	if err == nil {
		return nil
	}

	he, ok := As(err)
	if !ok {
		return map[string]any{
			"error": err.Error(),
		}
	}

	result := map[string]any{
		"error_code": he.Code,
		"message":    he.Message,
		"category":   string(he.Category),
		"severity":   string(he.Severity),
	}
	if he.Cause != nil {
		result["cause"] = he.Cause.Error()
	}
	if he.Suggestion != "" {
		result["suggestion"] = he.Suggestion
	}
	for k, v := range he.Details {
		result["detail_"+k] = v
	}

	return result
}

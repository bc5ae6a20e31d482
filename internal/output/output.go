// Package output writes the short icon-prefixed feedback lines hooks send to
// the host. The host relays a hook's stderr to the assistant, so every line
// here is read by the model as well as by the user.
package output

import (
	"fmt"
	"io"
	"strings"
)

// Common icons.
const (
	IconSuccess = "✅"
	IconWarning = "⚠️"
	IconError   = "❌"
	IconBlocked = "⛔"
	IconHint    = "💡"
)

// Writer provides formatted hook feedback.
type Writer struct {
	out io.Writer
}

// New creates a new output Writer.
func New(out io.Writer) *Writer {
	if out == nil {
		out = io.Discard
	}
	return &Writer{out: out}
}

// Out returns the underlying writer.
func (w *Writer) Out() io.Writer {
	return w.out
}

// Status prints a status message with an icon.
// Without an icon the message is indented to line up under iconed lines.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status(IconSuccess, msg)
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status(IconWarning, msg)
}

// Warningf prints a formatted warning message.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status(IconError, msg)
}

// Line prints msg verbatim followed by a newline.
func (w *Writer) Line(msg string) {
	_, _ = fmt.Fprintln(w.out, msg)
}

// Raw prints content unchanged, adding a trailing newline if it lacks one.
func (w *Writer) Raw(content string) {
	if content == "" {
		return
	}
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	_, _ = io.WriteString(w.out, content)
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

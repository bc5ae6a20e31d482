package hook

import (
	"context"

	"github.com/dg-vibecoding/vibehooks/internal/output"
)

// Toggler is implemented by handlers that can be switched off in
// configuration. Installers skip handlers whose Enabled returns false.
type Toggler interface {
	Enabled() bool
}

// IsEnabled reports whether h is enabled. Handlers without a Toggler are.
func IsEnabled(h Handler) bool {
	if t, ok := h.(Toggler); ok {
		return t.Enabled()
	}
	return true
}

// Disabled wraps h so that it keeps its name and registration but allows
// every call without doing any work.
func Disabled(h Handler) Handler {
	return disabled{inner: h}
}

type disabled struct {
	inner Handler
}

func (d disabled) Name() string    { return d.inner.Name() }
func (d disabled) Event() Event    { return d.inner.Event() }
func (d disabled) Matcher() string { return d.inner.Matcher() }
func (d disabled) Enabled() bool   { return false }

func (d disabled) Handle(context.Context, *Input, *output.Writer) Result {
	return Allow()
}

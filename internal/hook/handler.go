package hook

import (
	"context"

	"github.com/dg-vibecoding/vibehooks/internal/output"
)

// Event is a host lifecycle point, named as in the host's settings file.
type Event string

// Supported events.
const (
	PreToolUse   Event = "PreToolUse"
	PostToolUse  Event = "PostToolUse"
	SessionStart Event = "SessionStart"
)

// Events lists the supported events in settings order.
func Events() []Event {
	return []Event{PreToolUse, PostToolUse, SessionStart}
}

// IsToolEvent reports whether the event carries a tool call.
func (e Event) IsToolEvent() bool {
	return e == PreToolUse || e == PostToolUse
}

// Exit codes understood by the host.
const (
	ExitAllow = 0
	ExitBlock = 2
)

// Result is the outcome of a handler.
type Result struct {
	Code int
}

// Allow lets the host action proceed.
func Allow() Result { return Result{Code: ExitAllow} }

// Block stops the pending tool call. Only honoured for PreToolUse.
func Block() Result { return Result{Code: ExitBlock} }

// Handler is one hook. Feedback goes to out, which the host relays to the
// assistant.
type Handler interface {
	// Name is the CLI name, e.g. "block-env".
	Name() string
	// Event is the lifecycle point the handler is registered for.
	Event() Event
	// Matcher is the host's tool-name pattern ("Read|Grep"), written to the
	// settings file. The host filters on it; empty matches every tool.
	Matcher() string
	// Handle processes one payload.
	Handle(ctx context.Context, in *Input, out *output.Writer) Result
}

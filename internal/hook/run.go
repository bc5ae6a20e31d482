package hook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/dg-vibecoding/vibehooks/internal/errors"
	"github.com/dg-vibecoding/vibehooks/internal/output"
)

// Resolver picks the handler for a decoded payload. The CLI uses it to load
// configuration relative to the payload's working directory before building
// the handler.
type Resolver func(in *Input) (Handler, error)

// Runner executes handlers with fail-open semantics.
type Runner struct {
	logger *slog.Logger
}

// NewRunner creates a Runner. A nil logger discards diagnostics.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{logger: logger}
}

// Run decodes stdin and runs h. It returns the process exit code.
func Run(ctx context.Context, h Handler, stdin io.Reader, stderr io.Writer) int {
	return NewRunner(nil).Run(ctx, stdin, stderr, func(*Input) (Handler, error) { return h, nil })
}

// Run decodes stdin, resolves the handler and runs it. Decode and resolve
// errors print "Hook error: <msg>" to stderr and return ExitAllow.
func (r *Runner) Run(ctx context.Context, stdin io.Reader, stderr io.Writer, resolve Resolver) int {
	out := output.New(stderr)

	in, err := ReadInput(stdin)
	if err != nil {
		return r.failOpen(out, "decode", err)
	}

	h, err := resolve(in)
	if err != nil {
		return r.failOpen(out, "resolve", err)
	}

	return r.Execute(ctx, h, in, out)
}

// Execute runs h against an already decoded payload. Tool events without a
// tool_name fail open without calling h.
func (r *Runner) Execute(ctx context.Context, h Handler, in *Input, out *output.Writer) (code int) {
	log := r.logger.With("hook", h.Name(), "event", string(h.Event()), "tool", in.ToolName)

	// The host has already applied the matcher; tool events only need a name.
	if h.Event().IsToolEvent() && in.ToolName == "" {
		return r.failOpen(out, "decode", errors.InputError("payload has no tool_name", nil))
	}

	defer func() {
		if rec := recover(); rec != nil {
			err := errors.New(errors.ErrCodeHookPanic, fmt.Sprintf("%s panicked: %v", h.Name(), rec), nil)
			log.Error("hook panicked", "panic", rec, "stack", string(debug.Stack()))
			code = r.failOpen(out, "handle", err)
		}
	}()

	res := h.Handle(ctx, in, out)
	code = res.Code

	if code == ExitBlock && h.Event() != PreToolUse {
		log.Warn("only PreToolUse hooks can block, allowing", "code", code)
		code = ExitAllow
	}
	if code != ExitAllow && code != ExitBlock {
		log.Warn("unexpected exit code, allowing", "code", code)
		code = ExitAllow
	}

	log.Debug("hook finished", "code", code)
	return code
}

func (r *Runner) failOpen(out *output.Writer, stage string, err error) int {
	attrs := []any{"stage", stage}
	for k, v := range errors.FormatForLog(err) {
		attrs = append(attrs, k, v)
	}
	r.logger.Warn("hook failed open", attrs...)
	out.Line(errors.FormatForHook(err))
	return ExitAllow
}

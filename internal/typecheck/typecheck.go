// Package typecheck implements the type-check hook, which runs the
// TypeScript compiler after .ts and .tsx edits and reports type errors back
// to the assistant.
package typecheck

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dg-vibecoding/vibehooks/internal/execx"
	"github.com/dg-vibecoding/vibehooks/internal/hook"
	"github.com/dg-vibecoding/vibehooks/internal/output"
)

// Name is the hook's CLI name.
const Name = "type-check"

// Defaults.
const (
	DefaultCommand = "npx tsc --noEmit"
	DefaultTimeout = 30 * time.Second
)

// ErrorMarker identifies compiler diagnostics in the checker's output.
const ErrorMarker = "error TS"

// DefaultExtensions are the file types that trigger a check.
var DefaultExtensions = []string{"ts", "tsx"}

// Config controls the checker invocation.
type Config struct {
	// Dir is the working directory, normally the project root.
	Dir string
	// Argv is the checker command. The edited file is not appended; the
	// whole project is checked.
	Argv []string
	// Extensions limits which edits trigger a check.
	Extensions []string
	// Timeout bounds one run.
	Timeout time.Duration
}

// Checker is the type-check hook.
type Checker struct {
	cfg    Config
	runner execx.Runner
	logger *slog.Logger
}

// New creates the hook. Zero values use the defaults.
func New(cfg Config, runner execx.Runner, logger *slog.Logger) *Checker {
	if len(cfg.Argv) == 0 {
		cfg.Argv, _ = execx.Split(DefaultCommand)
	}
	if len(cfg.Extensions) == 0 {
		cfg.Extensions = DefaultExtensions
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	if runner == nil {
		runner = execx.NewExecRunner(logger)
	}
	return &Checker{cfg: cfg, runner: runner, logger: logger}
}

func (c *Checker) Name() string { return Name }

func (c *Checker) Event() hook.Event { return hook.PostToolUse }

func (c *Checker) Matcher() string { return "Edit|Write|MultiEdit" }

// Handle runs the checker. Type errors are reported but never block.
func (c *Checker) Handle(ctx context.Context, in *hook.Input, out *output.Writer) hook.Result {
	path := in.ToolInput.FilePath
	if !hook.HasExtension(path, c.cfg.Extensions) {
		return hook.Allow()
	}

	res, err := c.runner.Run(ctx, execx.Command{
		Dir:     c.cfg.Dir,
		Argv:    c.cfg.Argv,
		Timeout: c.cfg.Timeout,
	})
	if err == nil {
		out.Success("TypeScript: No errors")
		return hook.Allow()
	}

	report := res.Combined()
	if !strings.Contains(report, ErrorMarker) {
		c.logger.Debug("type checker failed without diagnostics", "path", path, "error", err)
		return hook.Allow()
	}

	c.logger.Info("type errors detected", "path", path, "errors", strings.Count(report, ErrorMarker))
	out.Newline()
	out.Warningf("TypeScript errors detected after editing %s:", path)
	out.Newline()
	out.Raw(report)
	out.Newline()
	out.Status(output.IconHint, "Please fix these type errors.")
	return hook.Allow()
}

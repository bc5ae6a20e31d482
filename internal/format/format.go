// Package format implements the auto-format hook, which runs a code
// formatter on files the assistant just edited or wrote.
package format

import (
	"context"
	"log/slog"
	"time"

	"github.com/dg-vibecoding/vibehooks/internal/execx"
	"github.com/dg-vibecoding/vibehooks/internal/hook"
	"github.com/dg-vibecoding/vibehooks/internal/output"
)

// Name is the hook's CLI name.
const Name = "auto-format"

// IconFormatted prefixes the confirmation line.
const IconFormatted = "✨"

// Defaults.
const (
	DefaultCommand = "npx prettier --write"
	DefaultTimeout = 10 * time.Second
)

// DefaultExtensions are the file types handed to the formatter.
var DefaultExtensions = []string{"js", "jsx", "ts", "tsx", "json", "css", "scss", "md"}

// Config controls the formatter invocation.
type Config struct {
	// Dir is the working directory for the formatter.
	Dir string
	// Argv is the formatter command; the file path is appended.
	Argv []string
	// Extensions limits which files are formatted.
	Extensions []string
	// Timeout bounds one run.
	Timeout time.Duration
}

// Formatter is the auto-format hook.
type Formatter struct {
	cfg    Config
	runner execx.Runner
	logger *slog.Logger
}

// New creates the hook. Zero values use the defaults.
func New(cfg Config, runner execx.Runner, logger *slog.Logger) *Formatter {
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
	return &Formatter{cfg: cfg, runner: runner, logger: logger}
}

func (f *Formatter) Name() string { return Name }

func (f *Formatter) Event() hook.Event { return hook.PostToolUse }

func (f *Formatter) Matcher() string { return "Edit|Write|MultiEdit" }

// Handle formats the edited file. Formatter failures are logged and ignored.
func (f *Formatter) Handle(ctx context.Context, in *hook.Input, out *output.Writer) hook.Result {
	path := in.ToolInput.FilePath
	if !hook.HasExtension(path, f.cfg.Extensions) {
		return hook.Allow()
	}

	argv := make([]string, 0, len(f.cfg.Argv)+1)
	argv = append(argv, f.cfg.Argv...)
	argv = append(argv, path)

	_, err := f.runner.Run(ctx, execx.Command{
		Dir:     f.cfg.Dir,
		Argv:    argv,
		Timeout: f.cfg.Timeout,
	})
	if err != nil {
		f.logger.Debug("formatter failed, ignoring", "path", path, "error", err)
		return hook.Allow()
	}

	out.Status(IconFormatted, "Formatted: "+path)
	return hook.Allow()
}

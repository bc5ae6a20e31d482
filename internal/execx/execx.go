// Package execx runs external tools (formatters, type checkers) with a
// deadline and captured output.
package execx

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"

	"github.com/dg-vibecoding/vibehooks/internal/errors"
)

// ErrTimeout is returned when a command exceeds its timeout.
var ErrTimeout = stderrors.New("command timed out")

// Command describes one process to start.
type Command struct {
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Argv is the program followed by its arguments.
	Argv []string
	// Timeout bounds the run. Zero means no limit beyond ctx.
	Timeout time.Duration
}

// String renders the command line for logs.
func (c Command) String() string {
	return strings.Join(c.Argv, " ")
}

// Output is what a command wrote.
type Output struct {
	Stdout string
	Stderr string
}

// Combined returns stdout, falling back to stderr when stdout is empty.
func (o Output) Combined() string {
	if o.Stdout != "" {
		return o.Stdout
	}
	return o.Stderr
}

// Runner starts commands. Output is returned even when err is non-nil.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Output, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Logger *slog.Logger
}

// NewExecRunner creates an ExecRunner. A nil logger uses slog.Default().
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{Logger: logger}
}

// Run starts cmd and waits for it. A non-zero exit is returned as an error
// wrapping *exec.ExitError; exceeding the timeout returns ErrTimeout.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) (Output, error) {
	if len(cmd.Argv) == 0 {
		return Output{}, errors.New(errors.ErrCodeInvalidInput, "empty command", nil)
	}

	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(ctx, cmd.Argv[0], cmd.Argv[1:]...)
	c.Dir = cmd.Dir
	c.Stdout = &stdout
	c.Stderr = &stderr
	c.WaitDelay = time.Second

	start := time.Now()
	err := c.Run()
	out := Output{Stdout: stdout.String(), Stderr: stderr.String()}

	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("command finished",
		"cmd", cmd.String(),
		"dir", cmd.Dir,
		"duration", time.Since(start),
		"error", err)

	if err == nil {
		return out, nil
	}
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return out, fmt.Errorf("%s: %w after %s", cmd.Argv[0], ErrTimeout, cmd.Timeout)
	}
	return out, errors.New(errors.ErrCodeCommandFailed, fmt.Sprintf("%s failed: %v", cmd.Argv[0], err), err)
}

// Split breaks a command line into argv using shell word rules (quotes and
// escapes, no expansion).
func Split(cmdline string) ([]string, error) {
	argv, err := shlex.Split(cmdline)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("invalid command %q", cmdline), err)
	}
	if len(argv) == 0 {
		return nil, errors.ConfigError("command is empty", nil)
	}
	return argv, nil
}

// ExitCode extracts the process exit code from a Run error, or -1.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

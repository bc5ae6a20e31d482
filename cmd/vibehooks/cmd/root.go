// Package cmd provides the CLI commands for vibehooks.
package cmd

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dg-vibecoding/vibehooks/internal/config"
	"github.com/dg-vibecoding/vibehooks/internal/errors"
	"github.com/dg-vibecoding/vibehooks/internal/logging"
	"github.com/dg-vibecoding/vibehooks/pkg/version"
)

// ExitError carries a process exit code without an error message.
// The hook command uses it to report a block.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// app holds the state shared by every command: the resolved project
// directory, its configuration and the diagnostic logger.
type app struct {
	projectDirFlag string
	debug          bool
	logLevel       string

	projectDir string
	cfg        *config.Config
	cfgErr     error
	logger     *slog.Logger
	cleanup    func()
}

// NewRootCmd creates the root command for the vibehooks CLI.
func NewRootCmd() *cobra.Command {
	a := &app{logger: logging.Discard()}

	cmd := &cobra.Command{
		Use:   "vibehooks",
		Short: "Lifecycle hooks for AI coding assistants",
		Long: `vibehooks implements the hooks an AI coding assistant runs around tool calls
and sessions: it blocks reads of sensitive files, records skill and agent
usage, prints project and git context at session start, and formats and
type-checks edited files.

Register the hooks in .claude/settings.local.json with 'vibehooks install'.`,
		Version:       version.Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.SetVersionTemplate("vibehooks version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging to "+logging.DefaultFile)
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&a.projectDirFlag, "project-dir", "", "Project directory (default: $"+config.ProjectDirEnv+" or the nearest project root)")

	cmd.PersistentPreRunE = a.start
	cmd.PersistentPostRunE = a.stop

	cmd.AddCommand(newHookCmd(a))
	cmd.AddCommand(newUsageCmd(a))
	cmd.AddCommand(newInstallCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// start resolves the project, loads its configuration and sets up logging.
// An invalid configuration is recorded and replaced by the defaults so that
// hooks keep working.
func (a *app) start(_ *cobra.Command, _ []string) error {
	if a.logLevel != "" && !logging.ValidLevel(a.logLevel) {
		return errors.New(errors.ErrCodeInvalidInput, "invalid --log-level "+a.logLevel, nil).
			WithSuggestion("Use one of debug, info, warn, error")
	}

	a.load(config.ResolveProjectDir(a.projectDirFlag, ""))

	logCfg := logging.Config{
		Level:         a.cfg.Logging.Level,
		FilePath:      config.ResolvePath(a.projectDir, a.cfg.Logging.File),
		MaxSizeMB:     a.cfg.Logging.MaxSizeMB,
		MaxBackups:    a.cfg.Logging.MaxBackups,
		WriteToStderr: a.cfg.Logging.Stderr,
	}
	if a.debug {
		debugCfg := logging.DebugConfig(logCfg.FilePath)
		debugCfg.FilePath = config.ResolvePath(a.projectDir, debugCfg.FilePath)
		debugCfg.WriteToStderr = logCfg.WriteToStderr
		if logCfg.MaxSizeMB > 0 {
			debugCfg.MaxSizeMB = logCfg.MaxSizeMB
		}
		if logCfg.MaxBackups > 0 {
			debugCfg.MaxBackups = logCfg.MaxBackups
		}
		logCfg = debugCfg
	}
	if a.logLevel != "" {
		logCfg.Level = a.logLevel
	}

	logger, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		// Diagnostics are optional; hooks must not fail over them.
		logger, cleanup = logging.Discard(), func() {}
	}
	a.logger = logger
	a.cleanup = cleanup
	slog.SetDefault(logger)

	a.logger.Debug("vibehooks started",
		slog.String("version", version.Version),
		slog.String("project_dir", a.projectDir),
		slog.Any("config_sources", a.cfg.Sources))
	if a.cfgErr != nil {
		a.logConfigError()
	}
	return nil
}

func (a *app) stop(_ *cobra.Command, _ []string) error {
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
	}
	return nil
}

// load reads configuration for dir, falling back to the defaults.
func (a *app) load(dir string) {
	a.projectDir = dir
	a.cfg, a.cfgErr = config.Load(dir)
	if a.cfgErr != nil {
		a.cfg = config.NewConfig()
	}
}

func (a *app) logConfigError() {
	attrs := []any{slog.String("project_dir", a.projectDir)}
	for k, v := range errors.FormatForLog(a.cfgErr) {
		attrs = append(attrs, k, v)
	}
	a.logger.Warn("invalid configuration, using defaults", attrs...)
}

// Execute runs the root command and returns the process exit code: the
// hook's code for "hook", 1 for any other error.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return run(ctx, NewRootCmd(), os.Stderr)
}

func run(ctx context.Context, cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exit *ExitError
	if stderrors.As(err, &exit) {
		return exit.Code
	}

	if _, ok := errors.As(err); ok {
		_, _ = fmt.Fprint(stderr, errors.FormatForCLI(err))
	} else {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}

package cmd

import (
	"log/slog"

	"github.com/dg-vibecoding/vibehooks/internal/config"
	"github.com/dg-vibecoding/vibehooks/internal/execx"
	"github.com/dg-vibecoding/vibehooks/internal/format"
	"github.com/dg-vibecoding/vibehooks/internal/gitctx"
	"github.com/dg-vibecoding/vibehooks/internal/guard"
	"github.com/dg-vibecoding/vibehooks/internal/hook"
	"github.com/dg-vibecoding/vibehooks/internal/session"
	"github.com/dg-vibecoding/vibehooks/internal/tracker"
	"github.com/dg-vibecoding/vibehooks/internal/typecheck"
	"github.com/dg-vibecoding/vibehooks/internal/usagelog"
)

// hookNames lists the hooks in registration order.
func hookNames() []string {
	return []string{
		guard.Name,
		tracker.Name,
		format.Name,
		typecheck.Name,
		session.Name,
		gitctx.Name,
	}
}

// newUsageLog builds the usage log for the project.
func newUsageLog(cfg *config.Config, projectDir string, logger *slog.Logger) *usagelog.Logger {
	return usagelog.New(usagelog.Config{
		Path:         usageLogPath(cfg, projectDir),
		BackupSuffix: cfg.UsageLog.BackupSuffix,
		MaxSize:      cfg.UsageLog.MaxSizeBytes(),
		Lock:         cfg.UsageLog.Lock,
		LockTimeout:  config.Duration(cfg.UsageLog.LockTimeout, usagelog.DefaultLockTimeout),
	}, usagelog.WithLogger(logger))
}

func usageLogPath(cfg *config.Config, projectDir string) string {
	return config.ResolvePath(projectDir, cfg.UsageLog.Path)
}

// buildRegistry wires every hook from configuration. Hooks switched off in
// configuration stay registered so that "hook <name>" still succeeds.
func buildRegistry(cfg *config.Config, projectDir string, logger *slog.Logger) *hook.Registry {
	usage := newUsageLog(cfg, projectDir, logger)
	runner := execx.NewExecRunner(logger)

	var formatter hook.Handler = format.New(format.Config{
		Dir:        projectDir,
		Argv:       cfg.Format.Argv(),
		Extensions: cfg.Format.Extensions,
		Timeout:    config.Duration(cfg.Format.Timeout, format.DefaultTimeout),
	}, runner, logger)
	if !cfg.Format.Enabled {
		formatter = hook.Disabled(formatter)
	}

	var checker hook.Handler = typecheck.New(typecheck.Config{
		Dir:        projectDir,
		Argv:       cfg.TypeCheck.Argv(),
		Extensions: cfg.TypeCheck.Extensions,
		Timeout:    config.Duration(cfg.TypeCheck.Timeout, typecheck.DefaultTimeout),
	}, runner, logger)
	if !cfg.TypeCheck.Enabled {
		checker = hook.Disabled(checker)
	}

	return hook.NewRegistry(
		guard.New(cfg.Guard.GuardPatterns(), logger),
		tracker.New(usage, logger),
		formatter,
		checker,
		session.New(session.Config{
			ProjectDir:  projectDir,
			ProjectFile: cfg.Session.ProjectFile,
			SprintFile:  cfg.Session.SprintFile,
		}, usage, logger),
		gitctx.New(gitctx.Config{
			Dir:      projectDir,
			LogCount: cfg.Git.LogCount,
			Timeout:  config.Duration(cfg.Git.Timeout, gitctx.DefaultTimeout),
		}, logger),
	)
}

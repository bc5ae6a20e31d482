package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dg-vibecoding/vibehooks/internal/config"
	"github.com/dg-vibecoding/vibehooks/internal/hook"
)

func newHookCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook <name>",
		Short: "Run a hook with the host payload on stdin",
		Long: `Run one hook. The host writes a JSON payload to stdin; feedback for the
assistant goes to stderr.

Exit codes:
  0  allow (also used for every internal error)
  2  block the pending tool call (PreToolUse hooks only)

Hooks:
  block-env      PreToolUse   Read|Grep                 block reads of sensitive files
  usage-tracker  PostToolUse  Skill|SlashCommand|Task   record skill, command and agent usage
  auto-format    PostToolUse  Edit|Write|MultiEdit      run the formatter on edited files
  type-check     PostToolUse  Edit|Write|MultiEdit      type-check after TypeScript edits
  session-init   SessionStart                           check project files, log session start
  git-context    SessionStart                           print branch, changes and recent commits`,
		Example:   `  echo '{"tool_name":"Read","tool_input":{"file_path":".env"}}' | vibehooks hook block-env`,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: hookNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := a.runHook(cmd, args[0])
			if code != hook.ExitAllow {
				// Post-run hooks are skipped on error.
				_ = a.stop(cmd, args)
				return &ExitError{Code: code}
			}
			return nil
		},
	}
	return cmd
}

// runHook decodes the payload, builds the named handler against the
// payload's project and runs it.
func (a *app) runHook(cmd *cobra.Command, name string) int {
	runner := hook.NewRunner(a.logger)
	return runner.Run(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr(), func(in *hook.Input) (hook.Handler, error) {
		a.reloadFor(in)
		return buildRegistry(a.cfg, a.projectDir, a.logger).Get(name)
	})
}

// reloadFor switches to the payload's working directory when neither the
// flag nor the host environment named a project.
func (a *app) reloadFor(in *hook.Input) {
	if a.projectDirFlag != "" || os.Getenv(config.ProjectDirEnv) != "" || in.Cwd == "" {
		return
	}
	dir := config.ResolveProjectDir("", in.Cwd)
	if dir == a.projectDir {
		return
	}
	a.logger.Debug("using payload working directory", "project_dir", dir)
	a.load(dir)
	if a.cfgErr != nil {
		a.logConfigError()
	}
}

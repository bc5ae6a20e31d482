package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dg-vibecoding/vibehooks/internal/config"
	"github.com/dg-vibecoding/vibehooks/internal/errors"
	"github.com/dg-vibecoding/vibehooks/internal/output"
	"github.com/dg-vibecoding/vibehooks/internal/settings"
)

// DefaultBinary is the command written into settings when --binary is not set.
const DefaultBinary = "vibehooks"

func newInstallCmd(a *app) *cobra.Command {
	var (
		settingsPath string
		binary       string
		printOnly    bool
	)

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Register the hooks in the host settings file",
		Long: `Register every enabled hook in the host settings file
(` + settings.DefaultPath + ` in the project by default).

Existing settings and hooks from other tools are kept. Entries that run
this binary are replaced, so running install again is safe.`,
		Example: `  # Install into the current project
  vibehooks install

  # Use an absolute binary path
  vibehooks install --binary "$(command -v vibehooks)"

  # Print the hooks object without writing anything
  vibehooks install --print`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hooks := settings.Build(buildRegistry(a.cfg, a.projectDir, a.logger), binary)

			if printOnly {
				data, err := hooks.MarshalSettingsJSON()
				if err != nil {
					return errors.InternalError("failed to encode hooks", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}

			path := settingsPath
			if path == "" {
				path = settings.DefaultPath
			}
			path = config.ResolvePath(a.projectDir, path)

			if err := settings.Merge(path, hooks, binary); err != nil {
				return err
			}

			count := 0
			for _, groups := range hooks {
				for _, g := range groups {
					count += len(g.Hooks)
				}
			}

			out := output.New(cmd.OutOrStdout())
			out.Success(fmt.Sprintf("Installed %d hooks", count))
			out.Statusf("📁", "Settings: %s", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&settingsPath, "settings", "", "Settings file (default "+settings.DefaultPath+" in the project)")
	cmd.Flags().StringVar(&binary, "binary", DefaultBinary, "Command used to invoke vibehooks")
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the hooks object instead of writing it")

	return cmd
}

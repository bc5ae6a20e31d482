package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dg-vibecoding/vibehooks/internal/config"
	"github.com/dg-vibecoding/vibehooks/internal/errors"
	"github.com/dg-vibecoding/vibehooks/internal/output"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long: `Manage vibehooks configuration.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/vibehooks/config.yaml)
  3. Project config (` + config.ProjectFileYAML + `)
  4. Environment variables (VIBEHOOKS_*)`,
		Example: `  # Show effective configuration
  vibehooks config show

  # Write the defaults to the project config
  vibehooks config init`,
	}

	cmd.AddCommand(newConfigShowCmd(a))
	cmd.AddCommand(newConfigInitCmd(a))
	cmd.AddCommand(newConfigPathCmd(a))

	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if a.cfgErr != nil {
				return a.cfgErr
			}

			data, err := a.cfg.YAML()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "# Project: %s\n", a.projectDir)
			if len(a.cfg.Sources) == 0 {
				_, _ = fmt.Fprintln(w, "# Sources: defaults")
			}
			for _, src := range a.cfg.Sources {
				_, _ = fmt.Fprintf(w, "# Source: %s\n", src)
			}
			_, err = w.Write(data)
			return err
		},
	}
}

func newConfigInitCmd(a *app) *cobra.Command {
	var (
		force bool
		user  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with the defaults",
		Long: `Write the default configuration to ` + config.ProjectFileYAML + ` in the project,
or to the user config file with --user.

With --force an existing file is backed up before it is overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ProjectConfigPath(a.projectDir)
			if user {
				path = config.GetUserConfigPath()
			}

			out := output.New(cmd.OutOrStdout())

			var backup string
			if _, err := os.Stat(path); err == nil {
				if !force {
					out.Warning("Configuration already exists")
					out.Statusf("📁", "Location: %s", path)
					out.Status("💡", "Use --force to overwrite it (a backup is kept)")
					return nil
				}
				if backup, err = config.BackupFile(path); err != nil {
					return errors.IOError("failed to back up "+path, err)
				}
			}

			if err := config.NewConfig().WriteYAML(path); err != nil {
				return err
			}

			out.Success("Created configuration")
			out.Statusf("📁", "Location: %s", path)
			if backup != "" {
				out.Statusf("💾", "Backup: %s", backup)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&user, "user", false, "Write the user config instead of the project config")

	return cmd
}

func newConfigPathCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print configuration file paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "user:    %s\nproject: %s\n",
				config.GetUserConfigPath(), config.ProjectConfigPath(a.projectDir))
			return nil
		},
	}
}

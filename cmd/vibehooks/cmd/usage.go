package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/docker/go-units"
	"github.com/spf13/cobra"

	"github.com/dg-vibecoding/vibehooks/internal/errors"
	"github.com/dg-vibecoding/vibehooks/internal/ui"
	"github.com/dg-vibecoding/vibehooks/internal/usagelog"
)

const defaultTopN = 10

type usageOptions struct {
	follow  bool
	lines   int
	kind    string
	filter  string
	all     bool
	stats   bool
	noColor bool
	logFile string
}

func newUsageCmd(a *app) *cobra.Command {
	var opts usageOptions

	cmd := &cobra.Command{
		Use:   "usage",
		Short: "View the usage log",
		Long: `View skill, command, agent and session entries recorded by the hooks.

By default shows the last 50 entries of the usage log. Use -f to keep
printing new entries as they are appended; following survives log rotation.`,
		Example: `  vibehooks usage                 # Last 50 entries
  vibehooks usage -n 200 --all    # Include the rotated backup
  vibehooks usage --kind agent    # Only AGENT entries
  vibehooks usage --filter commit # Entries matching a regex
  vibehooks usage -f              # Follow new entries
  vibehooks usage --stats         # Counts by kind and most used`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runUsage(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.follow, "follow", "f", false, "Follow new entries (like tail -f)")
	cmd.Flags().IntVarP(&opts.lines, "lines", "n", 50, "Number of entries to show (0 for all)")
	cmd.Flags().StringVar(&opts.kind, "kind", "", "Filter by kind (skill|command|agent|tool|session_start)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Filter by pattern (regex)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Include the rotated backup")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "Show a summary of the log and its backup")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&opts.logFile, "file", "", "Path to the usage log (default from configuration)")

	return cmd
}

func (a *app) runUsage(ctx context.Context, stdout, stderr io.Writer, opts usageOptions) error {
	path := opts.logFile
	if path == "" {
		path = usageLogPath(a.cfg, a.projectDir)
	}
	backup := path + a.cfg.UsageLog.BackupSuffix

	var pattern *regexp.Regexp
	if opts.filter != "" {
		var err error
		pattern, err = regexp.Compile(opts.filter)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "invalid filter pattern", err).
				WithSuggestion("Use Go regular expression syntax, e.g. 'SKILL: (commit|review)'")
		}
	}

	color := ui.UseColor(stdout, opts.noColor)
	viewer := usagelog.NewViewer(usagelog.ViewerConfig{
		Kind:    opts.kind,
		Pattern: pattern,
		NoColor: !color,
	}, stdout)

	if opts.stats {
		entries, err := viewer.TailFiles([]string{backup, path}, 0)
		if err != nil {
			return errors.IOError("failed to read usage log", err)
		}
		printStats(stdout, ui.StylesFor(color), usagelog.Summarize(entries), path, backup)
		return nil
	}

	paths := []string{path}
	if opts.all {
		paths = []string{backup, path}
	}

	_, _ = fmt.Fprintf(stderr, "Usage log: %s\n", path)
	if opts.follow {
		_, _ = fmt.Fprintln(stderr, "Following... (Ctrl+C to stop)")
	}
	_, _ = fmt.Fprintln(stderr, "---")

	entries, err := viewer.TailFiles(paths, opts.lines)
	if err != nil {
		return errors.IOError("failed to read usage log", err)
	}
	viewer.Print(entries)

	if opts.follow {
		return runFollow(ctx, viewer, path, stdout, stderr)
	}
	return nil
}

func runFollow(ctx context.Context, viewer *usagelog.Viewer, path string, stdout, stderr io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	entries := make(chan usagelog.ParsedEntry, 100)
	errCh := make(chan error, 1)

	go func() {
		errCh <- viewer.Follow(ctx, path, entries)
	}()

	for {
		select {
		case entry := <-entries:
			_, _ = fmt.Fprintln(stdout, viewer.FormatEntry(entry))
		case err := <-errCh:
			if err != nil {
				return errors.IOError("failed to follow usage log", err)
			}
			return nil
		case <-ctx.Done():
			_, _ = fmt.Fprintln(stderr, "\n---")
			_, _ = fmt.Fprintln(stderr, "Stopped.")
			return nil
		}
	}
}

func printStats(w io.Writer, styles ui.Styles, s usagelog.Stats, path, backup string) {
	_, _ = fmt.Fprintln(w, styles.Header.Render("Usage log"))
	_, _ = fmt.Fprintf(w, "  %s %s\n", styles.Label.Render("Log:   "), describeFile(path))
	_, _ = fmt.Fprintf(w, "  %s %s\n", styles.Label.Render("Backup:"), describeFile(backup))
	_, _ = fmt.Fprintf(w, "  %s %d\n", styles.Label.Render("Total: "), s.Total)
	if s.Invalid > 0 {
		_, _ = fmt.Fprintf(w, "  %s %s\n", styles.Label.Render("Skipped:"),
			styles.Warning.Render(fmt.Sprintf("%d unparseable lines", s.Invalid)))
	}
	if s.Total == 0 {
		return
	}
	_, _ = fmt.Fprintf(w, "  %s %s .. %s\n", styles.Label.Render("Span:  "),
		s.First.Local().Format("2006-01-02 15:04"), s.Last.Local().Format("2006-01-02 15:04"))

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.Header.Render("By kind"))
	for _, c := range s.Kinds() {
		_, _ = fmt.Fprintf(w, "  %s %5d\n", styles.Kind(c.Label).Render(fmt.Sprintf("%-15s", c.Label)), c.N)
	}

	top := s.Top(defaultTopN)
	if len(top) == 0 {
		return
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, styles.Header.Render("Most used"))
	for _, c := range top {
		_, _ = fmt.Fprintf(w, "  %5d  %s\n", c.N, c.Label)
	}
}

// describeFile returns "path (size)" or "path (missing)".
func describeFile(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		return path + " (missing)"
	}
	return fmt.Sprintf("%s (%s)", path, units.BytesSize(float64(info.Size())))
}

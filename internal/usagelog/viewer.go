package usagelog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dg-vibecoding/vibehooks/internal/ui"
)

// ParsedEntry is a usage log line split into its parts.
type ParsedEntry struct {
	Time    time.Time
	Kind    string // "SKILL", "COMMAND", "AGENT", "TOOL", "SESSION_START", ...
	Detail  string // Text after "KIND: ", empty for bare kinds
	Raw     string // Original line
	IsValid bool   // Whether the timestamp and separator parsed
}

// ParseLine parses one usage log line.
func ParseLine(line string) ParsedEntry {
	entry := ParsedEntry{Raw: line}

	ts, desc, ok := strings.Cut(line, Separator)
	if !ok {
		return entry
	}

	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return entry
	}

	entry.Time = t
	entry.IsValid = true
	if kind, detail, found := strings.Cut(desc, ": "); found {
		entry.Kind = kind
		entry.Detail = detail
	} else {
		entry.Kind = desc
	}
	return entry
}

// ViewerConfig configures the usage viewer.
type ViewerConfig struct {
	Kind    string         // Filter by kind (case-insensitive)
	Pattern *regexp.Regexp // Filter by pattern on the raw line
	NoColor bool           // Disable colors
}

// Viewer reads, filters and formats usage log entries.
type Viewer struct {
	config ViewerConfig
	styles ui.Styles
	out    io.Writer
}

// NewViewer creates a new usage viewer writing to out.
func NewViewer(cfg ViewerConfig, out io.Writer) *Viewer {
	return &Viewer{
		config: cfg,
		styles: ui.StylesFor(!cfg.NoColor),
		out:    out,
	}
}

// Tail returns the last n matching entries of the file at path.
// A missing file yields no entries. n <= 0 returns every match.
func (v *Viewer) Tail(path string, n int) ([]ParsedEntry, error) {
	return v.TailFiles([]string{path}, n)
}

// TailFiles reads paths in order (oldest generation first) and returns the
// last n matching entries across all of them.
func (v *Viewer) TailFiles(paths []string, n int) ([]ParsedEntry, error) {
	var entries []ParsedEntry
	for _, path := range paths {
		fileEntries, err := v.readAll(path)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fileEntries...)
	}

	if n > 0 && len(entries) > n {
		entries = entries[len(entries)-n:]
	}
	return entries, nil
}

func (v *Viewer) readAll(path string) ([]ParsedEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open usage log: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	const maxCapacity = 1024 * 1024
	buf := make([]byte, maxCapacity)
	scanner.Buffer(buf, maxCapacity)

	var entries []ParsedEntry
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		entry := ParseLine(line)
		if v.matchesFilter(entry) {
			entries = append(entries, entry)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read usage log: %w", err)
	}
	return entries, nil
}

// Follow streams entries appended to path until ctx is cancelled.
// It watches the log directory so that a rotation, which renames the log and
// recreates it on the next append, switches over to the new file.
func (v *Viewer) Follow(ctx context.Context, path string, entries chan<- ParsedEntry) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create usage log directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	t := &tailer{path: path}
	if err := t.open(true); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	defer t.close()

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}

			switch {
			case event.Has(fsnotify.Create):
				// Drain what the old handle still has, then start on the new file.
				if !v.drain(ctx, t, entries) {
					return nil
				}
				t.close()
				if err := t.open(false); err != nil {
					continue
				}
			case event.Has(fsnotify.Rename), event.Has(fsnotify.Remove):
				if !v.drain(ctx, t, entries) {
					return nil
				}
				t.close()
				continue
			}

			if !v.drain(ctx, t, entries) {
				return nil
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}

// drain sends every complete line available from t. It returns false when
// ctx was cancelled while sending.
func (v *Viewer) drain(ctx context.Context, t *tailer, entries chan<- ParsedEntry) bool {
	for _, line := range t.lines() {
		entry := ParseLine(line)
		if !v.matchesFilter(entry) {
			continue
		}
		select {
		case entries <- entry:
		case <-ctx.Done():
			return false
		}
	}
	return true
}

// tailer reads complete lines appended to a file, keeping partial lines
// buffered until their terminator arrives.
type tailer struct {
	path    string
	file    *os.File
	reader  *bufio.Reader
	partial string
}

func (t *tailer) open(seekEnd bool) error {
	f, err := os.Open(t.path)
	if err != nil {
		return err
	}
	if seekEnd {
		if _, err := f.Seek(0, io.SeekEnd); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to seek to end: %w", err)
		}
	}
	t.file = f
	t.reader = bufio.NewReader(f)
	t.partial = ""
	return nil
}

func (t *tailer) lines() []string {
	if t.reader == nil {
		return nil
	}

	var out []string
	for {
		chunk, err := t.reader.ReadString('\n')
		if err != nil {
			t.partial += chunk
			return out
		}
		line := strings.TrimSuffix(t.partial+chunk, "\n")
		t.partial = ""
		if line != "" {
			out = append(out, line)
		}
	}
}

func (t *tailer) close() {
	if t.file != nil {
		_ = t.file.Close()
	}
	t.file = nil
	t.reader = nil
}

// FormatEntry formats an entry for display.
func (v *Viewer) FormatEntry(entry ParsedEntry) string {
	if !entry.IsValid {
		return entry.Raw
	}

	timestamp := v.styles.Dim.Render(entry.Time.Local().Format("2006-01-02 15:04:05"))
	kind := v.styles.Kind(entry.Kind).Render(fmt.Sprintf("%-13s", entry.Kind))
	if entry.Detail == "" {
		return strings.TrimRight(fmt.Sprintf("%s %s", timestamp, kind), " ")
	}
	return fmt.Sprintf("%s %s %s", timestamp, kind, entry.Detail)
}

// Print prints entries to the output.
func (v *Viewer) Print(entries []ParsedEntry) {
	for _, entry := range entries {
		_, _ = fmt.Fprintln(v.out, v.FormatEntry(entry))
	}
}

// matchesFilter checks if an entry matches the configured filters.
func (v *Viewer) matchesFilter(entry ParsedEntry) bool {
	if v.config.Kind != "" && !strings.EqualFold(entry.Kind, v.config.Kind) {
		return false
	}
	if v.config.Pattern != nil && !v.config.Pattern.MatchString(entry.Raw) {
		return false
	}
	return true
}

package usagelog

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, path string, lines ...string) {
	t.Helper()
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l + "\n")
	}
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		valid  bool
		kind   string
		detail string
	}{
		{"skill", "2026-01-02T03:04:05.678Z | SKILL: commit", true, "SKILL", "commit"},
		{"agent", "2026-01-02T03:04:05.678Z | AGENT: Explore (find: usages)", true, "AGENT", "Explore (find: usages)"},
		{"session", "2026-01-02T03:04:05.678Z | SESSION_START", true, "SESSION_START", ""},
		{"no separator", "garbage line", false, "", ""},
		{"bad timestamp", "yesterday | TOOL: Read", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := ParseLine(tt.line)
			assert.Equal(t, tt.valid, entry.IsValid)
			assert.Equal(t, tt.kind, entry.Kind)
			assert.Equal(t, tt.detail, entry.Detail)
			assert.Equal(t, tt.line, entry.Raw)
		})
	}
}

func TestParseLine_Time(t *testing.T) {
	entry := ParseLine("2026-01-02T03:04:05.678Z | TOOL: Read")
	want := time.Date(2026, 1, 2, 3, 4, 5, 678_000_000, time.UTC)
	assert.True(t, want.Equal(entry.Time))
}

func TestViewer_Tail_LastN(t *testing.T) {
	// Given: a log with four entries
	path := filepath.Join(t.TempDir(), "usage.log")
	writeLog(t, path,
		"2026-01-01T00:00:00.000Z | SESSION_START",
		"2026-01-01T00:00:01.000Z | SKILL: review",
		"2026-01-01T00:00:02.000Z | COMMAND: /plan",
		"2026-01-01T00:00:03.000Z | TOOL: Read",
	)
	v := NewViewer(ViewerConfig{NoColor: true}, &bytes.Buffer{})

	// When: tailing the last two
	entries, err := v.Tail(path, 2)

	// Then: the newest two come back in file order
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "COMMAND", entries[0].Kind)
	assert.Equal(t, "TOOL", entries[1].Kind)
}

func TestViewer_Tail_KindFilterBeforeLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.log")
	writeLog(t, path,
		"2026-01-01T00:00:00.000Z | SKILL: a",
		"2026-01-01T00:00:01.000Z | TOOL: Read",
		"2026-01-01T00:00:02.000Z | SKILL: b",
		"2026-01-01T00:00:03.000Z | TOOL: Grep",
	)
	v := NewViewer(ViewerConfig{Kind: "skill", NoColor: true}, &bytes.Buffer{})

	entries, err := v.Tail(path, 10)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a", entries[0].Detail)
	assert.Equal(t, "b", entries[1].Detail)
}

func TestViewer_Tail_PatternFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.log")
	writeLog(t, path,
		"2026-01-01T00:00:00.000Z | AGENT: Explore (scan repo)",
		"2026-01-01T00:00:01.000Z | AGENT: Plan (draft)",
	)
	v := NewViewer(ViewerConfig{Pattern: regexp.MustCompile(`Explore`), NoColor: true}, &bytes.Buffer{})

	entries, err := v.Tail(path, 0)

	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Explore (scan repo)", entries[0].Detail)
}

func TestViewer_Tail_MissingFile(t *testing.T) {
	v := NewViewer(ViewerConfig{NoColor: true}, &bytes.Buffer{})

	entries, err := v.Tail(filepath.Join(t.TempDir(), "absent.log"), 10)

	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestViewer_TailFiles_BackupFirst(t *testing.T) {
	// Given: a rotated log and its backup
	dir := t.TempDir()
	path := filepath.Join(dir, "usage.log")
	writeLog(t, path+".old", "2026-01-01T00:00:00.000Z | SKILL: old")
	writeLog(t, path, "2026-01-01T00:00:05.000Z | SKILL: new")
	v := NewViewer(ViewerConfig{NoColor: true}, &bytes.Buffer{})

	// When: reading both generations
	entries, err := v.TailFiles([]string{path + ".old", path}, 0)

	// Then: output is chronological
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "old", entries[0].Detail)
	assert.Equal(t, "new", entries[1].Detail)
}

func TestViewer_FormatEntry_Plain(t *testing.T) {
	v := NewViewer(ViewerConfig{NoColor: true}, &bytes.Buffer{})

	formatted := v.FormatEntry(ParseLine("2026-01-01T00:00:00.000Z | SKILL: commit"))
	assert.Contains(t, formatted, "SKILL")
	assert.Contains(t, formatted, "commit")

	raw := v.FormatEntry(ParseLine("not a usage line"))
	assert.Equal(t, "not a usage line", raw)
}

func TestViewer_Print(t *testing.T) {
	buf := &bytes.Buffer{}
	v := NewViewer(ViewerConfig{NoColor: true}, buf)

	v.Print([]ParsedEntry{
		ParseLine("2026-01-01T00:00:00.000Z | SESSION_START"),
		ParseLine("2026-01-01T00:00:01.000Z | TOOL: Read"),
	})

	assert.Equal(t, 2, bytes.Count(buf.Bytes(), []byte("\n")))
	assert.Contains(t, buf.String(), "SESSION_START")
	assert.Contains(t, buf.String(), "Read")
}

func receive(t *testing.T, ch <-chan ParsedEntry) ParsedEntry {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for followed entry")
		return ParsedEntry{}
	}
}

func TestViewer_Follow_StreamsAppendsAcrossRotation(t *testing.T) {
	// Given: a log already past its threshold, being followed
	path := filepath.Join(t.TempDir(), "usage.log")
	l := New(Config{Path: path, MaxSize: 10})
	l.Record("2026-01-01T00:00:00.000Z | SKILL: before")

	v := NewViewer(ViewerConfig{NoColor: true}, &bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan ParsedEntry, 10)
	errCh := make(chan error, 1)
	go func() { errCh <- v.Follow(ctx, path, ch) }()
	time.Sleep(200 * time.Millisecond)

	// When: the next append rotates the log
	l.Record("2026-01-01T00:00:01.000Z | SKILL: after-rotation")

	// Then: the entry is read from the recreated file
	assert.Equal(t, "after-rotation", receive(t, ch).Detail)
	_, err := os.Stat(path + ".old")
	require.NoError(t, err)

	// When: appending again without rotation
	l.Record("2026-01-01T00:00:02.000Z | TOOL: Read")

	// Then: it is streamed too
	assert.Equal(t, "Read", receive(t, ch).Detail)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Follow did not return after cancel")
	}
}

func TestViewer_Follow_WaitsForMissingFile(t *testing.T) {
	// Given: a log that does not exist yet
	path := filepath.Join(t.TempDir(), ".claude", "usage.log")
	l := New(Config{Path: path})

	v := NewViewer(ViewerConfig{Kind: "SESSION_START", NoColor: true}, &bytes.Buffer{})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := make(chan ParsedEntry, 10)
	go func() { _ = v.Follow(ctx, path, ch) }()
	time.Sleep(200 * time.Millisecond)

	// When: the first entries are written
	l.Record("2026-01-01T00:00:00.000Z | TOOL: Read")
	l.Record("2026-01-01T00:00:01.000Z | SESSION_START")

	// Then: only the matching entry is delivered
	assert.Equal(t, "SESSION_START", receive(t, ch).Kind)
}

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dg-vibecoding/vibehooks/internal/config"
)

// isolate clears every environment input of the CLI and returns a fresh
// project directory.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("NO_COLOR", "1")
	t.Setenv(config.ProjectDirEnv, "")
	for _, key := range []string{
		"VIBEHOOKS_USAGE_LOG",
		"VIBEHOOKS_USAGE_MAX_SIZE",
		"VIBEHOOKS_USAGE_LOCK",
		"VIBEHOOKS_LOG_LEVEL",
		"VIBEHOOKS_DEBUG_LOG",
		"VIBEHOOKS_FORMAT_COMMAND",
		"VIBEHOOKS_TYPECHECK_COMMAND",
	} {
		t.Setenv(key, "")
	}
	return t.TempDir()
}

type result struct {
	stdout string
	stderr string
	code   int
}

// execute runs the CLI the way main does and captures its output.
func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	code := run(context.Background(), cmd, &stderr)
	return result{stdout: stdout.String(), stderr: stderr.String(), code: code}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

package execx

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dg-vibecoding/vibehooks/internal/errors"
)

func requireSh(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"npx prettier --write", []string{"npx", "prettier", "--write"}},
		{`npx tsc --noEmit -p "my project/tsconfig.json"`, []string{"npx", "tsc", "--noEmit", "-p", "my project/tsconfig.json"}},
		{`biome format --write 'src dir'`, []string{"biome", "format", "--write", "src dir"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Split(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplit_Empty(t *testing.T) {
	_, err := Split("   ")
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeConfigInvalid, errors.GetCode(err))
}

func TestExecRunner_CapturesOutput(t *testing.T) {
	requireSh(t)
	// Given: a command writing to both streams
	r := NewExecRunner(nil)

	// When: running it
	out, err := r.Run(context.Background(), Command{
		Argv: []string{"sh", "-c", "echo out; echo err >&2"},
	})

	// Then: both streams are captured
	require.NoError(t, err)
	assert.Equal(t, "out\n", out.Stdout)
	assert.Equal(t, "err\n", out.Stderr)
}

func TestExecRunner_UsesDir(t *testing.T) {
	requireSh(t)
	dir := t.TempDir()

	out, err := NewExecRunner(nil).Run(context.Background(), Command{Dir: dir, Argv: []string{"sh", "-c", "pwd -P"}})

	require.NoError(t, err)
	assert.NotEmpty(t, out.Stdout)
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	requireSh(t)

	out, err := NewExecRunner(nil).Run(context.Background(), Command{
		Argv: []string{"sh", "-c", "echo 'error TS2322: nope'; exit 3"},
	})

	require.Error(t, err)
	assert.Equal(t, 3, ExitCode(err))
	assert.Equal(t, errors.ErrCodeCommandFailed, errors.GetCode(err))
	assert.Contains(t, out.Stdout, "error TS2322")
}

func TestExecRunner_Timeout(t *testing.T) {
	requireSh(t)

	start := time.Now()
	_, err := NewExecRunner(nil).Run(context.Background(), Command{
		Argv:    []string{"sh", "-c", "sleep 5"},
		Timeout: 100 * time.Millisecond,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := NewExecRunner(nil).Run(context.Background(), Command{
		Argv: []string{"vibehooks-definitely-not-installed"},
	})

	require.Error(t, err)
	assert.Equal(t, -1, ExitCode(err))
}

func TestExecRunner_EmptyArgv(t *testing.T) {
	_, err := NewExecRunner(nil).Run(context.Background(), Command{})
	require.Error(t, err)
}

func TestOutput_Combined(t *testing.T) {
	assert.Equal(t, "a", Output{Stdout: "a", Stderr: "b"}.Combined())
	assert.Equal(t, "b", Output{Stderr: "b"}.Combined())
}

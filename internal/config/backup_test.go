package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupFile_Missing(t *testing.T) {
	path, err := BackupFile(filepath.Join(t.TempDir(), ".vibehooks.yaml"))

	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestBackupFile_CopiesContent(t *testing.T) {
	// Given: an existing project config
	path := filepath.Join(t.TempDir(), ".vibehooks.yaml")
	writeFile(t, path, "git:\n  log_count: 3\n")

	// When: backing it up
	backup, err := BackupFile(path)

	// Then: the backup holds the same bytes
	require.NoError(t, err)
	data, err := os.ReadFile(backup)
	require.NoError(t, err)
	assert.Equal(t, "git:\n  log_count: 3\n", string(data))
	assert.Contains(t, filepath.Base(backup), ".vibehooks.yaml.bak.")
}

func TestBackupFile_KeepsAtMostMaxBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".vibehooks.yaml")
	writeFile(t, path, "version: 1\n")

	for i := 0; i < MaxBackups+2; i++ {
		_, err := BackupFile(path)
		require.NoError(t, err)
	}

	backups, err := ListBackups(path)
	require.NoError(t, err)
	assert.Len(t, backups, MaxBackups)
}

func TestListBackups_NoDirectory(t *testing.T) {
	backups, err := ListBackups(filepath.Join(t.TempDir(), "missing", ".vibehooks.yaml"))

	require.NoError(t, err)
	assert.Empty(t, backups)
}

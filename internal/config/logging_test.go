package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneLogs_KeepsNewest(t *testing.T) {
	dir := t.TempDir()
	names := []string{
		"dataroom-2024-01-01T00-00-00.000.log",
		"dataroom-2024-01-02T00-00-00.000.log",
		"dataroom-2024-01-03T00-00-00.000.log",
	}
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, n), nil, 0o644))
	}

	require.NoError(t, pruneLogs(dir, 2))

	left, err := filepath.Glob(filepath.Join(dir, logFilePattern))
	require.NoError(t, err)
	assert.Len(t, left, 2)
	assert.NoFileExists(t, filepath.Join(dir, names[0]))
}

func TestNewLogger_WithLogDir(t *testing.T) {
	dir := t.TempDir()
	logger, closer, err := NewLogger(&Config{Environment: "test", LogDir: dir, LogMaxFiles: 3})
	require.NoError(t, err)
	defer closer.Close()

	logger.Info("hello")

	files, err := filepath.Glob(filepath.Join(dir, logFilePattern))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

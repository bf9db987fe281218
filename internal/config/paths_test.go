package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaths(t *testing.T) {
	t.Run("relative directories resolve against executable dir", func(t *testing.T) {
		paths, err := GetPaths(PathsConfig{DataDir: "data", LogsDir: "logs"})
		require.NoError(t, err)

		assert.True(t, filepath.IsAbs(paths.ExecutableDir), "ExecutableDir should be absolute")
		assert.Equal(t, filepath.Join(paths.ExecutableDir, "data"), paths.DataDir)
		assert.Equal(t, filepath.Join(paths.ExecutableDir, "logs"), paths.LogsDir)
	})

	t.Run("absolute directories are kept", func(t *testing.T) {
		dir := t.TempDir()
		paths, err := GetPaths(PathsConfig{DataDir: dir, LogsDir: filepath.Join(dir, "logs")})
		require.NoError(t, err)

		assert.Equal(t, dir, paths.DataDir)
		assert.Equal(t, filepath.Join(dir, "logs"), paths.LogsDir)
	})
}

func TestPaths_Artifacts(t *testing.T) {
	dir := t.TempDir()
	paths := NewPaths(dir)

	assert.Equal(t, filepath.Join(dir, "matches.csv"), paths.ArtifactPath(MatchesFile))
	assert.Equal(t, filepath.Join(dir, "dataset_raw.csv"), paths.RawDatasetPath())
	assert.Equal(t, filepath.Join(dir, "dataset_cleaned.csv"), paths.CleanedDatasetPath())
	assert.Equal(t, filepath.Join(paths.LogsDir, "app.log"), paths.GetLogPath("app.log"))
}

func TestPaths_EnsureDirectories(t *testing.T) {
	root := t.TempDir()
	paths := &Paths{
		DataDir: filepath.Join(root, "nested", "data"),
		LogsDir: filepath.Join(root, "nested", "logs"),
	}

	require.NoError(t, paths.EnsureDirectories())
	assert.DirExists(t, paths.DataDir)
	assert.DirExists(t, paths.LogsDir)

	// idempotent
	require.NoError(t, paths.EnsureDirectories())
}

package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaths(t *testing.T) {
	p := NewPaths("/project")
	assert.Equal(t, filepath.Join("/project", ".flashtext"), p.Root)
	assert.Equal(t, filepath.Join("/project", ".flashtext", "flashtext.db"), p.DB)
	assert.Equal(t, filepath.Join("/project", ".flashtext", "log"), p.LogDir)
	assert.Equal(t, filepath.Join("/project", ".flashtext", "log", "daemon.log"), p.DaemonLog)
	assert.Equal(t, filepath.Join("/project", ".flashtext", "run"), p.RunDir)
	assert.Equal(t, filepath.Join("/project", ".flashtext", "run", "daemon.pid"), p.PIDFile)
	assert.Equal(t, filepath.Join("/project", ".flashtext", "run", "http.port"), p.HTTPPortFile)
	assert.Equal(t, filepath.Join("/project", ".flashtext", "dicts"), p.DictDir)
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	p := NewPaths(dir)

	// First call creates directories.
	require.NoError(t, p.EnsureDirs())
	for _, d := range []string{p.Root, p.LogDir, p.RunDir, p.DictDir} {
		info, err := os.Stat(d)
		require.NoError(t, err, "dir %s should exist", d)
		assert.True(t, info.IsDir())
	}

	// Second call is idempotent.
	require.NoError(t, p.EnsureDirs())
}

func TestCleanEphemeral(t *testing.T) {
	p := NewPaths(t.TempDir())
	require.NoError(t, p.EnsureDirs())
	require.NoError(t, os.WriteFile(p.PIDFile, []byte("123"), 0644))

	p.CleanEphemeral()
	_, err := os.Stat(p.PIDFile)
	assert.True(t, os.IsNotExist(err))

	// Missing file is fine.
	p.CleanEphemeral()
}

func TestInitLog(t *testing.T) {
	logger, err := InitLog("")
	require.NoError(t, err)
	require.NotNil(t, logger)
	logger.Close()

	logFile := filepath.Join(t.TempDir(), "daemon.log")
	logger, err = InitLog(logFile)
	require.NoError(t, err)
	logger.Info("hello from the test")
	logger.Flush()
	logger.Close()

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the test")
	assert.Contains(t, string(data), "INFO")
}

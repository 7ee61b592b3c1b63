package logging

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileHook_WritesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "gpstrack.log")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))

	logger := log.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(log.DebugLevel)
	logger.AddHook(NewFileHook(path, 7))

	logger.Info("[Pipeline] run finished")

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "[Pipeline] run finished")
	assert.Contains(t, string(b), "level=info")
}

func TestConfigure_SetsLevelAndCreatesDirectory(t *testing.T) {
	defer log.StandardLogger().ReplaceHooks(make(log.LevelHooks))
	defer log.SetLevel(log.InfoLevel)

	path := filepath.Join(t.TempDir(), "nested", "dir", "gpstrack.log")
	require.NoError(t, Configure(log.WarnLevel, path, 1))

	assert.Equal(t, log.WarnLevel, log.GetLevel())
	_, err := os.Stat(filepath.Dir(path))
	assert.NoError(t, err)
}

func TestConfigure_ConsoleOnly(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)
	require.NoError(t, Configure(log.DebugLevel, "", 0))
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}

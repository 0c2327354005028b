package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoader_Defaults(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir()) // no config file in reach

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "eng", cfg.Extraction.Language)
	assert.InDelta(t, 2.2, cfg.Preprocess.LightText.Contrast, 1e-9)
}

func TestLoader_ReadsConfigFile(t *testing.T) {
	resetViper(t)
	dir := t.TempDir()
	content := `log_level: debug
extraction:
  top_app_limit: 5
server:
  port: 9090
batch:
  workers: 2
`
	path := filepath.Join(dir, "screentime.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Chdir(dir)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5, cfg.Extraction.TopAppLimit)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 2, cfg.Batch.Workers)
	// Untouched keys keep their defaults.
	assert.Equal(t, "text", cfg.Output.Format)
}

func TestLoader_EnvironmentOverride(t *testing.T) {
	resetViper(t)
	t.Chdir(t.TempDir())
	t.Setenv("SCREENTIME_LOG_LEVEL", "warn")
	t.Setenv("SCREENTIME_SERVER_PORT", "3000")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoader_LoadWithFile(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("verbose: true\n"), 0o600))

	loader := NewLoader()
	cfg, err := loader.LoadWithFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, path, loader.GetConfigFileUsed())
}

func TestLoader_LoadWithFile_Missing(t *testing.T) {
	resetViper(t)
	_, err := NewLoader().LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorContains(t, err, "config file does not exist")
}

func TestLoader_InvalidValuesRejected(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: loud\n"), 0o600))

	_, err := NewLoader().LoadWithFile(path)
	require.ErrorContains(t, err, "configuration validation failed")
}

func TestGenerateDefaultConfigFile(t *testing.T) {
	resetViper(t)
	path := filepath.Join(t.TempDir(), "generated.yaml")
	require.NoError(t, GenerateDefaultConfigFile(path))

	resetViper(t)
	cfg, err := NewLoader().LoadWithFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestGetConfigSearchPaths(t *testing.T) {
	paths := GetConfigSearchPaths()
	assert.Contains(t, paths, ".")
	assert.Contains(t, paths, "/etc/screentime")
}

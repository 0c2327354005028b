package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/screentime/internal/chart"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "eng", cfg.Extraction.Language)
	assert.Equal(t, 3, cfg.Extraction.TopAppLimit)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Positive(t, cfg.Batch.Workers)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }},
		{"zero top app limit", func(c *Config) { c.Extraction.TopAppLimit = 0 }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"zero workers", func(c *Config) { c.Batch.Workers = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestExtractConfig_Defaults(t *testing.T) {
	cfg := DefaultConfig()
	ec, err := cfg.ExtractConfig()
	require.NoError(t, err)
	assert.Equal(t, 3, ec.TopAppLimit)
	assert.NotNil(t, ec.Calibration)
	assert.InDelta(t, 2.0, ec.Normal.Contrast, 1e-9)
}

func TestExtractConfig_CustomCalibration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.yaml")
	require.NoError(t, chart.WriteCalibration(chart.DefaultCalibration(), path))

	cfg := DefaultConfig()
	cfg.Extraction.CalibrationFile = path
	ec, err := cfg.ExtractConfig()
	require.NoError(t, err)
	require.NotNil(t, ec.Calibration)
	require.NoError(t, ec.Calibration.Validate())

	cfg.Extraction.CalibrationFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = cfg.ExtractConfig()
	require.ErrorContains(t, err, "loading calibration")
}

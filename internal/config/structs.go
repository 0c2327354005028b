// Package config defines the application configuration and its loading
// from files, environment variables, and command-line flags.
package config

import (
	"fmt"
	"runtime"

	"github.com/MeKo-Tech/screentime/internal/chart"
	"github.com/MeKo-Tech/screentime/internal/extract"
	"github.com/MeKo-Tech/screentime/internal/preprocess"
)

// Config represents the complete configuration for the screentime
// application. It covers all commands (overall, category, batch, serve)
// and supports loading from configuration files, environment variables,
// and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Extraction settings
	Extraction ExtractionConfig `mapstructure:"extraction" yaml:"extraction" json:"extraction"`

	// Preprocessing passes fed to the OCR engine
	Preprocess PreprocessConfig `mapstructure:"preprocess" yaml:"preprocess" json:"preprocess"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`

	// Batch processing configuration
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`
}

// ExtractionConfig contains extraction pipeline settings.
type ExtractionConfig struct {
	// Language is the Tesseract language code.
	Language string `mapstructure:"language" yaml:"language" json:"language"`
	// TopAppLimit caps the most-used app list of overall summaries.
	TopAppLimit int `mapstructure:"top_app_limit" yaml:"top_app_limit" json:"top_app_limit"`
	// CalibrationFile optionally points to a YAML color calibration for
	// themes the built-in table does not match.
	CalibrationFile string `mapstructure:"calibration_file" yaml:"calibration_file" json:"calibration_file"`
}

// PreprocessConfig contains the two binarization passes.
type PreprocessConfig struct {
	Normal    preprocess.Settings `mapstructure:"normal" yaml:"normal" json:"normal"`
	LightText preprocess.Settings `mapstructure:"light_text" yaml:"light_text" json:"light_text"`
}

// OutputConfig contains output formatting settings.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format" json:"format"`
	File   string `mapstructure:"file" yaml:"file" json:"file"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string `mapstructure:"host" yaml:"host" json:"host"`
	Port            int    `mapstructure:"port" yaml:"port" json:"port"`
	MaxUploadMB     int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	TimeoutSec      int    `mapstructure:"timeout_sec" yaml:"timeout_sec" json:"timeout_sec"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout" json:"shutdown_timeout"`
}

// BatchConfig contains batch processing settings.
type BatchConfig struct {
	Workers         int  `mapstructure:"workers" yaml:"workers" json:"workers"`
	Recursive       bool `mapstructure:"recursive" yaml:"recursive" json:"recursive"`
	ContinueOnError bool `mapstructure:"continue_on_error" yaml:"continue_on_error" json:"continue_on_error"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Verbose:  false,
		Extraction: ExtractionConfig{
			Language:    "eng",
			TopAppLimit: 3,
		},
		Preprocess: PreprocessConfig{
			Normal:    preprocess.Normal(),
			LightText: preprocess.LightText(),
		},
		Output: OutputConfig{
			Format: "text",
		},
		Server: ServerConfig{
			Host:            "localhost",
			Port:            8080,
			MaxUploadMB:     50,
			TimeoutSec:      30,
			ShutdownTimeout: 10,
		},
		Batch: BatchConfig{
			Workers:         runtime.NumCPU(),
			ContinueOnError: true,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %q", c.LogLevel)
	}
	switch c.Output.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("invalid output format: %q", c.Output.Format)
	}
	if c.Extraction.TopAppLimit <= 0 {
		return fmt.Errorf("top_app_limit must be positive, got %d", c.Extraction.TopAppLimit)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Batch.Workers <= 0 {
		return fmt.Errorf("batch workers must be positive, got %d", c.Batch.Workers)
	}
	return nil
}

// ExtractConfig assembles the extraction configuration, loading a
// custom calibration file when one is set. The OCR engine is left for
// the caller to attach.
func (c *Config) ExtractConfig() (extract.Config, error) {
	cfg := extract.DefaultConfig()
	cfg.Normal = c.Preprocess.Normal
	cfg.LightText = c.Preprocess.LightText
	cfg.TopAppLimit = c.Extraction.TopAppLimit

	if c.Extraction.CalibrationFile != "" {
		cal, err := chart.LoadCalibration(c.Extraction.CalibrationFile)
		if err != nil {
			return extract.Config{}, fmt.Errorf("loading calibration: %w", err)
		}
		cfg.Calibration = cal
	}
	return cfg, nil
}

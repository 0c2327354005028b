package batch

import (
	"fmt"
	"runtime"
	"time"
)

// Mode selects which kind of screenshot a batch run expects.
type Mode string

const (
	// ModeOverall treats every input as an overall summary screenshot.
	ModeOverall Mode = "overall"
	// ModeCategory treats every input as a category detail screenshot.
	ModeCategory Mode = "category"
)

// Config holds all configuration for batch processing.
type Config struct {
	// Mode decides which extraction runs per image.
	Mode Mode

	// Output settings
	Format     string
	OutputFile string

	// Parallel processing settings
	Workers int

	// File discovery settings
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Error handling: when true, a failed image is recorded and the run
	// continues; when false the run stops at the first failure.
	ContinueOnError bool

	// Progress settings
	Quiet     bool
	ShowStats bool
}

// DefaultConfig returns a batch configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Mode:            ModeOverall,
		Format:          "text",
		Workers:         runtime.NumCPU(),
		ContinueOnError: true,
	}
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	switch c.Mode {
	case ModeOverall, ModeCategory:
	default:
		return fmt.Errorf("invalid batch mode: %q", c.Mode)
	}
	switch c.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("invalid output format: %q (want text, json or csv)", c.Format)
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}

// Stats summarizes a finished batch run.
type Stats struct {
	TotalImages   int
	Processed     int
	Failed        int
	WorkerCount   int
	TotalDuration time.Duration
	AveragePer    time.Duration
	Throughput    float64
}

// CalculateStats derives run statistics from per-file results.
func CalculateStats(files []FileResult, duration time.Duration, workers int) Stats {
	stats := Stats{
		TotalImages:   len(files),
		WorkerCount:   workers,
		TotalDuration: duration,
	}
	for _, f := range files {
		if f.Err != nil {
			stats.Failed++
		} else {
			stats.Processed++
		}
	}
	if stats.TotalImages > 0 {
		stats.AveragePer = duration / time.Duration(stats.TotalImages)
	}
	if secs := duration.Seconds(); secs > 0 {
		stats.Throughput = float64(stats.TotalImages) / secs
	}
	return stats
}

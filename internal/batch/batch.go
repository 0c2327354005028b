// Package batch runs screen-time extraction over many screenshots at
// once: file discovery, a worker pool, per-file error isolation, and
// aggregate output formatting.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/MeKo-Tech/screentime/internal/extract"
)

// Result holds the outcome of a batch run.
type Result struct {
	Files       []FileResult
	Duration    time.Duration
	WorkerCount int
}

// ProcessBatch discovers screenshots under the given paths and extracts
// them in parallel with the given configuration.
func ProcessBatch(ctx context.Context, ex *extract.Extractor, paths []string, config Config) (*Result, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	files, err := discoverImageFiles(paths, config.Recursive, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover image files: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no image files found")
	}

	startTime := time.Now()
	results := processImagesParallel(ctx, ex, config.Mode, files, config.Workers)
	duration := time.Since(startTime)

	if !config.ContinueOnError {
		for _, r := range results {
			if r.Err != nil {
				return nil, fmt.Errorf("batch processing failed on %s: %w", r.Path, r.Err)
			}
		}
	}

	return &Result{
		Files:       results,
		Duration:    duration,
		WorkerCount: config.Workers,
	}, nil
}

// FormatResults renders the batch results in the specified format.
func (r *Result) FormatResults(format string) (string, error) {
	return formatBatchResults(r.Files, format)
}

// SaveResults writes the formatted results to a file or stdout.
func (r *Result) SaveResults(format, outputFile string, quiet bool) error {
	output, err := r.FormatResults(format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(os.Stdout, "Results written to %s\n", outputFile)
		}
	} else {
		_, _ = fmt.Fprint(os.Stdout, output)
	}

	return nil
}

// PrintStats prints processing statistics.
func (r *Result) PrintStats(quiet bool) {
	if quiet {
		return
	}
	stats := CalculateStats(r.Files, r.Duration, r.WorkerCount)
	_, _ = fmt.Fprintf(os.Stdout, "\nProcessing Statistics:\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Total images: %d\n", stats.TotalImages)
	_, _ = fmt.Fprintf(os.Stdout, "  Processed: %d\n", stats.Processed)
	_, _ = fmt.Fprintf(os.Stdout, "  Failed: %d\n", stats.Failed)
	_, _ = fmt.Fprintf(os.Stdout, "  Workers: %d\n", stats.WorkerCount)
	_, _ = fmt.Fprintf(os.Stdout, "  Duration: %v\n", stats.TotalDuration.Round(time.Millisecond))
	_, _ = fmt.Fprintf(os.Stdout, "  Avg per image: %v\n", stats.AveragePer.Round(time.Millisecond))
	_, _ = fmt.Fprintf(os.Stdout, "  Throughput: %.1f images/sec\n", stats.Throughput)
}

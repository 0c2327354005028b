package batch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/MeKo-Tech/screentime/internal/extract"
)

// FileResult holds the outcome of one screenshot. Exactly one of
// Overall and Category is set on success; Err records a per-file
// failure without aborting the batch.
type FileResult struct {
	Path     string                  `json:"file"`
	Overall  *extract.Result         `json:"overall,omitempty"`
	Category *extract.CategoryDetail `json:"category,omitempty"`
	Err      error                   `json:"-"`
	Error    string                  `json:"error,omitempty"`
}

// fileJob is a single unit of work for the pool.
type fileJob struct {
	index int
	path  string
}

// processImagesParallel runs extraction over all files using a worker
// pool. Results come back in input order; every failure is isolated to
// its own FileResult.
func processImagesParallel(ctx context.Context, ex *extract.Extractor,
	mode Mode, paths []string, workers int) []FileResult {
	results := make([]FileResult, len(paths))

	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan fileJob, len(paths))

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					results[job.index] = FileResult{Path: job.path, Err: ctx.Err(), Error: ctx.Err().Error()}
					continue
				default:
				}
				results[job.index] = processSingleImage(ex, mode, job.path)
			}
		}()
	}

	for i, path := range paths {
		jobs <- fileJob{index: i, path: path}
	}
	close(jobs)
	wg.Wait()

	return results
}

// processSingleImage runs one extraction and folds the error into the
// result record.
func processSingleImage(ex *extract.Extractor, mode Mode, path string) FileResult {
	res := FileResult{Path: path}

	var err error
	switch mode {
	case ModeCategory:
		res.Category, err = ex.CategoryDetail(path)
	default:
		res.Overall, err = ex.Overall(path)
	}
	if err != nil {
		slog.Warn("extraction failed", "file", path, "error", err)
		res.Err = err
		res.Error = err.Error()
	}
	return res
}

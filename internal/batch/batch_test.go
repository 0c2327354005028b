package batch

import (
	"context"
	"encoding/json"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/screentime/internal/extract"
	"github.com/MeKo-Tech/screentime/internal/testutil"
)

// constEngine returns the same text on every call. Unlike the scripted
// fake it is safe for the worker pool's concurrent calls.
type constEngine string

func (e constEngine) Recognize(_ image.Image) (string, error) {
	return string(e), nil
}

const summaryText = `Yesterday, 21 August
Screen Time
3h 45m
Social Entertainment
2h 10m 1h 5m
Most Used
Instagram
2h 10m
`

const detailText = `Entertainment
Screen Time
4h 30m
Apps & Websites
YouTube 2h 15m
Limits
`

func newBatchExtractor(t *testing.T, text string) *extract.Extractor {
	t.Helper()
	cfg := extract.DefaultConfig()
	cfg.Engine = constEngine(text)
	ex, err := extract.New(cfg)
	require.NoError(t, err)
	return ex
}

func writeScreenshots(t *testing.T, names ...string) (dir string, paths []string) {
	t.Helper()
	dir = t.TempDir()
	spec := testutil.DefaultChartSpec()
	spec.Bars = []testutil.Bar{{Slot: 9, Top1: 120}}
	img := testutil.RenderChart(spec)
	saved := testutil.WriteTempPNG(t, img, "shot.png")
	data, err := os.ReadFile(saved)
	require.NoError(t, err)
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
		require.NoError(t, os.WriteFile(path, data, 0o600))
		paths = append(paths, path)
	}
	return dir, paths
}

func TestDiscoverImageFiles(t *testing.T) {
	dir, _ := writeScreenshots(t, "b.png", "a.jpg", "sub/c.png")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))

	files, err := discoverImageFiles([]string{dir}, false, nil, nil)
	require.NoError(t, err)
	require.Len(t, files, 2, "non-recursive skips subdirectories")
	assert.Equal(t, filepath.Join(dir, "a.jpg"), files[0], "results sorted")

	files, err = discoverImageFiles([]string{dir}, true, nil, nil)
	require.NoError(t, err)
	assert.Len(t, files, 3)

	files, err = discoverImageFiles([]string{dir}, true, []string{"*.png"}, nil)
	require.NoError(t, err)
	assert.Len(t, files, 2)

	files, err = discoverImageFiles([]string{dir}, true, nil, []string{"b.*"})
	require.NoError(t, err)
	assert.Len(t, files, 2)

	_, err = discoverImageFiles([]string{filepath.Join(dir, "missing")}, false, nil, nil)
	require.Error(t, err)
}

func TestProcessBatch_Overall(t *testing.T) {
	dir, paths := writeScreenshots(t, "one.png", "two.png")
	ex := newBatchExtractor(t, summaryText)

	cfg := DefaultConfig()
	cfg.Workers = 4
	res, err := ProcessBatch(context.Background(), ex, []string{dir}, cfg)
	require.NoError(t, err)

	require.Len(t, res.Files, 2)
	for i, file := range res.Files {
		assert.Equal(t, paths[i], file.Path)
		require.NoError(t, file.Err)
		require.NotNil(t, file.Overall)
		assert.Equal(t, 3, file.Overall.TotalTime.Hours)
		assert.Equal(t, 120, file.Overall.Hourly["9am"].Overall)
	}
}

func TestProcessBatch_CategoryMode(t *testing.T) {
	_, paths := writeScreenshots(t, "detail.png")
	ex := newBatchExtractor(t, detailText)

	cfg := DefaultConfig()
	cfg.Mode = ModeCategory
	cfg.Workers = 1
	res, err := ProcessBatch(context.Background(), ex, paths, cfg)
	require.NoError(t, err)

	require.Len(t, res.Files, 1)
	require.NotNil(t, res.Files[0].Category)
	assert.Nil(t, res.Files[0].Overall)
	assert.Equal(t, "Entertainment", res.Files[0].Category.Category)
}

func TestProcessBatch_IsolatesFailures(t *testing.T) {
	dir, paths := writeScreenshots(t, "good.png")
	broken := filepath.Join(dir, "broken.png")
	require.NoError(t, os.WriteFile(broken, []byte("not a png"), 0o600))
	ex := newBatchExtractor(t, summaryText)

	cfg := DefaultConfig()
	cfg.Workers = 1
	res, err := ProcessBatch(context.Background(), ex, []string{dir}, cfg)
	require.NoError(t, err)

	require.Len(t, res.Files, 2)
	byPath := map[string]FileResult{}
	for _, f := range res.Files {
		byPath[f.Path] = f
	}
	require.Error(t, byPath[broken].Err)
	assert.NotEmpty(t, byPath[broken].Error)
	assert.NoError(t, byPath[paths[0]].Err)
	assert.NotNil(t, byPath[paths[0]].Overall)
}

func TestProcessBatch_StopOnError(t *testing.T) {
	dir, _ := writeScreenshots(t, "good.png")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("junk"), 0o600))
	ex := newBatchExtractor(t, summaryText)

	cfg := DefaultConfig()
	cfg.Workers = 1
	cfg.ContinueOnError = false
	_, err := ProcessBatch(context.Background(), ex, []string{dir}, cfg)
	require.ErrorContains(t, err, "batch processing failed")
}

func TestProcessBatch_NoFiles(t *testing.T) {
	ex := newBatchExtractor(t, summaryText)
	_, err := ProcessBatch(context.Background(), ex, []string{t.TempDir()}, DefaultConfig())
	require.ErrorContains(t, err, "no image files found")
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	bad := DefaultConfig()
	bad.Mode = "pdf"
	require.Error(t, bad.Validate())

	bad = DefaultConfig()
	bad.Format = "xml"
	require.Error(t, bad.Validate())

	zero := DefaultConfig()
	zero.Workers = 0
	require.NoError(t, zero.Validate())
	assert.Positive(t, zero.Workers)
}

func TestFormatResults_CSV(t *testing.T) {
	_, paths := writeScreenshots(t, "shot.png")
	ex := newBatchExtractor(t, summaryText)

	cfg := DefaultConfig()
	cfg.Workers = 1
	res, err := ProcessBatch(context.Background(), ex, paths, cfg)
	require.NoError(t, err)

	out, err := res.FormatResults("csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "File,"+paths[0], lines[0])
	assert.Equal(t, "Hour,Overall,Social,Entertainment", lines[1])
	assert.Equal(t, "12am,0,0,0", lines[2])
	assert.Contains(t, out, "9am,120,120,0")
	assert.Contains(t, out, "Category,Time\nSocial,2h 10m\nEntertainment,1h 5m\n")
	assert.Contains(t, out, "App,Time\nInstagram,2h 10m\n")
}

func TestFormatResults_CSV_PinnedHourlyColumns(t *testing.T) {
	// Entertainment outranks Social here, so the breakdown sorts it
	// first, but the hourly table keeps its fixed column order.
	flipped := "Screen Time\n4h\nEntertainment Social\n3h 30m 30m\n"
	_, paths := writeScreenshots(t, "shot.png")
	ex := newBatchExtractor(t, flipped)

	cfg := DefaultConfig()
	cfg.Workers = 1
	res, err := ProcessBatch(context.Background(), ex, paths, cfg)
	require.NoError(t, err)

	out, err := res.FormatResults("csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Equal(t, "Hour,Overall,Social,Entertainment", lines[1])
	assert.Contains(t, out, "9am,120,0,120", "top1 pixels belong to Entertainment, first on screen")
	assert.Contains(t, out, "Category,Time\nEntertainment,3h 30m\nSocial,0h 30m\n")
}

func TestFormatResults_JSONAndText(t *testing.T) {
	_, paths := writeScreenshots(t, "shot.png")
	ex := newBatchExtractor(t, summaryText)

	cfg := DefaultConfig()
	cfg.Workers = 1
	res, err := ProcessBatch(context.Background(), ex, paths, cfg)
	require.NoError(t, err)

	out, err := res.FormatResults("json")
	require.NoError(t, err)
	var doc struct {
		Images []FileResult `json:"images"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.Len(t, doc.Images, 1)
	assert.Equal(t, paths[0], doc.Images[0].Path)

	text, err := res.FormatResults("text")
	require.NoError(t, err)
	assert.Contains(t, text, "# "+paths[0])
	assert.Contains(t, text, "Total: 3h 45m")
	assert.Contains(t, text, "Instagram: 2h 10m")
}

func TestSaveResults_WritesFile(t *testing.T) {
	res := &Result{Files: []FileResult{{Path: "x.png", Err: os.ErrNotExist, Error: "gone"}}}
	out := filepath.Join(t.TempDir(), "out.txt")

	require.NoError(t, res.SaveResults("text", out, true))
	testutil.RequireFileExists(t, out)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "error: gone")
}

func TestCalculateStats(t *testing.T) {
	files := []FileResult{{Path: "a"}, {Path: "b", Err: os.ErrInvalid}}
	stats := CalculateStats(files, 2*time.Second, 3)
	assert.Equal(t, 2, stats.TotalImages)
	assert.Equal(t, 1, stats.Processed)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, 3, stats.WorkerCount)
	assert.Equal(t, time.Second, stats.AveragePer)
	assert.InDelta(t, 1.0, stats.Throughput, 1e-9)
}

// Package extract orchestrates the full screenshot pipeline: OCR text
// over two preprocessing passes, section segmentation, and pixel
// analysis of the hourly chart, combined into one structured result.
package extract

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sort"

	"github.com/disintegration/imaging"

	"github.com/MeKo-Tech/screentime/internal/chart"
	"github.com/MeKo-Tech/screentime/internal/ocr"
	"github.com/MeKo-Tech/screentime/internal/preprocess"
	"github.com/MeKo-Tech/screentime/internal/segment"
	"github.com/MeKo-Tech/screentime/internal/utils"
)

// binOrder maps the category breakdown's on-screen order onto chart
// color bins: the first listed category owns the top1 color, and so on.
var binOrder = []string{chart.BinTop1, chart.BinTop2, chart.BinTop3}

// Config holds everything an Extractor needs. The zero value is not
// usable; start from DefaultConfig and set an Engine.
type Config struct {
	Calibration *chart.Calibration
	Normal      preprocess.Settings
	LightText   preprocess.Settings
	Engine      ocr.Engine
	// TopAppLimit caps the most-used app list of overall summaries.
	TopAppLimit int
}

// DefaultConfig returns the stock calibration and preprocessing passes.
// The OCR engine must still be provided by the caller.
func DefaultConfig() Config {
	return Config{
		Calibration: chart.DefaultCalibration(),
		Normal:      preprocess.Normal(),
		LightText:   preprocess.LightText(),
		TopAppLimit: 3,
	}
}

// Extractor extracts structured screen-time data from screenshots.
// It is safe for concurrent use when its Engine is.
type Extractor struct {
	cfg Config
}

// New validates the configuration and returns an Extractor.
func New(cfg Config) (*Extractor, error) {
	if cfg.Engine == nil {
		return nil, errors.New("extract: OCR engine is required")
	}
	if cfg.Calibration == nil {
		cfg.Calibration = chart.DefaultCalibration()
	}
	if err := cfg.Calibration.Validate(); err != nil {
		return nil, fmt.Errorf("extract: invalid calibration: %w", err)
	}
	if cfg.TopAppLimit <= 0 {
		cfg.TopAppLimit = 3
	}
	return &Extractor{cfg: cfg}, nil
}

// Overall extracts the full summary record from an overall screenshot
// on disk.
func (e *Extractor) Overall(path string) (*Result, error) {
	img, meta, err := utils.LoadImage(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded screenshot",
		"path", meta.Path, "format", meta.Format,
		"width", meta.Width, "height", meta.Height)
	return e.OverallImage(img)
}

// OverallImage extracts the full summary record from an in-memory
// screenshot.
func (e *Extractor) OverallImage(img image.Image) (*Result, error) {
	lines, err := e.recognizeAll(img)
	if err != nil {
		return nil, err
	}

	date, yesterday := segment.DateHeader(lines)
	total := segment.TotalTime(lines)
	categories := segment.Categories(lines)

	names, occurrences := segment.TopAppOccurrences(lines)
	topApps := segment.MatchAppTimes(names, occurrences,
		segment.DurationIndex(lines), e.cfg.TopAppLimit)

	result := &Result{
		Date:        date,
		IsYesterday: yesterday,
		TotalTime:   total,
		Categories:  make([]CategoryUsage, 0, len(categories)),
		TopApps:     make([]AppUsage, 0, len(topApps)),
		Hourly:      make(map[string]HourUsage, len(chart.HourLabels)),
	}
	for _, app := range topApps {
		result.TopApps = append(result.TopApps, AppUsage{Name: app.Name, Time: app.Time})
	}

	// Hourly chart. The breakdown's source order decides which bin each
	// category owns; that mapping must happen before the list is sorted.
	binNames := make(map[string]string, len(binOrder))
	for i, c := range categories {
		if i >= len(binOrder) {
			break
		}
		binNames[binOrder[i]] = c.Name
	}

	nrgba := imaging.Clone(img)
	geo := chart.Detect(nrgba, e.cfg.Calibration)
	slots := chart.Aggregate(nrgba, geo, e.cfg.Calibration)
	for label, usage := range slots {
		hour := HourUsage{Overall: usage.Overall, Categories: map[string]int{}}
		for bin, count := range usage.Bins {
			if name, ok := binNames[bin]; ok {
				hour.Categories[name] = count
			}
		}
		result.Hourly[label] = hour
	}
	if geo.Valid() {
		ymax := geo.YMaxPixels
		result.YMaxPixels = &ymax
	} else {
		slog.Debug("hourly chart not found, emitting zero slots")
	}

	for _, c := range categories {
		result.Categories = append(result.Categories, CategoryUsage{Name: c.Name, Time: c.Time})
	}
	sortCategories(result.Categories)

	return result, nil
}

// CategoryDetail extracts the per-app breakdown from a category detail
// screenshot on disk.
func (e *Extractor) CategoryDetail(path string) (*CategoryDetail, error) {
	img, _, err := utils.LoadImage(path)
	if err != nil {
		return nil, err
	}
	return e.CategoryDetailImage(img)
}

// CategoryDetailImage extracts the per-app breakdown from an in-memory
// category detail screenshot.
func (e *Extractor) CategoryDetailImage(img image.Image) (*CategoryDetail, error) {
	lines, err := e.recognizeAll(img)
	if err != nil {
		return nil, err
	}

	apps := segment.CategoryApps(lines)
	result := &CategoryDetail{
		Category:  segment.DetectCategory(lines),
		TotalTime: segment.TotalTime(lines),
		Apps:      make([]AppUsage, 0, len(apps)),
	}
	for _, app := range apps {
		result.Apps = append(result.Apps, AppUsage{Name: app.Name, Time: app.Time})
	}
	return result, nil
}

// recognizeAll runs every preprocessing pass through the OCR engine and
// merges the outputs into one line stream. Both passes always run; text
// legible in one is routinely garbage in the other.
func (e *Extractor) recognizeAll(img image.Image) ([]string, error) {
	var texts []string
	for _, settings := range []preprocess.Settings{e.cfg.Normal, e.cfg.LightText} {
		text, err := e.cfg.Engine.Recognize(preprocess.Binarize(img, settings))
		if err != nil {
			return nil, fmt.Errorf("ocr recognition failed: %w", err)
		}
		texts = append(texts, text)
	}
	return segment.MergeLines(texts...), nil
}

// sortCategories orders the breakdown descending by time, ties keeping
// on-screen order.
func sortCategories(categories []CategoryUsage) {
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Time.TotalMinutes() > categories[j].Time.TotalMinutes()
	})
}

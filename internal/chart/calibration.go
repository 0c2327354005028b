package chart

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Bin labels in chart-color priority order. The screen-time UI colors
// the tallest category blue, the second teal, and the third orange;
// the text parser decides which category name each slot belongs to.
const (
	BinTop1  = "top1"
	BinTop2  = "top2"
	BinTop3  = "top3"
	BinOther = "other"
)

// ChannelRange is an inclusive range for a single 8-bit color channel.
type ChannelRange struct {
	Min uint8 `mapstructure:"min" yaml:"min" json:"min"`
	Max uint8 `mapstructure:"max" yaml:"max" json:"max"`
}

// Contains reports whether v falls inside the range.
func (r ChannelRange) Contains(v uint8) bool {
	return v >= r.Min && v <= r.Max
}

// ColorBin is one calibrated color class of the hourly chart.
type ColorBin struct {
	Label string       `mapstructure:"label" yaml:"label" json:"label"`
	R     ChannelRange `mapstructure:"r" yaml:"r" json:"r"`
	G     ChannelRange `mapstructure:"g" yaml:"g" json:"g"`
	B     ChannelRange `mapstructure:"b" yaml:"b" json:"b"`

	// MaxChannelDiff, when positive, additionally requires the mutual
	// difference between channels to stay below it (near-gray bins).
	MaxChannelDiff int `mapstructure:"max_channel_diff" yaml:"max_channel_diff" json:"max_channel_diff"`
}

// Matches reports whether an RGB triple falls inside the bin.
func (b ColorBin) Matches(r, g, bl uint8) bool {
	if !b.R.Contains(r) || !b.G.Contains(g) || !b.B.Contains(bl) {
		return false
	}
	if b.MaxChannelDiff > 0 {
		if absDiff(r, g) >= b.MaxChannelDiff || absDiff(g, bl) >= b.MaxChannelDiff {
			return false
		}
	}
	return true
}

// GeometrySettings holds the pixel-level thresholds of the geometry
// detector and bar aggregator.
type GeometrySettings struct {
	// MinBarRunLength is the minimum vertical run of bar pixels (px) for
	// a probe column to count the run as part of the chart.
	MinBarRunLength int `mapstructure:"min_bar_run_length" yaml:"min_bar_run_length" json:"min_bar_run_length"`
	// ProbeStride is the horizontal step between probe columns.
	ProbeStride int `mapstructure:"probe_stride" yaml:"probe_stride" json:"probe_stride"`
	// BaselineOffset is how far above the detected chart bottom the
	// left/right background scan row sits.
	BaselineOffset int `mapstructure:"baseline_offset" yaml:"baseline_offset" json:"baseline_offset"`
	// GridlineSearchAbove bounds how far above the detected chart top the
	// gridline row scan extends.
	GridlineSearchAbove int `mapstructure:"gridline_search_above" yaml:"gridline_search_above" json:"gridline_search_above"`
	// GridlineRowFraction is the fraction of a row's chart-width pixels
	// that must classify as gridline for the row to qualify.
	GridlineRowFraction float64 `mapstructure:"gridline_row_fraction" yaml:"gridline_row_fraction" json:"gridline_row_fraction"`
	// GridlineMergeGap merges qualifying rows closer than this (px).
	GridlineMergeGap int `mapstructure:"gridline_merge_gap" yaml:"gridline_merge_gap" json:"gridline_merge_gap"`
	// MinSegmentWidth is the minimum width (px) of a horizontal bar
	// segment; thinner runs are anti-aliasing fragments.
	MinSegmentWidth int `mapstructure:"min_segment_width" yaml:"min_segment_width" json:"min_segment_width"`
	// MinBarRows is the minimum count of bar pixels for a column to be a
	// representative-column candidate.
	MinBarRows int `mapstructure:"min_bar_rows" yaml:"min_bar_rows" json:"min_bar_rows"`
}

// Calibration is the full constant table the chart algorithms run on.
// It is fixed data, owned by the orchestrator and passed by reference;
// retuning for a new UI theme means editing this table, not the code.
type Calibration struct {
	Bins       []ColorBin       `mapstructure:"bins" yaml:"bins" json:"bins"`
	Background ColorBin         `mapstructure:"background" yaml:"background" json:"background"`
	Gridline   GridlineSettings `mapstructure:"gridline" yaml:"gridline" json:"gridline"`
	Geometry   GeometrySettings `mapstructure:"geometry" yaml:"geometry" json:"geometry"`
}

// GridlineSettings describes the near-gray reference lines of the chart,
// brighter than the canvas but darker than any bar color.
type GridlineSettings struct {
	MaxChannelDiff int          `mapstructure:"max_channel_diff" yaml:"max_channel_diff" json:"max_channel_diff"`
	Luminance      ChannelRange `mapstructure:"luminance" yaml:"luminance" json:"luminance"`
}

// DefaultCalibration returns the table calibrated against the dark-theme
// screen-time screens the extractor was developed on.
func DefaultCalibration() *Calibration {
	return &Calibration{
		Bins: []ColorBin{
			{Label: BinTop1, R: ChannelRange{0, 79}, G: ChannelRange{100, 160}, B: ChannelRange{221, 255}},
			{Label: BinTop2, R: ChannelRange{0, 149}, G: ChannelRange{171, 255}, B: ChannelRange{181, 239}},
			{Label: BinTop3, R: ChannelRange{211, 255}, G: ChannelRange{140, 190}, B: ChannelRange{0, 89}},
			{Label: BinOther, R: ChannelRange{48, 68}, G: ChannelRange{48, 68}, B: ChannelRange{48, 68}, MaxChannelDiff: 5},
		},
		Background: ColorBin{
			Label: "background",
			R:     ChannelRange{20, 45},
			G:     ChannelRange{20, 45},
			B:     ChannelRange{20, 50},
		},
		Gridline: GridlineSettings{
			MaxChannelDiff: 8,
			Luminance:      ChannelRange{50, 110},
		},
		Geometry: GeometrySettings{
			MinBarRunLength:     50,
			ProbeStride:         40,
			BaselineOffset:      5,
			GridlineSearchAbove: 100,
			GridlineRowFraction: 0.4,
			GridlineMergeGap:    2,
			MinSegmentWidth:     8,
			MinBarRows:          5,
		},
	}
}

// Validate checks the calibration for holes the algorithms cannot
// tolerate.
func (c *Calibration) Validate() error {
	if len(c.Bins) == 0 {
		return errors.New("calibration has no color bins")
	}
	for _, b := range c.Bins {
		if b.Label == "" {
			return errors.New("calibration color bin without label")
		}
	}
	g := c.Geometry
	if g.MinBarRunLength <= 0 || g.ProbeStride <= 0 || g.MinSegmentWidth <= 0 {
		return errors.New("calibration geometry thresholds must be positive")
	}
	if g.GridlineRowFraction <= 0 || g.GridlineRowFraction >= 1 {
		return fmt.Errorf("gridline row fraction %v outside (0,1)", g.GridlineRowFraction)
	}
	return nil
}

// LoadCalibration reads a calibration table from a YAML file, allowing
// new UI themes to be supported without touching algorithm code.
func LoadCalibration(path string) (*Calibration, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided calibration path is expected
	if err != nil {
		return nil, fmt.Errorf("failed to read calibration file: %w", err)
	}
	var cal Calibration
	if err := yaml.Unmarshal(data, &cal); err != nil {
		return nil, fmt.Errorf("failed to parse calibration file: %w", err)
	}
	if err := cal.Validate(); err != nil {
		return nil, fmt.Errorf("invalid calibration: %w", err)
	}
	return &cal, nil
}

// WriteCalibration dumps a calibration table as YAML, typically used to
// bootstrap a theme-specific file from the defaults.
func WriteCalibration(cal *Calibration, path string) error {
	data, err := yaml.Marshal(cal)
	if err != nil {
		return fmt.Errorf("failed to marshal calibration: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write calibration file: %w", err)
	}
	return nil
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

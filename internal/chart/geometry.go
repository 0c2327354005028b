package chart

import (
	"image"
	"log/slog"
)

// Geometry describes the detected chart region and its vertical scale.
// The zero value is the "not found" sentinel; check Valid before use.
type Geometry struct {
	Left   int `json:"left"`
	Right  int `json:"right"`
	Top    int `json:"top"`
	Bottom int `json:"bottom"`

	// SlotWidth is (Right-Left)/24, the width of one hour slot.
	SlotWidth float64 `json:"slot_width"`
	// YMaxPixels is the pixel distance between the top and bottom
	// gridlines, i.e. the chart's full vertical scale.
	YMaxPixels int `json:"ymax_pixels"`
}

// Valid reports whether a chart region was actually found.
func (g Geometry) Valid() bool {
	return g.Right > g.Left && g.Bottom > g.Top
}

// SlotCenter returns the x coordinate of the center of hour slot i.
func (g Geometry) SlotCenter(i int) float64 {
	return float64(g.Left) + (float64(i)+0.5)*g.SlotWidth
}

// runSpan is a contiguous vertical run of bar pixels: [Start, End).
type runSpan struct {
	Start, End int
}

// Detect locates the hourly bar chart inside a full screenshot. It
// returns the zero Geometry when any prerequisite is missing (no bar
// runs, no canvas pixels); callers then emit all-zero hourly data.
func Detect(img *image.NRGBA, cal *Calibration) Geometry {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return Geometry{}
	}

	// Probe columns across the middle horizontal third and keep the one
	// crossing the most bar runs. The chart is the lowest such run.
	var best []runSpan
	for x := width / 3; x < 2*width/3; x += cal.Geometry.ProbeStride {
		runs := barRuns(img, cal, x)
		if len(runs) > len(best) {
			best = runs
		}
	}
	if len(best) == 0 {
		return Geometry{}
	}
	chartTop := best[len(best)-1].Start
	chartBottom := best[len(best)-1].End + 1

	left, right := chartEdges(img, cal, chartBottom-cal.Geometry.BaselineOffset)
	if left < 0 || right < 0 || right <= left {
		return Geometry{}
	}

	topLine, bottomLine := chartTop, chartBottom
	if lines := gridlineRows(img, cal, chartTop, chartBottom, left, right); len(lines) >= 2 {
		topLine = lines[0]
		bottomLine = lines[len(lines)-1]
		slog.Debug("chart gridlines detected", "rows", lines)
	}

	return Geometry{
		Left:       left,
		Right:      right,
		Top:        topLine,
		Bottom:     bottomLine,
		SlotWidth:  float64(right-left) / 24,
		YMaxPixels: bottomLine - topLine,
	}
}

// barRuns scans a single column top to bottom, starting a quarter of the
// way down to skip the header, and records contiguous bar-pixel runs
// longer than the calibrated minimum.
func barRuns(img *image.NRGBA, cal *Calibration, x int) []runSpan {
	b := img.Bounds()
	height := b.Dy()

	var runs []runSpan
	inRun := false
	start := 0
	for y := height / 4; y < height; y++ {
		r, g, bl := rgbAt(img, x, y)
		hasBar := cal.IsBar(r, g, bl)
		switch {
		case hasBar && !inRun:
			start = y
			inRun = true
		case !hasBar && inRun:
			if y-start > cal.Geometry.MinBarRunLength {
				runs = append(runs, runSpan{Start: start, End: y})
			}
			inRun = false
		}
	}
	return runs
}

// chartEdges finds the first canvas-colored pixel from the left and from
// the right on the given row. Returns -1 for an edge that is not found.
func chartEdges(img *image.NRGBA, cal *Calibration, y int) (left, right int) {
	b := img.Bounds()
	width := b.Dx()
	if y < 0 || y >= b.Dy() {
		return -1, -1
	}

	left, right = -1, -1
	for x := 0; x < width; x++ {
		r, g, bl := rgbAt(img, x, y)
		if cal.IsChartBackground(r, g, bl) {
			left = x
			break
		}
	}
	for x := width - 1; x >= 0; x-- {
		r, g, bl := rgbAt(img, x, y)
		if cal.IsChartBackground(r, g, bl) {
			right = x
			break
		}
	}
	return left, right
}

// gridlineRows finds horizontal reference lines between the chart edges.
// A row qualifies when more than the calibrated fraction of its pixels
// classify as gridline; consecutive qualifying rows (small gaps allowed)
// collapse into their average y.
func gridlineRows(img *image.NRGBA, cal *Calibration, chartTop, chartBottom, left, right int) []int {
	b := img.Bounds()
	height := b.Dy()
	need := int(cal.Geometry.GridlineRowFraction * float64(right-left))

	var qualifying []int
	for y := chartTop - cal.Geometry.GridlineSearchAbove; y < chartBottom; y++ {
		if y < 0 || y >= height {
			continue
		}
		count := 0
		for x := left; x < right; x++ {
			r, g, bl := rgbAt(img, x, y)
			if cal.IsGridline(r, g, bl) {
				count++
			}
		}
		if count > need {
			qualifying = append(qualifying, y)
		}
	}
	return collapseRows(qualifying, cal.Geometry.GridlineMergeGap)
}

// collapseRows merges consecutive row coordinates whose gap is at most
// maxGap into single representative rows by averaging.
func collapseRows(rows []int, maxGap int) []int {
	if len(rows) == 0 {
		return nil
	}
	var collapsed []int
	groupStart := 0
	sum := rows[0]
	for i := 1; i <= len(rows); i++ {
		if i < len(rows) && rows[i]-rows[i-1] <= maxGap {
			sum += rows[i]
			continue
		}
		collapsed = append(collapsed, sum/(i-groupStart))
		if i < len(rows) {
			groupStart = i
			sum = rows[i]
		}
	}
	return collapsed
}

// rgbAt reads the RGB channels of a pixel without interface dispatch.
func rgbAt(img *image.NRGBA, x, y int) (r, g, b uint8) {
	i := img.PixOffset(img.Bounds().Min.X+x, img.Bounds().Min.Y+y)
	return img.Pix[i], img.Pix[i+1], img.Pix[i+2]
}

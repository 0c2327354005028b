package testutil

import (
	"image"
	"image/color"
	"image/draw"
)

// Colors chosen to sit comfortably inside the default calibration bins.
var (
	Top1Color       = color.NRGBA{R: 60, G: 130, B: 235, A: 255}  // blue
	Top2Color       = color.NRGBA{R: 100, G: 200, B: 210, A: 255} // teal
	Top3Color       = color.NRGBA{R: 235, G: 165, B: 60, A: 255}  // orange
	OtherColor      = color.NRGBA{R: 58, G: 58, B: 58, A: 255}    // neutral dark gray
	CanvasColor     = color.NRGBA{R: 30, G: 32, B: 40, A: 255}    // chart background
	GridlineColor   = color.NRGBA{R: 80, G: 80, B: 80, A: 255}
	PageColor       = color.NRGBA{R: 240, G: 240, B: 240, A: 255} // outside the chart
)

// Bar describes one synthetic stacked bar: pixel heights per color bin,
// drawn bottom-up in bin order at the given hour slot.
type Bar struct {
	Slot  int
	Top1  int
	Top2  int
	Top3  int
	Other int
	// Width overrides the default bar width when positive.
	Width int
	// OffsetX nudges the bar horizontally off its slot center.
	OffsetX int
}

// Height returns the bar's total stacked height.
func (b Bar) Height() int {
	return b.Top1 + b.Top2 + b.Top3 + b.Other
}

// ChartSpec describes a synthetic screen-time screenshot whose hourly
// chart region has known geometry, for exercising the pixel pipeline.
type ChartSpec struct {
	Width, Height int
	Left, Right   int // chart canvas x extent
	TopLine       int // top gridline row
	BottomLine    int // bottom gridline row (baseline)
	MidGridlines  []int
	Bars          []Bar
	BarWidth      int
}

// DefaultChartSpec returns a chart whose bars land inside the middle
// probe third and clear the minimum run length of the detector.
func DefaultChartSpec() ChartSpec {
	return ChartSpec{
		Width:      480,
		Height:     600,
		Left:       40,
		Right:      440,
		TopLine:    300,
		BottomLine: 500,
		BarWidth:   12,
	}
}

// RenderChart draws the spec into an NRGBA image. The page outside the
// chart is bright (never canvas, gridline, or bar colored); the canvas
// spans [Left,Right] around the gridlines; bars stack bottom-up from the
// baseline.
func RenderChart(spec ChartSpec) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, spec.Width, spec.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{PageColor}, image.Point{}, draw.Src)

	// Canvas slightly overshoots the gridlines vertically, like the real UI.
	canvas := image.Rect(spec.Left, spec.TopLine-8, spec.Right+1, spec.BottomLine+8)
	draw.Draw(img, canvas, &image.Uniform{CanvasColor}, image.Point{}, draw.Src)

	for _, y := range append([]int{spec.TopLine, spec.BottomLine}, spec.MidGridlines...) {
		for x := spec.Left; x <= spec.Right; x++ {
			img.SetNRGBA(x, y, GridlineColor)
		}
	}

	slotWidth := float64(spec.Right-spec.Left) / 24
	for _, bar := range spec.Bars {
		width := spec.BarWidth
		if bar.Width > 0 {
			width = bar.Width
		}
		center := float64(spec.Left) + (float64(bar.Slot)+0.5)*slotWidth
		x0 := int(center) - width/2 + bar.OffsetX

		y := spec.BottomLine - 1
		y = drawStack(img, x0, width, y, bar.Top1, Top1Color)
		y = drawStack(img, x0, width, y, bar.Top2, Top2Color)
		y = drawStack(img, x0, width, y, bar.Top3, Top3Color)
		drawStack(img, x0, width, y, bar.Other, OtherColor)
	}
	return img
}

// drawStack draws a block of rows upward from y and returns the next
// free row above it.
func drawStack(img *image.NRGBA, x0, width, y, height int, c color.NRGBA) int {
	for i := 0; i < height; i++ {
		for x := x0; x < x0+width; x++ {
			img.SetNRGBA(x, y-i, c)
		}
	}
	return y - height
}

package chart

import "image"

// HourLabels are the 24 fixed slot labels of the hourly chart, in order.
var HourLabels = []string{
	"12am", "1am", "2am", "3am", "4am", "5am", "6am", "7am", "8am", "9am", "10am", "11am",
	"12pm", "1pm", "2pm", "3pm", "4pm", "5pm", "6pm", "7pm", "8pm", "9pm", "10pm", "11pm",
}

// SlotUsage holds the pixel measurements of one hour slot. Overall is
// the height of the slot's representative column; Bins counts how many
// of that column's pixels each color bin contributed.
type SlotUsage struct {
	Overall int            `json:"overall"`
	Bins    map[string]int `json:"bins"`
}

// segment is a contiguous horizontal run of bar pixels: [Start, End].
type segment struct {
	Start, End int
}

// EmptySlots returns the all-zero 24-slot map emitted when the chart
// cannot be located.
func EmptySlots(cal *Calibration) map[string]SlotUsage {
	slots := make(map[string]SlotUsage, len(HourLabels))
	for _, label := range HourLabels {
		slots[label] = SlotUsage{Bins: emptyBinCounts(cal)}
	}
	return slots
}

// Aggregate partitions the chart width into 24 hour slots and measures
// per-slot bar heights. Each detected bar segment is assigned to the
// slot whose center is nearest its own; within a segment the tallest
// column is the slot's representative. When several segments land on the
// same slot only the tallest wins, which guards against anti-aliasing
// fragments registering as extra thin bars.
func Aggregate(img *image.NRGBA, geo Geometry, cal *Calibration) map[string]SlotUsage {
	slots := EmptySlots(cal)
	if !geo.Valid() {
		return slots
	}

	for _, seg := range barSegments(img, geo, cal) {
		center := float64(seg.Start+seg.End) / 2
		idx := nearestSlot(geo, center)
		usage := measureSegment(img, geo, cal, seg)
		if usage.Overall > slots[HourLabels[idx]].Overall {
			slots[HourLabels[idx]] = usage
		}
	}
	return slots
}

// barSegments scans the chart columns left to right and collects
// contiguous horizontal runs of bar pixels at least MinSegmentWidth wide.
func barSegments(img *image.NRGBA, geo Geometry, cal *Calibration) []segment {
	var segments []segment
	inBar := false
	start := 0
	for x := geo.Left; x < geo.Right; x++ {
		hasBar := columnHasBar(img, geo, cal, x)
		switch {
		case hasBar && !inBar:
			start = x
			inBar = true
		case !hasBar && inBar:
			if x-start >= cal.Geometry.MinSegmentWidth {
				segments = append(segments, segment{Start: start, End: x - 1})
			}
			inBar = false
		}
	}
	if inBar && geo.Right-start >= cal.Geometry.MinSegmentWidth {
		segments = append(segments, segment{Start: start, End: geo.Right - 1})
	}
	return segments
}

// nearestSlot maps an x coordinate to the hour slot with the closest
// center. Ties break toward the lower slot index.
func nearestSlot(geo Geometry, x float64) int {
	best := 0
	bestDist := distance(x, geo.SlotCenter(0))
	for i := 1; i < len(HourLabels); i++ {
		if d := distance(x, geo.SlotCenter(i)); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// measureSegment finds the segment's representative column (the tallest
// one with enough bar pixels to rule out fringes) and counts its pixels
// per color bin.
func measureSegment(img *image.NRGBA, geo Geometry, cal *Calibration, seg segment) SlotUsage {
	best := SlotUsage{Bins: emptyBinCounts(cal)}
	for x := seg.Start; x <= seg.End; x++ {
		barRows := 0
		topRow := -1
		counts := emptyBinCounts(cal)
		for y := geo.Top; y < geo.Bottom; y++ {
			r, g, b := rgbAt(img, x, y)
			label, ok := cal.Classify(r, g, b)
			if !ok {
				continue
			}
			if topRow < 0 {
				topRow = y
			}
			barRows++
			counts[label]++
		}
		if barRows < cal.Geometry.MinBarRows {
			continue
		}
		if height := geo.Bottom - topRow; height > best.Overall {
			best = SlotUsage{Overall: height, Bins: counts}
		}
	}
	return best
}

func columnHasBar(img *image.NRGBA, geo Geometry, cal *Calibration, x int) bool {
	for y := geo.Top; y < geo.Bottom; y++ {
		r, g, b := rgbAt(img, x, y)
		if cal.IsBar(r, g, b) {
			return true
		}
	}
	return false
}

func emptyBinCounts(cal *Calibration) map[string]int {
	counts := make(map[string]int, len(cal.Bins))
	for _, bin := range cal.Bins {
		counts[bin.Label] = 0
	}
	return counts
}

func distance(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

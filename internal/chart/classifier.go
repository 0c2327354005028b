package chart

// Classify assigns an RGB triple to the first matching calibrated color
// bin and returns its label. The bins are checked in table order; the
// boolean is false when the pixel is not part of any bar.
func (c *Calibration) Classify(r, g, b uint8) (string, bool) {
	for _, bin := range c.Bins {
		if bin.Matches(r, g, b) {
			return bin.Label, true
		}
	}
	return "", false
}

// IsBar reports whether the pixel belongs to any bar color bin.
func (c *Calibration) IsBar(r, g, b uint8) bool {
	_, ok := c.Classify(r, g, b)
	return ok
}

// IsChartBackground reports whether the pixel has the chart's canvas
// color. The canvas is darker than gridlines and any bar color.
func (c *Calibration) IsChartBackground(r, g, b uint8) bool {
	return c.Background.Matches(r, g, b)
}

// IsGridline reports whether the pixel could be part of a horizontal
// reference line: near-gray, brighter than the canvas, darker than bars.
// Pixels that already classify as a bar bin are excluded so that the
// bar, background, and gridline predicates never overlap.
func (c *Calibration) IsGridline(r, g, b uint8) bool {
	gl := c.Gridline
	if absDiff(r, g) > gl.MaxChannelDiff || absDiff(g, b) > gl.MaxChannelDiff {
		return false
	}
	mean := (int(r) + int(g) + int(b)) / 3
	if mean < int(gl.Luminance.Min) || mean > int(gl.Luminance.Max) {
		return false
	}
	return !c.IsBar(r, g, b)
}

package parse

import "fmt"

// Duration is a screen-time duration recovered from OCR text.
// Minutes are kept in [0,59]; overflow carries into hours.
type Duration struct {
	Hours   int `json:"hours" yaml:"hours"`
	Minutes int `json:"minutes" yaml:"minutes"`
}

// NewDuration builds a normalized Duration from raw hour/minute counts.
func NewDuration(hours, minutes int) Duration {
	if minutes < 0 {
		minutes = 0
	}
	if hours < 0 {
		hours = 0
	}
	return Duration{
		Hours:   hours + minutes/60,
		Minutes: minutes % 60,
	}
}

// TotalMinutes returns the duration in minutes for comparison and sorting.
func (d Duration) TotalMinutes() int {
	return d.Hours*60 + d.Minutes
}

// IsZero reports whether the duration is the zero sentinel "0h 0m".
func (d Duration) IsZero() bool {
	return d.Hours == 0 && d.Minutes == 0
}

// String renders the canonical text form, e.g. "3h 45m".
func (d Duration) String() string {
	return fmt.Sprintf("%dh %dm", d.Hours, d.Minutes)
}

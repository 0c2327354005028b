package extract

import "github.com/MeKo-Tech/screentime/internal/parse"

// CategoryUsage is one row of the category breakdown. The order
// categories appear in on the screen decides which chart color belongs
// to which category.
type CategoryUsage struct {
	Name string         `json:"name"`
	Time parse.Duration `json:"time"`
}

// AppUsage is one ranked application entry.
type AppUsage struct {
	Name string         `json:"name"`
	Time parse.Duration `json:"time"`
}

// HourUsage holds the reconstructed bar measurements of one hour slot.
// Categories maps category names (as parsed from the breakdown) to the
// pixel counts their chart color contributed; it is empty when no
// category header could be read.
type HourUsage struct {
	Overall    int            `json:"overall"`
	Categories map[string]int `json:"categories"`
}

// Result is the structured record extracted from an overall-summary
// screenshot.
type Result struct {
	Date        string               `json:"date,omitempty"`
	IsYesterday bool                 `json:"is_yesterday"`
	TotalTime   parse.Duration       `json:"total_time"`
	Categories  []CategoryUsage      `json:"categories"`
	TopApps     []AppUsage           `json:"top_apps"`
	Hourly      map[string]HourUsage `json:"hourly_usage"`
	YMaxPixels  *int                 `json:"ymax_pixels,omitempty"`
}

// CategoryDetail is the structured record extracted from a
// single-category detail screenshot.
type CategoryDetail struct {
	Category  string         `json:"category"`
	TotalTime parse.Duration `json:"total_time"`
	Apps      []AppUsage     `json:"apps"`
}

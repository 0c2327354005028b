// Package segment slices the merged OCR line stream of a screen-time
// screenshot into its semantic sections: date header, total time,
// category breakdown, and app lists. OCR output arrives unordered and
// partially duplicated (two preprocessing passes), so everything here
// works on markers and proximity, never on fixed line positions.
package segment

import (
	"regexp"
	"sort"
	"strings"

	"github.com/MeKo-Tech/screentime/internal/parse"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Entry pairs a name with the duration attributed to it.
type Entry struct {
	Name string         `json:"name"`
	Time parse.Duration `json:"time"`
}

// categoryKeywords identify a category-breakdown header line.
var categoryKeywords = []string{"social", "games", "entertainment"}

// topAppStopWords terminate a most-used scan window: section headers and
// UI chrome that follow the app list.
var topAppStopWords = []string{
	"screen time", "updated", "week", "show categor", "yesterday",
	"today", "app limits", "always allowed", "content &", "see all",
}

// topAppWindow bounds how many lines after a "most used" marker can
// still belong to the app list.
const topAppWindow = 10

// durationOffsetMax is how many lines below an app-name occurrence its
// duration may appear.
const durationOffsetMax = 3

var durationFragmentRe = regexp.MustCompile(`(?i)\d+\s*h\s*\d+\s*m|\d+\s*h|\d+\s*m`)

var titleCaser = cases.Title(language.English)

// MergeLines concatenates the OCR outputs of all preprocessing passes
// and splits them into trimmed, non-blank lines, order preserved.
func MergeLines(texts ...string) []string {
	var lines []string
	for _, text := range texts {
		for _, raw := range strings.Split(text, "\n") {
			if line := strings.TrimSpace(raw); line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// DateHeader finds the "yesterday" header line. The date token is the
// substring after the last comma, or the whole line when there is none.
func DateHeader(lines []string) (date string, yesterday bool) {
	for _, line := range lines {
		if !strings.Contains(strings.ToLower(line), "yesterday") {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) > 1 {
			return strings.TrimSpace(parts[len(parts)-1]), true
		}
		return strings.TrimSpace(line), true
	}
	return "", false
}

// TotalTime returns the first non-zero duration strictly after a
// "screen time" line. "daily" lines are skipped (category-detail screens
// show a daily average there) and the scan never crosses into the
// apps section.
func TotalTime(lines []string) parse.Duration {
	inSection := false
	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "screen time") {
			inSection = true
			continue
		}
		if strings.Contains(lower, "apps & websites") {
			break
		}
		if !inSection || strings.Contains(lower, "daily") {
			continue
		}
		if d, ok := parse.TimeFragment(line); ok && !d.IsZero() {
			return d
		}
	}
	return parse.Duration{}
}

// Categories parses the category-breakdown table: a header line of
// category names followed by a line of duration fragments, paired
// positionally. A count mismatch discards the pairing entirely.
func Categories(lines []string) []Entry {
	for i, line := range lines {
		if !containsAny(strings.ToLower(line), categoryKeywords) {
			continue
		}
		names := strings.Fields(line)
		var entries []Entry
		if i+1 < len(lines) {
			times := durationFragmentRe.FindAllString(lines[i+1], -1)
			if len(times) == len(names) {
				for j, name := range names {
					d, _ := parse.TimeFragment(times[j])
					entries = append(entries, Entry{Name: titleCaser.String(name), Time: d})
				}
			}
		}
		return entries
	}
	return nil
}

// DetectCategory recovers the category name of a category-detail screen
// from keyword hits anywhere in the text. Later hits win, matching how
// the screen repeats the category in its navigation header and chart.
func DetectCategory(lines []string) string {
	category := ""
	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "entertainment") {
			category = titleCaser.String("entertainment")
		}
		if strings.Contains(lower, "social") {
			category = titleCaser.String("social")
		}
	}
	return category
}

// CategoryApps parses the app list of a category-detail screen. The app
// section sits between the "apps & websites" and "limits" markers; the
// screen comes in two layouts, detected by whether any app-section line
// itself parses as a duration (same-line) or not (split).
func CategoryApps(lines []string) []Entry {
	appsSection, timesSection := sliceAppSections(lines)

	sameLine := false
	for _, line := range appsSection {
		if _, ok := parse.TimeFragment(line); ok {
			sameLine = true
			break
		}
	}

	var entries []Entry
	if sameLine {
		entries = parseSameLineApps(appsSection)
	} else {
		entries = parseSplitApps(appsSection, timesSection)
	}
	entries = dedupeEntries(entries)
	SortEntriesByTime(entries)
	return entries
}

// dedupeEntries keeps the first entry per name. Both OCR passes feed the
// merged line stream, so the app section can repeat.
func dedupeEntries(entries []Entry) []Entry {
	seen := make(map[string]bool, len(entries))
	out := entries[:0]
	for _, e := range entries {
		if seen[e.Name] {
			continue
		}
		seen[e.Name] = true
		out = append(out, e)
	}
	return out
}

// sliceAppSections cuts the lines into the block after "apps & websites"
// (names, or names with inline times) and the block after "limits"
// (times in the split layout).
func sliceAppSections(lines []string) (apps, times []string) {
	inApps, inTimes := false, false
	for _, line := range lines {
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "apps & websites"):
			inApps, inTimes = true, false
			continue
		case strings.Contains(lower, "limits"):
			inApps, inTimes = false, true
			continue
		}
		if inApps {
			apps = append(apps, line)
		} else if inTimes {
			times = append(times, line)
		}
	}
	return apps, times
}

// parseSameLineApps handles lines like "YouTube 2h 15m": parse the
// duration, strip its fragments from the line, and keep what remains as
// the name.
func parseSameLineApps(appsSection []string) []Entry {
	var entries []Entry
	for _, line := range appsSection {
		fixed := parse.FixOCRDigits(line)
		d, ok := parse.TimeFragment(fixed)
		if !ok || d.IsZero() {
			continue
		}
		name := durationFragmentRe.ReplaceAllString(fixed, "")
		name = parse.CleanAppName(name)
		if !parse.IsValidAppName(name) {
			continue
		}
		entries = append(entries, Entry{Name: name, Time: d})
	}
	return entries
}

// parseSplitApps handles the layout where names and durations come in
// separate blocks, matched by index. The times block leads with a daily
// average that belongs to no app and is discarded.
func parseSplitApps(appsSection, timesSection []string) []Entry {
	var names []string
	for _, line := range appsSection {
		if _, ok := parse.TimeFragment(parse.FixOCRDigits(line)); ok {
			continue
		}
		name := parse.CleanAppName(line)
		if !parse.IsValidAppName(name) {
			continue
		}
		names = append(names, name)
	}

	var times []parse.Duration
	for _, line := range timesSection {
		if d, ok := parse.TimeFragment(line); ok && !d.IsZero() {
			times = append(times, d)
		}
	}
	if len(times) > 0 {
		times = times[1:]
	}

	var entries []Entry
	for i, name := range names {
		if i >= len(times) {
			break
		}
		entries = append(entries, Entry{Name: name, Time: times[i]})
	}
	return entries
}

// TopAppOccurrences collects app-name candidates from every "most used"
// section in the merged text. Both OCR passes contribute a section and a
// name may only be legible in one of them, so occurrences are keyed by
// normalized name and recorded at every line index they appear at.
// Returned names preserve discovery order.
func TopAppOccurrences(lines []string) ([]string, map[string][]int) {
	var order []string
	occurrences := make(map[string][]int)

	for marker, line := range lines {
		if !strings.Contains(strings.ToLower(line), "most used") {
			continue
		}
		for i := marker + 1; i < len(lines); i++ {
			candidate := lines[i]
			if containsAny(strings.ToLower(candidate), topAppStopWords) || i > marker+topAppWindow {
				break
			}
			if _, ok := parse.TimeFragment(candidate); ok {
				continue
			}
			name := parse.CleanAppName(candidate)
			if !parse.IsValidAppName(name) {
				continue
			}
			if _, seen := occurrences[name]; !seen {
				order = append(order, name)
			}
			occurrences[name] = append(occurrences[name], i)
		}
	}
	return order, occurrences
}

// DurationIndex maps every line holding a non-zero duration to its
// parsed value. The matcher consumes from this shared pool so that no
// duration is attributed to two different apps.
func DurationIndex(lines []string) map[int]parse.Duration {
	durations := make(map[int]parse.Duration)
	for i, line := range lines {
		if d, ok := parse.TimeFragment(line); ok && !d.IsZero() {
			durations[i] = d
		}
	}
	return durations
}

// SortEntriesByTime sorts descending by duration; ties keep discovery
// order.
func SortEntriesByTime(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Time.TotalMinutes() > entries[j].Time.TotalMinutes()
	})
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

package segment

import (
	"testing"

	"github.com/MeKo-Tech/screentime/internal/parse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeLines(t *testing.T) {
	lines := MergeLines("a\n\n  b  \n", "\nc\n")
	assert.Equal(t, []string{"a", "b", "c"}, lines)
	assert.Empty(t, MergeLines("", "\n\n"))
}

func TestDateHeader(t *testing.T) {
	date, yesterday := DateHeader([]string{"Screen Time", "Yesterday, February 12"})
	assert.True(t, yesterday)
	assert.Equal(t, "February 12", date)

	date, yesterday = DateHeader([]string{"Yesterday"})
	assert.True(t, yesterday)
	assert.Equal(t, "Yesterday", date)

	date, yesterday = DateHeader([]string{"Today, March 3"})
	assert.False(t, yesterday)
	assert.Empty(t, date)
}

func TestTotalTime_FirstDurationAfterMarker(t *testing.T) {
	lines := []string{"some header", "SCREEN TIME", "3h 45m", "1h 2m"}
	assert.Equal(t, parse.Duration{Hours: 3, Minutes: 45}, TotalTime(lines))
}

func TestTotalTime_SkipsDailyAverageAndZero(t *testing.T) {
	lines := []string{
		"Screen Time",
		"Daily Average 1h 5m", // category-detail screens lead with this
		"0h 0m",
		"2h 30m",
	}
	assert.Equal(t, parse.Duration{Hours: 2, Minutes: 30}, TotalTime(lines))
}

func TestTotalTime_IgnoresDurationsBeforeMarker(t *testing.T) {
	lines := []string{"5h 5m", "Screen Time", "1h 10m"}
	assert.Equal(t, parse.Duration{Hours: 1, Minutes: 10}, TotalTime(lines))
}

func TestTotalTime_StopsAtAppsSection(t *testing.T) {
	lines := []string{"Screen Time", "garbled", "Apps & Websites", "4h 20m"}
	assert.True(t, TotalTime(lines).IsZero())
}

func TestCategories_PositionalPairing(t *testing.T) {
	lines := []string{"Social Entertainment", "2h 10m 1h 5m"}
	got := Categories(lines)
	require.Len(t, got, 2)
	assert.Equal(t, Entry{Name: "Social", Time: parse.Duration{Hours: 2, Minutes: 10}}, got[0])
	assert.Equal(t, Entry{Name: "Entertainment", Time: parse.Duration{Hours: 1, Minutes: 5}}, got[1])
}

func TestCategories_CountMismatchDiscards(t *testing.T) {
	lines := []string{"Social Games Entertainment", "2h 10m 1h 5m"}
	assert.Empty(t, Categories(lines))
}

func TestCategories_NoHeader(t *testing.T) {
	assert.Empty(t, Categories([]string{"Screen Time", "3h 45m"}))
}

func TestDetectCategory(t *testing.T) {
	assert.Equal(t, "Social", DetectCategory([]string{"< Social", "Screen Time"}))
	assert.Equal(t, "Entertainment", DetectCategory([]string{"ENTERTAINMENT", "details"}))
	assert.Empty(t, DetectCategory([]string{"Screen Time"}))
}

func TestCategoryApps_SameLineLayout(t *testing.T) {
	lines := []string{
		"Social",
		"Apps & Websites",
		"YouTube 2h 15m",
		"Netflix 1h 5m",
		"0h 0m leftover",
		"App Limits",
	}
	got := CategoryApps(lines)
	require.Len(t, got, 2)
	assert.Equal(t, Entry{Name: "YouTube", Time: parse.Duration{Hours: 2, Minutes: 15}}, got[0])
	assert.Equal(t, Entry{Name: "Netflix", Time: parse.Duration{Hours: 1, Minutes: 5}}, got[1])
}

func TestCategoryApps_SplitLayoutDropsDailyAverage(t *testing.T) {
	lines := []string{
		"Apps & Websites",
		"Instagram",
		"TikTok",
		"App Limits",
		"0h 5m", // daily average artifact, not a per-app value
		"3h 20m",
		"1h 10m",
	}
	got := CategoryApps(lines)
	require.Len(t, got, 2)
	// Paired positionally after the drop, then sorted descending.
	assert.Equal(t, Entry{Name: "Instagram", Time: parse.Duration{Hours: 3, Minutes: 20}}, got[0])
	assert.Equal(t, Entry{Name: "TikTok", Time: parse.Duration{Hours: 1, Minutes: 10}}, got[1])
}

func TestCategoryApps_DedupesRepeatedPasses(t *testing.T) {
	lines := []string{
		"Apps & Websites",
		"YouTube 2h 15m",
		"Limits",
		"Apps & Websites", // second preprocessing pass repeats the section
		"YouTube 2h 15m",
		"Limits",
	}
	got := CategoryApps(lines)
	require.Len(t, got, 1)
	assert.Equal(t, Entry{Name: "YouTube", Time: parse.Duration{Hours: 2, Minutes: 15}}, got[0])
}

func TestCategoryApps_SplitLayoutMoreTimesThanNames(t *testing.T) {
	lines := []string{
		"Apps & Websites",
		"Instagram",
		"Limits",
		"1h 0m",
		"0h 45m",
		"0h 30m",
	}
	got := CategoryApps(lines)
	require.Len(t, got, 1)
	assert.Equal(t, Entry{Name: "Instagram", Time: parse.Duration{Minutes: 45}}, got[0])
}

func TestTopAppOccurrences_MergesBothPasses(t *testing.T) {
	lines := []string{
		"MOST USED",
		"A. Instagram",
		"3h 20m",
		"eS TikTok 5",
		"Show Categories",
		"filler",
		"MOST USED", // light-text pass repeats the section
		"Instagram",
		"Roblox",
		"1h 10m",
	}
	names, occ := TopAppOccurrences(lines)
	assert.Equal(t, []string{"Instagram", "TikTok", "Roblox"}, names)
	assert.Equal(t, []int{1, 7}, occ["Instagram"])
	assert.Equal(t, []int{3}, occ["TikTok"])
	assert.Equal(t, []int{8}, occ["Roblox"])
}

func TestTopAppOccurrences_WindowAndGarbage(t *testing.T) {
	lines := []string{
		"Most Used",
		"2h 5m",     // a duration, not a name
		"10:11",     // garbled timestamp
		"ab",        // too short
		"Instagram", // valid
		"See All",   // stop word ends the window
		"Snapchat",  // unreachable
	}
	names, _ := TopAppOccurrences(lines)
	assert.Equal(t, []string{"Instagram"}, names)
}

func TestDurationIndex_SkipsZero(t *testing.T) {
	lines := []string{"Instagram", "3h 20m", "0h 0m", "45m"}
	idx := DurationIndex(lines)
	assert.Equal(t, map[int]parse.Duration{
		1: {Hours: 3, Minutes: 20},
		3: {Minutes: 45},
	}, idx)
}

func TestSortEntriesByTime_StableDescending(t *testing.T) {
	entries := []Entry{
		{Name: "A", Time: parse.Duration{Minutes: 10}},
		{Name: "B", Time: parse.Duration{Hours: 1}},
		{Name: "C", Time: parse.Duration{Minutes: 10}},
	}
	SortEntriesByTime(entries)
	assert.Equal(t, []string{"B", "A", "C"}, []string{entries[0].Name, entries[1].Name, entries[2].Name})
}

package segment

import "github.com/MeKo-Tech/screentime/internal/parse"

// MatchAppTimes pairs app names with nearby durations. For each name, in
// discovery order, its occurrence indices are walked in reverse (the
// light-text pass appears later in the merged stream and its line
// segmentation more often puts the duration right under the name); the
// first unconsumed duration within the next few lines is claimed and
// removed from the shared pool. Apps with no match keep a zero duration.
//
// When limit is positive the search stops once that many apps have a
// confirmed (non-zero) time, and the returned list is truncated to the
// limit after sorting.
func MatchAppTimes(names []string, occurrences map[string][]int, durations map[int]parse.Duration, limit int) []Entry {
	entries := make([]Entry, 0, len(names))
	confirmed := 0

	for _, name := range names {
		if limit > 0 && confirmed >= limit {
			break
		}

		var matched parse.Duration
		indices := occurrences[name]
		for k := len(indices) - 1; k >= 0 && matched.IsZero(); k-- {
			for offset := 1; offset <= durationOffsetMax; offset++ {
				idx := indices[k] + offset
				if d, ok := durations[idx]; ok {
					matched = d
					delete(durations, idx)
					break
				}
			}
		}

		if !matched.IsZero() {
			confirmed++
		}
		entries = append(entries, Entry{Name: name, Time: matched})
	}

	SortEntriesByTime(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

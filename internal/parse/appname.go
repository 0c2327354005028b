package parse

import (
	"regexp"
	"strings"
)

var (
	leadingIconRe    = regexp.MustCompile(`^[a-zA-Z&\d]{1,2}[.\s]\s*`)
	trailingPunctRe  = regexp.MustCompile(`['\-,.]+$`)
	surroundQuoteRe  = regexp.MustCompile(`^['"]|['"]$`)
	trailingBadgeRe  = regexp.MustCompile(`\s+\d+$`)
	leadingJunkRe    = regexp.MustCompile(`^[^A-Za-z0-9]+`)
	garbledSlashRe   = regexp.MustCompile(`[\\/:]`)
	digitThenAlphaRe = regexp.MustCompile(`\d+[a-zA-Z]`)
	allDigitsRe      = regexp.MustCompile(`^\d+$`)
)

// Substrings that mark a candidate as UI chrome or a calendar date
// rather than an application name.
var appNameStopWords = []string{
	"show", "screen", "yesterday", "today",
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// CleanAppName strips the OCR artifacts that surround app names on
// screen-time screens: 1-2 character icon glyph misreads at the start,
// trailing punctuation and quotes, and trailing badge-count digits
// (e.g. "TikTok 5").
func CleanAppName(line string) string {
	s := strings.TrimSpace(line)
	s = leadingIconRe.ReplaceAllString(s, "")
	s = trailingPunctRe.ReplaceAllString(s, "")
	s = surroundQuoteRe.ReplaceAllString(s, "")
	s = trailingBadgeRe.ReplaceAllString(s, "")
	s = leadingJunkRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)

	// Trim any remaining non-alphanumeric tail left by the passes above.
	for s != "" && !isAlnum(s[len(s)-1]) {
		s = strings.TrimSpace(s[:len(s)-1])
	}
	return s
}

// IsValidAppName reports whether a cleaned candidate looks like a real
// application name. Slashes, colons, and a digit glued to a letter all
// signal garbled OCR (timestamps, fractions of duration strings).
func IsValidAppName(name string) bool {
	if len(name) < 3 {
		return false
	}
	if allDigitsRe.MatchString(name) {
		return false
	}
	if garbledSlashRe.MatchString(name) || digitThenAlphaRe.MatchString(name) {
		return false
	}
	lower := strings.ToLower(name)
	for _, w := range appNameStopWords {
		if strings.Contains(lower, w) {
			return false
		}
	}
	return true
}

func isAlnum(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

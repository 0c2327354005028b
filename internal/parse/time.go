package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// Tesseract habitually misreads the digit "1" in front of "h" as an
// uppercase T, lowercase l, or uppercase I. Fix those before matching.
var ocrDigitFixes = strings.NewReplacer("Th", "1h", "lh", "1h", "Ih", "1h")

var (
	hoursMinutesRe = regexp.MustCompile(`(?i)(\d+)\s*h\s*(\d+)\s*m`)
	hoursOnlyRe    = regexp.MustCompile(`(?i)(\d+)\s*h`)
	minutesOnlyRe  = regexp.MustCompile(`(?i)(\d+)\s*m`)
)

// FixOCRDigits applies the digit-confusion corrections to a line.
// Callers that strip recognized fragments back out of the line need the
// corrected text, not the raw OCR output.
func FixOCRDigits(text string) string {
	return ocrDigitFixes.Replace(text)
}

// TimeFragment extracts a duration from a free-text OCR line.
// Recognized forms are "<n>h <n>m", "<n>h" and "<n>m" with flexible
// whitespace and case. A zero duration ("0h 0m") is a valid parse;
// callers decide whether zero counts as usable.
func TimeFragment(text string) (Duration, bool) {
	text = ocrDigitFixes.Replace(text)

	if m := hoursMinutesRe.FindStringSubmatch(text); m != nil {
		return NewDuration(mustAtoi(m[1]), mustAtoi(m[2])), true
	}
	if m := hoursOnlyRe.FindStringSubmatch(text); m != nil {
		return NewDuration(mustAtoi(m[1]), 0), true
	}
	if m := minutesOnlyRe.FindStringSubmatch(text); m != nil {
		return NewDuration(0, mustAtoi(m[1])), true
	}
	return Duration{}, false
}

// mustAtoi converts digits already validated by a regexp group.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

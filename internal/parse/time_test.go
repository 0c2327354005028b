package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeFragment_Forms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Duration
		ok    bool
	}{
		{"hours and minutes", "3h 45m", Duration{3, 45}, true},
		{"no space", "2h10m", Duration{2, 10}, true},
		{"hours only", "5h", Duration{5, 0}, true},
		{"minutes only", "42m", Duration{0, 42}, true},
		{"uppercase", "1H 30M", Duration{1, 30}, true},
		{"embedded in line", "Daily Average 1h 5m today", Duration{1, 5}, true},
		{"zero duration", "0h 0m", Duration{0, 0}, true},
		{"no match", "Instagram", Duration{}, false},
		{"empty", "", Duration{}, false},
		{"bare number", "1011", Duration{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := TimeFragment(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestTimeFragment_OCRDigitConfusions(t *testing.T) {
	// Tesseract reads a leading "1" before "h" as T, l, or I.
	for _, input := range []string{"Th 20m", "lh 20m", "Ih 20m"} {
		got, ok := TimeFragment(input)
		require.True(t, ok, "input %q", input)
		assert.Equal(t, Duration{1, 20}, got)
	}
}

func TestTimeFragment_IdempotentOnCanonicalOutput(t *testing.T) {
	inputs := []string{"3h 45m", "2h", "17m", "Th 5m", "0h 0m", "1h 75m"}
	for _, s := range inputs {
		first, ok := TimeFragment(s)
		require.True(t, ok, "input %q", s)
		second, ok := TimeFragment(first.String())
		require.True(t, ok)
		assert.Equal(t, first, second, "input %q", s)
	}
}

func TestNewDuration_NormalizesMinutes(t *testing.T) {
	d := NewDuration(1, 75)
	assert.Equal(t, Duration{2, 15}, d)
	assert.Equal(t, 135, d.TotalMinutes())
}

func TestDuration_StringAndZero(t *testing.T) {
	assert.Equal(t, "3h 45m", Duration{3, 45}.String())
	assert.Equal(t, "0h 0m", Duration{}.String())
	assert.True(t, Duration{}.IsZero())
	assert.False(t, Duration{0, 1}.IsZero())
}

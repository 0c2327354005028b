package testutil

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

// FakeEngine satisfies ocr.Engine and replays canned text per call,
// repeating the last entry once the script runs out. Extraction runs the
// OCR twice per image (normal and light-text passes), so scripts usually
// carry two entries.
type FakeEngine struct {
	Script []string
	Calls  int
}

// Recognize returns the next scripted text.
func (f *FakeEngine) Recognize(_ image.Image) (string, error) {
	idx := f.Calls
	if idx >= len(f.Script) {
		idx = len(f.Script) - 1
	}
	f.Calls++
	if idx < 0 {
		return "", nil
	}
	return f.Script[idx], nil
}

// WriteTempPNG saves an image into the test's temp dir and returns the path.
func WriteTempPNG(t *testing.T, img image.Image, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, imaging.Save(img, path))
	return path
}

// RequireFileExists fails the test when path is missing.
func RequireFileExists(t *testing.T, path string) {
	t.Helper()
	_, err := os.Stat(path)
	require.NoError(t, err)
}

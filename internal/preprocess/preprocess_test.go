package preprocess

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayPatchImage(bg, patch uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 60, 40))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.NRGBA{bg, bg, bg, 255}}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(10, 10, 30, 30), &image.Uniform{color.NRGBA{patch, patch, patch, 255}}, image.Point{}, draw.Src)
	return img
}

func TestBinarize_InvertsDarkText(t *testing.T) {
	img := grayPatchImage(250, 20) // dark "text" patch on a light page

	out := Binarize(img, Normal())
	require.NotNil(t, out)

	// 2x upscale
	assert.Equal(t, 120, out.Bounds().Dx())
	assert.Equal(t, 80, out.Bounds().Dy())

	// Dark input becomes foreground (white), light input background (black).
	assert.Equal(t, uint8(255), out.GrayAt(40, 40).Y, "patch center")
	assert.Equal(t, uint8(0), out.GrayAt(4, 4).Y, "page corner")
}

func TestBinarize_OutputIsBinary(t *testing.T) {
	img := grayPatchImage(200, 90)
	out := Binarize(img, LightText())

	b := out.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := out.GrayAt(x, y).Y
			require.True(t, v == 0 || v == 255, "non-binary value %d at (%d,%d)", v, x, y)
		}
	}
}

func TestBinarize_ScaleFloor(t *testing.T) {
	img := grayPatchImage(220, 30)
	s := Normal()
	s.Scale = 0 // treated as 1
	out := Binarize(img, s)
	assert.Equal(t, img.Bounds().Dx(), out.Bounds().Dx())
	assert.Equal(t, img.Bounds().Dy(), out.Bounds().Dy())
}

func TestSettings_Defaults(t *testing.T) {
	n, l := Normal(), LightText()
	assert.Equal(t, uint8(180), n.Threshold)
	assert.Equal(t, uint8(150), l.Threshold)
	assert.Greater(t, l.Contrast, n.Contrast)
	assert.Greater(t, l.Brightness, n.Brightness)
}

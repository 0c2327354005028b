// Package ocr wraps the external text-recognition engine. The engine is
// a black box for the rest of the pipeline: image in, multi-line text
// out. Its line segmentation and character accuracy are treated as
// adversarial input the parsers must tolerate.
package ocr

import "image"

// Engine turns an image into multi-line text.
type Engine interface {
	Recognize(img image.Image) (string, error)
}

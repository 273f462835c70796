package clip

import (
	"errors"
	"image"
	"math"

	"golang.org/x/image/draw"
)

// DefaultWidth is the width screenshots are scaled to before embedding.
const DefaultWidth = 1000

// ErrEmptyImage is returned when resizing an image with no pixels.
var ErrEmptyImage = errors.New("image has no pixels")

// ErrInvalidWidth is returned when the target width is not positive.
var ErrInvalidWidth = errors.New("target width must be positive")

// ScaledHeight returns the height that keeps the w:h ratio at the given width.
func ScaledHeight(w, h, width int) int {
	return int(math.Round(float64(width) * float64(h) / float64(w)))
}

// Resize scales img to width, keeping its aspect ratio.
func Resize(img image.Image, width int) (image.Image, error) {
	if width <= 0 {
		return nil, ErrInvalidWidth
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, ErrEmptyImage
	}

	height := ScaledHeight(b.Dx(), b.Dy(), width)
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst, nil
}

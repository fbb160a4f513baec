package imagepkg

import (
	"image"
	"math"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// ScaleToBox scales img uniformly so that it fits inside a box x box square
// with one axis touching the box edge. Smaller images are scaled up.
func ScaleToBox(img image.Image, box int) (image.Image, error) {
	if err := CheckSize(box, box); err != nil {
		return nil, errors.WithMessage(err, "scale to box")
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, errors.Wrap(ErrInvalidDimensions, "scale empty image")
	}

	scale := math.Min(float64(box)/float64(b.Dx()), float64(box)/float64(b.Dy()))
	w := max(1, int(math.Round(float64(b.Dx())*scale)))
	h := max(1, int(math.Round(float64(b.Dy())*scale)))

	return resize.Resize(uint(w), uint(h), img, resize.Lanczos3), nil
}

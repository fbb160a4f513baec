package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
)

// MaxSources is the number of source images a mosaic can show.
const MaxSources = 4

// margin is the gap in pixels kept on each side of the canvas centre lines.
const margin = 1

// region is one slot of the mosaic and the source image drawn into it.
type region struct {
	src  int
	rect image.Rectangle
}

// Compose builds a width x height mosaic from up to four images on a white
// background, the way a group thread avatar is built from member avatars.
//
//	1 image:  fills the canvas
//	2 images: left and right halves
//	3 images: left half, then the right half split top and bottom
//	4 images: quadrants in reading order
//
// Every slot gets a center-cropped thumbnail of its source. Images past the
// fourth are ignored. The inputs are never modified.
func Compose(width, height int, images []image.Image) (*image.NRGBA, error) {
	if err := CheckSize(width, height); err != nil {
		return nil, errors.WithMessage(err, "compose")
	}
	if len(images) == 0 {
		return nil, ErrEmptyInput
	}

	canvas := imaging.New(width, height, color.White)
	for _, r := range layout(width, height, len(images)) {
		if r.rect.Empty() {
			continue
		}
		thumb := ExtractThumbnail(images[r.src], r.rect.Dx(), r.rect.Dy())
		canvas = imaging.Overlay(canvas, thumb, r.rect.Min, 1.0)
	}
	return canvas, nil
}

// layout returns the slots for n source images on a width x height canvas.
func layout(width, height, n int) []region {
	w2 := width/2 - margin
	x2 := width/2 + margin
	h2 := height/2 - margin
	y2 := height/2 + margin

	rect := func(x, y, w, h int) image.Rectangle {
		if w <= 0 || h <= 0 {
			return image.Rectangle{}
		}
		return image.Rect(x, y, x+w, y+h)
	}

	switch n {
	case 1:
		return []region{{0, rect(0, 0, width, height)}}
	case 2:
		return []region{
			{0, rect(0, 0, w2, height)},
			{1, rect(x2, 0, w2, height)},
		}
	case 3:
		return []region{
			{0, rect(0, 0, w2, height)},
			{1, rect(x2, 0, w2, h2)},
			{2, rect(x2, y2, w2, h2)},
		}
	default:
		return []region{
			{0, rect(0, 0, w2, h2)},
			{1, rect(x2, 0, w2, h2)},
			{2, rect(0, y2, w2, h2)},
			{3, rect(x2, y2, w2, h2)},
		}
	}
}

package imagepkg

import (
	"image"

	"github.com/disintegration/imaging"
)

// ExtractThumbnail scales img so it covers a w x h box and crops the overflow
// around the centre. The result is exactly w x h; a non-positive size gives an
// empty image.
func ExtractThumbnail(img image.Image, w, h int) *image.NRGBA {
	return imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
}

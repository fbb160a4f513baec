package imagepkg

import (
	"image"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleToBox(t *testing.T) {
	tests := []struct {
		name         string
		w, h, box    int
		wantW, wantH int
	}{
		{"landscape down", 400, 200, 100, 100, 50},
		{"portrait down", 200, 400, 100, 50, 100},
		{"square", 300, 300, 64, 64, 64},
		{"upscale", 20, 10, 100, 100, 50},
		{"thin", 1000, 2, 10, 10, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ScaleToBox(solid(tt.w, tt.h, red), tt.box)
			require.NoError(t, err)
			assert.Equal(t, tt.wantW, out.Bounds().Dx())
			assert.Equal(t, tt.wantH, out.Bounds().Dy())
			assert.LessOrEqual(t, out.Bounds().Dx(), tt.box)
			assert.LessOrEqual(t, out.Bounds().Dy(), tt.box)
		})
	}
}

func TestScaleToBoxInvalid(t *testing.T) {
	_, err := ScaleToBox(solid(10, 10, red), 0)
	assert.True(t, errors.Is(err, ErrInvalidDimensions))

	_, err = ScaleToBox(image.NewNRGBA(image.Rect(0, 0, 0, 0)), 10)
	assert.True(t, errors.Is(err, ErrInvalidDimensions))
}

func TestExtractThumbnail(t *testing.T) {
	// left half red, right half blue; a square crop of the centre shows both
	src := image.NewNRGBA(image.Rect(0, 0, 200, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 200; x++ {
			if x < 100 {
				src.SetNRGBA(x, y, red)
			} else {
				src.SetNRGBA(x, y, blue)
			}
		}
	}
	out := ExtractThumbnail(src, 50, 50)
	require.Equal(t, image.Rect(0, 0, 50, 50), out.Bounds())
	assertColor(t, out, 2, 25, red)
	assertColor(t, out, 47, 25, blue)

	assert.True(t, ExtractThumbnail(src, 0, 10).Bounds().Empty())
}

func TestScaleToBoxRejectsOversizedBox(t *testing.T) {
	for _, box := range []int{MaxDimension + 1, 1 << 40} {
		_, err := ScaleToBox(solid(1, 1, red), box)
		assert.True(t, errors.Is(err, ErrInvalidDimensions), "box=%d: %v", box, err)
	}
}

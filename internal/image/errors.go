package imagepkg

import "github.com/pkg/errors"

const (
	// MaxDimension bounds the width, height or box of any image this package
	// produces.
	MaxDimension = 4096
	// MaxSourceDimension bounds the width and height of a decoded source.
	MaxSourceDimension = 8192
)

var (
	// ErrInvalidDimensions is returned for a target width, height or box outside
	// 1..MaxDimension, or a source larger than MaxSourceDimension.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrEmptyInput is returned when no source images are given.
	ErrEmptyInput = errors.New("no images provided")
	// ErrUnsupportedFormat is returned for an output format other than JPEG or PNG.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

// CheckSize reports whether a w x h output is within 1..MaxDimension on both axes.
func CheckSize(w, h int) error {
	if w <= 0 || h <= 0 || w > MaxDimension || h > MaxDimension {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d (max %d)", w, h, MaxDimension)
	}
	return nil
}

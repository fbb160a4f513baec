package imagepkg

import (
	"bytes"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	_ "golang.org/x/image/webp" // register WebP decoder
)

// DefaultJPEGQuality is used when no quality is given.
const DefaultJPEGQuality = 50

// Format is an output encoding.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// Ext returns the file extension for the format, with a leading dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return "." + string(f)
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	return "image/" + string(f)
}

// ParseFormat accepts a format name such as "png", "jpg" or "JPEG".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "png":
		return FormatPNG, nil
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "%q", s)
}

// FormatFromName picks the format from a file name's extension.
func FormatFromName(name string) (Format, error) {
	return ParseFormat(filepath.Ext(name))
}

// Encode writes img to w in the given format. Quality only applies to JPEG.
func Encode(w io.Writer, img image.Image, format Format, quality int) error {
	switch format {
	case FormatJPEG:
		return EncodeJPEG(w, img, quality)
	case FormatPNG:
		return EncodePNG(w, img)
	}
	return errors.Wrapf(ErrUnsupportedFormat, "%q", format)
}

// EncodeJPEG writes img as JPEG. Quality is clamped to 1..100.
func EncodeJPEG(w io.Writer, img image.Image, quality int) error {
	quality = min(max(quality, 1), 100)
	if err := imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return errors.Wrap(err, "encode jpeg")
	}
	return nil
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := imaging.Encode(w, img, imaging.PNG); err != nil {
		return errors.Wrap(err, "encode png")
	}
	return nil
}

// EncodeBytes is Encode into a fresh byte slice.
func EncodeBytes(img image.Image, format Format, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := Encode(buf, img, format, quality); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// JPEGBytes encodes img as JPEG at DefaultJPEGQuality.
func JPEGBytes(img image.Image) ([]byte, error) {
	return EncodeBytes(img, FormatJPEG, DefaultJPEGQuality)
}

// Decode reads a JPEG, PNG, GIF, BMP, TIFF or WebP image, applying the EXIF
// orientation of JPEG files. The header is checked first so sources larger
// than MaxSourceDimension are rejected before any pixels are allocated.
func Decode(r io.Reader) (image.Image, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read image")
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrap(err, "decode image header")
	}
	if cfg.Width > MaxSourceDimension || cfg.Height > MaxSourceDimension {
		return nil, errors.Wrapf(ErrInvalidDimensions, "source %dx%d (max %d)", cfg.Width, cfg.Height, MaxSourceDimension)
	}
	img, err := imaging.Decode(bytes.NewReader(b), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(err, "decode image")
	}
	return img, nil
}

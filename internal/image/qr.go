package imagepkg

import (
	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQRPNG returns PNG bytes of a QR code for the given text, used to
// share thread invite links.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	if err := CheckSize(size, size); err != nil {
		return nil, errors.WithMessage(err, "qr")
	}
	b, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, "encode qr")
	}
	return b, nil
}

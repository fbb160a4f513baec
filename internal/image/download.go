package imagepkg

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/youruser/chatimg/internal/util"
)

// Source is a reference to an input image: either a URL to fetch or inline
// base64 data (optionally a data: URI).
type Source struct {
	URL  string `json:"url,omitempty"`
	Data string `json:"data,omitempty"`
}

// Loader turns Sources into decoded images.
type Loader struct {
	Timeout time.Duration
	Client  *http.Client
	// MaxBytes caps each download; zero means util.MaxDownloadBytes.
	MaxBytes int64
}

// Load fetches or decodes a single source.
func (l *Loader) Load(ctx context.Context, src Source) (image.Image, error) {
	switch {
	case src.Data != "":
		return DecodeBase64(src.Data)
	case src.URL != "":
		return l.DownloadImage(ctx, src.URL)
	}
	return nil, errors.New("source has neither url nor data")
}

// LoadAll loads sources in order and stops at the first failure.
func (l *Loader) LoadAll(ctx context.Context, srcs []Source) ([]image.Image, error) {
	imgs := make([]image.Image, 0, len(srcs))
	for i, s := range srcs {
		img, err := l.Load(ctx, s)
		if err != nil {
			return nil, errors.Wrapf(err, "source %d", i)
		}
		imgs = append(imgs, img)
	}
	return imgs, nil
}

// DownloadImage downloads an image from url and decodes it.
func (l *Loader) DownloadImage(ctx context.Context, url string) (image.Image, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: l.Timeout}
	}
	body, err := util.GetBytes(ctx, client, url, l.MaxBytes)
	if err != nil {
		return nil, err
	}
	return Decode(bytes.NewReader(body))
}

// DecodeBase64 decodes base64 image data, with or without a
// "data:image/...;base64," prefix.
func DecodeBase64(s string) (image.Image, error) {
	if _, after, found := strings.Cut(s, ";base64,"); found {
		s = after
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "decode base64")
	}
	return Decode(bytes.NewReader(b))
}

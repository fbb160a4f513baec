package util

import (
	"context"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

// MaxDownloadBytes is the default cap on a single download.
const MaxDownloadBytes = 20 << 20

// ErrTooLarge is returned when a response body is longer than the limit.
var ErrTooLarge = errors.New("response too large")

// GetBytes fetches url and returns the body. Non-2xx responses and bodies over
// limit bytes are errors; a non-positive limit means MaxDownloadBytes.
func GetBytes(ctx context.Context, client *http.Client, url string, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = MaxDownloadBytes
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", url)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "get %s", url)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Errorf("get %s: status %d", url, resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", url)
	}
	if int64(len(b)) > limit {
		return nil, errors.Wrapf(ErrTooLarge, "get %s: over %d bytes", url, limit)
	}
	return b, nil
}

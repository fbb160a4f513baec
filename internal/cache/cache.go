// Package cache resolves the image cache directory and creates files in it.
package cache

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	imagepkg "github.com/youruser/chatimg/internal/image"
	"github.com/youruser/chatimg/internal/util"
)

// maxAttempts bounds the search for an unused random file name.
const maxAttempts = 16

// ResolveDir returns root/uniqueName. An empty root means the user cache dir,
// or the temp dir where there is none. An empty uniqueName means appName.
func ResolveDir(root, uniqueName, appName string) (string, error) {
	if root == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			dir = os.TempDir()
		}
		root = dir
	}
	if uniqueName == "" {
		uniqueName = appName
	}
	if uniqueName == "" {
		return "", errors.New("cache dir needs a name")
	}
	return filepath.Join(root, uniqueName), nil
}

// ErrBadName is returned for a file name that is empty or leaves the cache dir.
var ErrBadName = errors.New("bad cache file name")

// Store creates files inside a single cache directory.
type Store struct {
	Dir string

	newID func() string
}

func (s *Store) id() string {
	if s.newID != nil {
		return s.newID()
	}
	return uuid.NewString()
}

// New returns a Store for the directory resolved by ResolveDir.
func New(root, uniqueName, appName string) (*Store, error) {
	dir, err := ResolveDir(root, uniqueName, appName)
	if err != nil {
		return nil, err
	}
	return &Store{Dir: dir}, nil
}

// normExt gives ext a leading dot.
func normExt(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// FileIn returns the path for name in the cache dir, creating the dir if
// needed. The extension is only appended when name does not contain it. Names
// with path separators or dot segments are rejected with ErrBadName.
func (s *Store) FileIn(name, ext string) (string, error) {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return "", errors.Wrapf(ErrBadName, "%q", name)
	}
	if err := util.EnsureDir(s.Dir); err != nil {
		return "", errors.Wrapf(err, "create cache dir %s", s.Dir)
	}
	ext = normExt(ext)
	if strings.Contains(name, ext) {
		return filepath.Join(s.Dir, name), nil
	}
	return filepath.Join(s.Dir, name+ext), nil
}

// CreateEmpty creates an empty file for name in the cache dir and returns its
// path. With randomID a UUID is appended to the name ('@' becomes '_') and a
// fresh one is drawn until the path is unused. Without it an existing file is
// truncated.
func (s *Store) CreateEmpty(name, ext string, randomID bool) (string, error) {
	if err := util.EnsureDir(s.Dir); err != nil {
		return "", errors.Wrapf(err, "create cache dir %s", s.Dir)
	}
	ext = normExt(ext)
	if strings.Contains(name, ext) || !randomID {
		path := filepath.Join(s.Dir, name)
		if !strings.Contains(name, ext) {
			path += ext
		}
		f, err := os.Create(path)
		if err != nil {
			return "", errors.Wrapf(err, "create %s", path)
		}
		return path, f.Close()
	}

	for i := 0; i < maxAttempts; i++ {
		path := filepath.Join(s.Dir, strings.ReplaceAll(name+s.id(), "@", "_")+ext)
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", errors.Wrapf(err, "create %s", path)
		}
		return path, f.Close()
	}
	return "", errors.Errorf("no free file name for %q after %d attempts", name, maxAttempts)
}

// SaveImage encodes img into a new randomly named file and returns its path.
func (s *Store) SaveImage(img image.Image, format imagepkg.Format, quality int) (string, error) {
	path, err := s.CreateEmpty("Image", format.Ext(), true)
	if err != nil {
		return "", err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", errors.Wrapf(err, "open %s", path)
	}
	if err := imagepkg.Encode(f, img, format, quality); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", errors.Wrapf(err, "close %s", path)
	}
	return path, nil
}

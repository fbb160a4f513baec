// Package config loads server settings from the environment and an optional .env file.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

type Config struct {
	Port string
	// AppName names the cache directory when ImageDirectoryName is empty.
	AppName            string
	ImageDirectoryName string
	// CacheRoot overrides the user cache dir.
	CacheRoot       string
	JPEGQuality     int
	DownloadTimeout time.Duration
	MaxBodyBytes    int64
}

func Default() Config {
	return Config{
		Port:            "8080",
		AppName:         "chatimg",
		JPEGQuality:     50,
		DownloadTimeout: 10 * time.Second,
		MaxBodyBytes:    20 << 20,
	}
}

// Load reads the given .env files (default ".env", missing files are fine) and
// then the environment on top of Default.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if !os.IsNotExist(err) {
				return Config{}, errors.Wrapf(err, "load %s", f)
			}
			continue
		}
		log.Println(f, "loaded")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a lookup function such as os.Getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	c := Default()
	if v := getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := getenv("APP_NAME"); v != "" {
		c.AppName = v
	}
	c.ImageDirectoryName = getenv("IMAGE_DIRECTORY_NAME")
	c.CacheRoot = getenv("CACHE_ROOT")

	if v := getenv("JPEG_QUALITY"); v != "" {
		q, err := strconv.Atoi(v)
		if err != nil || q < 1 || q > 100 {
			return Config{}, errors.Errorf("JPEG_QUALITY must be 1..100, got %q", v)
		}
		c.JPEGQuality = q
	}
	if v := getenv("DOWNLOAD_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, errors.Wrap(err, "DOWNLOAD_TIMEOUT")
		}
		c.DownloadTimeout = d
	}
	if v := getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, errors.Errorf("MAX_BODY_BYTES must be a positive integer, got %q", v)
		}
		c.MaxBodyBytes = n
	}
	return c, nil
}

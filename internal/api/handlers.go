package api

import (
	"image"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/youruser/chatimg/internal/cache"
	imagepkg "github.com/youruser/chatimg/internal/image"
)

// Handler serves the image endpoints.
type Handler struct {
	Loader      *imagepkg.Loader
	Store       *cache.Store
	JPEGQuality int
	// MaxBodyBytes limits request bodies; zero means no limit.
	MaxBodyBytes int64
}

type composeRequest struct {
	Width   int               `json:"width"`
	Height  int               `json:"height"`
	Images  []imagepkg.Source `json:"images"`
	Format  string            `json:"format"`
	Quality int               `json:"quality"`
	Save    bool              `json:"save"`
}

type scaleRequest struct {
	Image   imagepkg.Source `json:"image"`
	Box     int             `json:"box"`
	Format  string          `json:"format"`
	Quality int             `json:"quality"`
}

// health
func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// compose builds a mosaic avatar from up to four sources.
func (h *Handler) compose(c *gin.Context) {
	var req composeRequest
	if !h.bind(c, &req) {
		return
	}
	format, quality, ok := h.output(c, req.Format, req.Quality)
	if !ok {
		return
	}
	// validate before fetching anything
	if err := imagepkg.CheckSize(req.Width, req.Height); err != nil {
		abort(c, err)
		return
	}
	if len(req.Images) == 0 {
		abort(c, imagepkg.ErrEmptyInput)
		return
	}
	srcs := req.Images
	if len(srcs) > imagepkg.MaxSources {
		srcs = srcs[:imagepkg.MaxSources]
	}

	imgs, err := h.Loader.LoadAll(c.Request.Context(), srcs)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	out, err := imagepkg.Compose(req.Width, req.Height, imgs)
	if err != nil {
		abort(c, err)
		return
	}

	if req.Save {
		path, err := h.Store.SaveImage(out, format, quality)
		if err != nil {
			log.Println("save composite:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		name := filepath.Base(path)
		c.JSON(http.StatusCreated, gin.H{"name": name, "url": "/api/cache/" + name})
		return
	}
	h.write(c, out, format, quality)
}

// cached serves a composite saved with save:true.
func (h *Handler) cached(c *gin.Context) {
	path, err := h.Store.FileIn(c.Param("name"), "")
	if err != nil {
		if errors.Is(err, cache.ErrBadName) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.File(path)
}

// scale fits one source inside a square box.
func (h *Handler) scale(c *gin.Context) {
	var req scaleRequest
	if !h.bind(c, &req) {
		return
	}
	format, quality, ok := h.output(c, req.Format, req.Quality)
	if !ok {
		return
	}
	if err := imagepkg.CheckSize(req.Box, req.Box); err != nil {
		abort(c, err)
		return
	}
	img, err := h.Loader.Load(c.Request.Context(), req.Image)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	out, err := imagepkg.ScaleToBox(img, req.Box)
	if err != nil {
		abort(c, err)
		return
	}
	h.write(c, out, format, quality)
}

// qr endpoint returns a PNG of a QR for "text" query param
func qrHandler(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size := 256
	if s := c.Query("size"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size must be an integer"})
			return
		}
		size = v
	}
	b, err := imagepkg.GenerateQRPNG(text, size)
	if err != nil {
		abort(c, err)
		return
	}
	c.Data(http.StatusOK, imagepkg.FormatPNG.ContentType(), b)
}

func (h *Handler) bind(c *gin.Context, v any) bool {
	if h.MaxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBodyBytes)
	}
	if err := c.ShouldBindJSON(v); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// output resolves the requested format (PNG by default) and JPEG quality.
func (h *Handler) output(c *gin.Context, name string, quality int) (imagepkg.Format, int, bool) {
	format := imagepkg.FormatPNG
	if name != "" {
		f, err := imagepkg.ParseFormat(name)
		if err != nil {
			abort(c, err)
			return "", 0, false
		}
		format = f
	}
	if quality == 0 {
		quality = h.JPEGQuality
	}
	if quality == 0 {
		quality = imagepkg.DefaultJPEGQuality
	}
	return format, quality, true
}

func (h *Handler) write(c *gin.Context, img image.Image, format imagepkg.Format, quality int) {
	b, err := imagepkg.EncodeBytes(img, format, quality)
	if err != nil {
		log.Println("encode:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Printf("%s %dx%d %s", format, img.Bounds().Dx(), img.Bounds().Dy(), humanize.Bytes(uint64(len(b))))
	c.Data(http.StatusOK, format.ContentType(), b)
}

// abort maps image errors to client errors and anything else to 500.
func abort(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, imagepkg.ErrInvalidDimensions),
		errors.Is(err, imagepkg.ErrEmptyInput),
		errors.Is(err, imagepkg.ErrUnsupportedFormat):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

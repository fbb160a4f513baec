package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/youruser/chatimg/internal/api"
	"github.com/youruser/chatimg/internal/cache"
	"github.com/youruser/chatimg/internal/config"
	imagepkg "github.com/youruser/chatimg/internal/image"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	store, err := cache.New(cfg.CacheRoot, cfg.ImageDirectoryName, cfg.AppName)
	if err != nil {
		log.Fatal(err)
	}
	log.Println("image cache:", store.Dir)

	h := &api.Handler{
		Loader:       &imagepkg.Loader{Timeout: cfg.DownloadTimeout},
		Store:        store,
		JPEGQuality:  cfg.JPEGQuality,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}

	r := gin.Default()
	api.RegisterRoutes(r, h)

	log.Println("starting server on http://localhost:" + cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

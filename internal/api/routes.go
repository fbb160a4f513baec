package api

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", health)
		api.POST("/compose", h.compose)
		api.POST("/scale", h.scale)
		api.GET("/cache/:name", h.cached)
		api.GET("/qr", qrHandler)
	}
}

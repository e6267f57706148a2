package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers photo serving routes plus the room-scoped upload
// and listing routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	photos := g.Group("/photos")
	{
		photos.GET("/:id", h.Download)
		photos.GET("/:id/thumbnail", h.DownloadThumbnail)
		photos.DELETE("/:id", h.Delete)
	}

	rooms := g.Group("/rooms")
	{
		rooms.POST("/:id/photos", h.Upload)
		rooms.GET("/:id/photos", h.ListByRoom)
	}
}

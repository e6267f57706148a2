package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers room catalog and availability routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/rooms")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/available", h.Available)
		group.GET("/:id", h.Get)
		group.PATCH("/:id/status", h.UpdateStatus)
	}
}

package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers requester registry routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/requesters")
	{
		group.POST("", h.Register)
		group.GET("/:id", h.Get)
		group.GET("/:id/bookings", h.Bookings)
	}
}

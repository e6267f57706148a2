package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking lifecycle, pricing and payment routes.
func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/bookings")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.POST("/:id/quote", h.Quote)
		group.PATCH("/:id/extend", h.Extend)
		group.POST("/:id/check-in", h.CheckIn)
		group.POST("/:id/cancel", h.Cancel)
		group.POST("/:id/complete", h.Complete)
		group.POST("/:id/expire", h.Expire)
		group.POST("/:id/pay-deposit", h.PayDeposit)
		group.POST("/:id/pay-balance", h.PayBalance)
	}
}

package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookinghttp "github.com/campusbook/room-booking-backend/internal/booking/http"
	"github.com/campusbook/room-booking-backend/internal/pkg/request"
	"github.com/campusbook/room-booking-backend/internal/pkg/response"
	"github.com/campusbook/room-booking-backend/internal/requester"
	"github.com/campusbook/room-booking-backend/internal/reservation"
)

type Handler struct {
	manager *reservation.Manager
}

func NewHandler(manager *reservation.Manager) *Handler {
	return &Handler{manager: manager}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := requester.New(req.ID, requester.Category(req.Category))
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.manager.RegisterRequester(c.Request.Context(), r); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewRequesterResponse(r))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid requester id"})
		return
	}

	r, err := h.manager.RequesterByID(uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRequesterResponse(r))
}

// Bookings lists the requester's bookings, oldest first.
func (h *Handler) Bookings(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid requester id"})
		return
	}

	if _, err := h.manager.RequesterByID(uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, bookinghttp.NewBookingResponses(h.manager.BookingsForRequester(uri.ID)))
}

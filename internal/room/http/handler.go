package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusbook/room-booking-backend/internal/cache"
	"github.com/campusbook/room-booking-backend/internal/pkg/request"
	"github.com/campusbook/room-booking-backend/internal/pkg/response"
	"github.com/campusbook/room-booking-backend/internal/reservation"
	"github.com/campusbook/room-booking-backend/internal/room"
)

type Handler struct {
	manager *reservation.Manager
	cache   *cache.RoomCache // nil when no cache is configured
}

func NewHandler(manager *reservation.Manager, roomCache *cache.RoomCache) *Handler {
	return &Handler{
		manager: manager,
		cache:   roomCache,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	status := room.Status(req.Status)
	if req.Status == "" {
		status = room.StatusOperable
	}

	r, err := room.New(req.ID, req.Location, req.Number, req.Capacity, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.manager.AddRoom(c.Request.Context(), r); err != nil {
		response.Error(c, err)
		return
	}

	h.invalidateCache(c)
	c.JSON(http.StatusCreated, NewRoomResponse(r))
}

func (h *Handler) List(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cache != nil {
		cached, err := h.cache.Get(ctx)
		if err != nil {
			log.Printf("room cache read failed: %v", err)
		} else if cached != nil {
			c.JSON(http.StatusOK, NewRoomResponses(cached))
			return
		}
	}

	rooms := h.manager.Rooms()

	if h.cache != nil {
		if err := h.cache.Set(ctx, rooms); err != nil {
			log.Printf("room cache write failed: %v", err)
		}
	}
	c.JSON(http.StatusOK, NewRoomResponses(rooms))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	r, err := h.manager.RoomByID(req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRoomResponse(r))
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room id"})
		return
	}

	var req UpdateRoomStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.manager.UpdateRoomStatus(c.Request.Context(), uri.ID, room.Status(req.Status)); err != nil {
		response.Error(c, err)
		return
	}

	h.invalidateCache(c)
	r, err := h.manager.RoomByID(uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRoomResponse(r))
}

func (h *Handler) Available(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		response.Error(c, err)
		return
	}
	if req.Capacity == 0 {
		req.Capacity = 1
	}

	rooms, err := h.manager.FindAvailableRooms(c.Request.Context(), req.Start, req.End, req.Capacity)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewRoomResponses(rooms))
}

func (h *Handler) invalidateCache(c *gin.Context) {
	if h.cache == nil {
		return
	}
	if err := h.cache.Invalidate(c.Request.Context()); err != nil {
		log.Printf("room cache invalidation failed: %v", err)
	}
}

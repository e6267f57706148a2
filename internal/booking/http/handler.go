package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusbook/room-booking-backend/internal/booking"
	"github.com/campusbook/room-booking-backend/internal/payment"
	"github.com/campusbook/room-booking-backend/internal/pkg/request"
	"github.com/campusbook/room-booking-backend/internal/pkg/response"
	"github.com/campusbook/room-booking-backend/internal/reservation"
)

type Handler struct {
	manager  *reservation.Manager
	payments *payment.Service
}

func NewHandler(manager *reservation.Manager, payments *payment.Service) *Handler {
	return &Handler{
		manager:  manager,
		payments: payments,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.manager.CreateBooking(c.Request.Context(), req.RequesterID, req.RoomID, req.StartTime, req.EndTime)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	params.Normalize()

	var all []*booking.Booking
	if raw := c.Query("requester_id"); raw != "" {
		requesterID, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid requester_id"})
			return
		}
		all = h.manager.BookingsForRequester(requesterID)
	} else {
		all = h.manager.Bookings()
	}
	total := len(all)

	low := (params.Page - 1) * params.PageSize
	if low > total {
		low = total
	}
	high := low + params.PageSize
	if high > total {
		high = total
	}

	c.JSON(http.StatusOK, response.NewPageResponse(NewBookingResponses(all[low:high]), params.Page, params.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	b, ok := h.bindBooking(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Quote prices the booking at the requester's category rate and attaches the
// amounts to the booking for later payment calls.
func (h *Handler) Quote(c *gin.Context) {
	b, ok := h.bindBooking(c)
	if !ok {
		return
	}

	r, err := h.manager.RequesterByID(b.RequesterID)
	if err != nil {
		response.Error(c, err)
		return
	}

	total, err := h.payments.CalculatePrice(b, r.Category)
	if err != nil {
		response.Error(c, err)
		return
	}
	deposit, err := h.payments.CalculateDeposit(b, r.Category)
	if err != nil {
		response.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.manager.SetBookingTotal(ctx, b.ID, total); err != nil {
		response.Error(c, err)
		return
	}
	if err := h.manager.SetBookingDeposit(ctx, b.ID, deposit); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, QuoteResponse{
		BookingID: b.ID,
		Total:     MoneyResponse{Cents: total.Cents, Currency: total.Currency},
		Deposit:   MoneyResponse{Cents: deposit.Cents, Currency: deposit.Currency},
	})
}

func (h *Handler) Extend(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req ExtendBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.manager.ExtendBooking(c.Request.Context(), uri.ID, req.EndTime); err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithBooking(c, uri.ID)
}

func (h *Handler) CheckIn(c *gin.Context) {
	h.applyEvent(c, h.manager.CheckIn)
}

func (h *Handler) Cancel(c *gin.Context) {
	h.applyEvent(c, h.manager.CancelBooking)
}

func (h *Handler) Complete(c *gin.Context) {
	h.applyEvent(c, h.manager.Complete)
}

func (h *Handler) Expire(c *gin.Context) {
	h.applyEvent(c, h.manager.Expire)
}

func (h *Handler) PayDeposit(c *gin.Context) {
	h.pay(c, h.payments.PayDeposit)
}

func (h *Handler) PayBalance(c *gin.Context) {
	h.pay(c, h.payments.PayRemainingBalance)
}

func (h *Handler) applyEvent(c *gin.Context, apply func(ctx context.Context, bookingID int) error) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := apply(c.Request.Context(), uri.ID); err != nil {
		response.Error(c, err)
		return
	}
	h.respondWithBooking(c, uri.ID)
}

func (h *Handler) pay(c *gin.Context, charge func(b *booking.Booking, method payment.Method) error) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.manager.BookingByID(uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := charge(b, payment.Method(req.Method)); err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) bindBooking(c *gin.Context) (*booking.Booking, bool) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return nil, false
	}

	b, err := h.manager.BookingByID(uri.ID)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return b, true
}

func (h *Handler) respondWithBooking(c *gin.Context, id int) {
	b, err := h.manager.BookingByID(id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

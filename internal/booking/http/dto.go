package http

import (
	"time"

	"github.com/campusbook/room-booking-backend/internal/booking"
	"github.com/campusbook/room-booking-backend/internal/money"
)

// CreateBookingRequest books a room for a requester over [start_time,
// end_time).
type CreateBookingRequest struct {
	RequesterID int       `json:"requester_id" binding:"min=0"`
	RoomID      int       `json:"room_id" binding:"min=0"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
}

// ExtendBookingRequest moves a booking's end time forward.
type ExtendBookingRequest struct {
	EndTime time.Time `json:"end_time" binding:"required"`
}

// PaymentRequest carries the payment method for deposit and balance charges.
type PaymentRequest struct {
	Method string `json:"method" binding:"required,oneof=credit debit institutional"`
}

type MoneyResponse struct {
	Cents    int64  `json:"cents"`
	Currency string `json:"currency"`
}

func newMoneyResponse(m *money.Money) *MoneyResponse {
	if m == nil {
		return nil
	}
	return &MoneyResponse{Cents: m.Cents, Currency: m.Currency}
}

type BookingResponse struct {
	ID          int            `json:"id"`
	RoomID      int            `json:"room_id"`
	RequesterID int            `json:"requester_id"`
	StartTime   time.Time      `json:"start_time"`
	EndTime     time.Time      `json:"end_time"`
	Status      string         `json:"status"`
	Total       *MoneyResponse `json:"total,omitempty"`
	Deposit     *MoneyResponse `json:"deposit,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:          b.ID,
		RoomID:      b.RoomID,
		RequesterID: b.RequesterID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      string(b.Status),
		Total:       newMoneyResponse(b.Total),
		Deposit:     newMoneyResponse(b.Deposit),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func NewBookingResponses(bookings []*booking.Booking) []BookingResponse {
	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	return items
}

// QuoteResponse is the priced view of a booking: full-span total plus the
// flat deposit.
type QuoteResponse struct {
	BookingID int           `json:"booking_id"`
	Total     MoneyResponse `json:"total"`
	Deposit   MoneyResponse `json:"deposit"`
}

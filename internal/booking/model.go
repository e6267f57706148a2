package booking

import (
	"net/http"
	"time"

	"github.com/campusbook/room-booking-backend/internal/money"
	"github.com/campusbook/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrTimeConflict      = apperror.New(http.StatusConflict, "room is not available for the requested period")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrMissingTimes      = apperror.New(http.StatusBadRequest, "start and end times are required")
	ErrInvalidExtension  = apperror.New(http.StatusBadRequest, "new end time must be after the current end time")
	ErrIllegalTransition = apperror.New(http.StatusConflict, "illegal booking state transition")
)

// Booking reserves one room for one requester over the half-open interval
// [StartTime, EndTime). Bookings are never physically deleted; terminal
// lifecycle states retain them for history.
type Booking struct {
	ID          int          `json:"id"`
	RoomID      int          `json:"room_id"`
	RequesterID int          `json:"requester_id"`
	StartTime   time.Time    `json:"start_time"`
	EndTime     time.Time    `json:"end_time"`
	Status      State        `json:"status"`
	Total       *money.Money `json:"total,omitempty"`
	Deposit     *money.Money `json:"deposit,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// New validates the time span and builds a Booking in the initial state.
func New(id, requesterID, roomID int, start, end time.Time) (*Booking, error) {
	if start.IsZero() || end.IsZero() {
		return nil, ErrMissingTimes
	}
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}
	now := time.Now().UTC()
	return &Booking{
		ID:          id,
		RoomID:      roomID,
		RequesterID: requesterID,
		StartTime:   start,
		EndTime:     end,
		Status:      StateCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Overlaps reports whether the booking's interval intersects [start, end).
// Touching endpoints do not overlap; back-to-back bookings are allowed.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && b.EndTime.After(start)
}

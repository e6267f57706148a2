package http

import (
	"time"

	"github.com/campusbook/room-booking-backend/internal/booking"
	"github.com/campusbook/room-booking-backend/internal/room"
)

// CreateRoomRequest registers a new room in the catalog.
type CreateRoomRequest struct {
	ID       int    `json:"id" binding:"min=0"`
	Location string `json:"location" binding:"required"`
	Number   string `json:"number" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	Status   string `json:"status" binding:"omitempty,oneof=operable disabled maintenance"`
}

// UpdateRoomStatusRequest changes a room's operability status.
type UpdateRoomStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=operable disabled maintenance"`
}

// AvailabilityRequest queries free rooms over [start, end) at a minimum
// capacity.
type AvailabilityRequest struct {
	Start    time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End      time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	Capacity int       `form:"capacity" binding:"omitempty,min=1"`
}

// Validate performs custom validation for AvailabilityRequest.
func (r *AvailabilityRequest) Validate() error {
	if !r.Start.Before(r.End) {
		return booking.ErrInvalidTimeRange
	}
	return nil
}

type RoomResponse struct {
	ID        int       `json:"id"`
	Location  string    `json:"location"`
	Number    string    `json:"number"`
	Capacity  int       `json:"capacity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func NewRoomResponse(r *room.Room) RoomResponse {
	return RoomResponse{
		ID:        r.ID,
		Location:  r.Location,
		Number:    r.Number,
		Capacity:  r.Capacity,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
	}
}

func NewRoomResponses(rooms []*room.Room) []RoomResponse {
	items := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		items[i] = NewRoomResponse(r)
	}
	return items
}

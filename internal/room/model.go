package room

import (
	"net/http"
	"strings"
	"time"

	"github.com/campusbook/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "room not found")
	ErrDuplicateID     = apperror.New(http.StatusConflict, "room id already exists")
	ErrInvalidID       = apperror.New(http.StatusBadRequest, "room id cannot be negative")
	ErrEmptyLocation   = apperror.New(http.StatusBadRequest, "location is required")
	ErrEmptyNumber     = apperror.New(http.StatusBadRequest, "room number is required")
	ErrInvalidCapacity = apperror.New(http.StatusBadRequest, "capacity must be positive")
	ErrInvalidStatus   = apperror.New(http.StatusBadRequest, "status must be operable, disabled or maintenance")
)

// Status describes whether a room can currently be booked.
type Status string

const (
	StatusOperable    Status = "operable"
	StatusDisabled    Status = "disabled"
	StatusMaintenance Status = "maintenance"
)

// Valid reports whether s is one of the three known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOperable, StatusDisabled, StatusMaintenance:
		return true
	}
	return false
}

// Room is a bookable unit (e.g. Petrie 216). Rooms are created once by an
// administrative action and never deleted, only disabled.
type Room struct {
	ID        int       `json:"id"`
	Location  string    `json:"location"`
	Number    string    `json:"number"`
	Capacity  int       `json:"capacity"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// New validates and builds a Room in the given status.
func New(id int, location, number string, capacity int, status Status) (*Room, error) {
	if id < 0 {
		return nil, ErrInvalidID
	}
	if strings.TrimSpace(location) == "" {
		return nil, ErrEmptyLocation
	}
	if strings.TrimSpace(number) == "" {
		return nil, ErrEmptyNumber
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	return &Room{
		ID:       id,
		Location: location,
		Number:   number,
		Capacity: capacity,
		Status:   status,
	}, nil
}

// SetStatus changes the operability status. This is the only way a room is
// mutated after creation.
func (r *Room) SetStatus(status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}
	r.Status = status
	return nil
}

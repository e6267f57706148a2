package requester

import (
	"net/http"

	"github.com/campusbook/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "requester not found")
	ErrDuplicateID     = apperror.New(http.StatusConflict, "requester id already registered")
	ErrInvalidID       = apperror.New(http.StatusBadRequest, "requester id cannot be negative")
	ErrInvalidCategory = apperror.New(http.StatusBadRequest, "invalid requester category")
)

// Category classifies a requester for pricing and notification purposes.
type Category string

const (
	CategoryStudent Category = "student"
	CategoryFaculty Category = "faculty"
	CategoryStaff   Category = "staff"
	CategoryPartner Category = "partner"
	CategoryAdmin   Category = "admin"
)

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryStudent, CategoryFaculty, CategoryStaff, CategoryPartner, CategoryAdmin:
		return true
	}
	return false
}

// Requester is the identity the core reads when pricing a booking.
// Account creation and validation live outside this service; only the id and
// category ever reach the booking path.
type Requester struct {
	ID       int      `json:"id"`
	Category Category `json:"category"`
}

// New validates and builds a Requester.
func New(id int, category Category) (*Requester, error) {
	if id < 0 {
		return nil, ErrInvalidID
	}
	if !category.Valid() {
		return nil, ErrInvalidCategory
	}
	return &Requester{ID: id, Category: category}, nil
}

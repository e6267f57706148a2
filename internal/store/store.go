package store

import (
	"context"
	"errors"

	"github.com/campusbook/room-booking-backend/internal/booking"
	"github.com/campusbook/room-booking-backend/internal/requester"
	"github.com/campusbook/room-booking-backend/internal/room"
)

var (
	ErrNotFound  = errors.New("store: record not found")
	ErrDuplicate = errors.New("store: duplicate id")
)

// Store is the persistence collaborator. The reservation manager calls it
// best-effort after each in-memory mutation; a failing call is logged by the
// caller and never unwinds the in-memory operation. Records are never
// deleted: rooms are disabled and bookings end in a terminal state.
type Store interface {
	Initialize(ctx context.Context) error

	SaveRoom(ctx context.Context, r *room.Room) error
	LoadAllRooms(ctx context.Context) ([]*room.Room, error)
	UpdateRoom(ctx context.Context, r *room.Room) error

	SaveBooking(ctx context.Context, b *booking.Booking) error
	LoadAllBookings(ctx context.Context) ([]*booking.Booking, error)
	UpdateBooking(ctx context.Context, b *booking.Booking) error

	SaveRequester(ctx context.Context, r *requester.Requester) error
	LoadAllRequesters(ctx context.Context) ([]*requester.Requester, error)
	UpdateRequester(ctx context.Context, r *requester.Requester) error
}

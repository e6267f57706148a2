package reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbook/room-booking-backend/internal/booking"
	"github.com/campusbook/room-booking-backend/internal/money"
	"github.com/campusbook/room-booking-backend/internal/requester"
	"github.com/campusbook/room-booking-backend/internal/room"
)

var (
	day10am = time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	day11am = day10am.Add(time.Hour)
	day12pm = day10am.Add(2 * time.Hour)
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager(nil, nil, nil)

	r, err := room.New(1, "Lassonde", "101", 4, room.StatusOperable)
	require.NoError(t, err)
	require.NoError(t, m.AddRoom(context.Background(), r))

	req, err := requester.New(1, requester.CategoryStudent)
	require.NoError(t, err)
	require.NoError(t, m.RegisterRequester(context.Background(), req))

	return m
}

func TestCreateBookingConflicts(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	first, err := m.CreateBooking(ctx, 1, 1, day10am, day11am)
	require.NoError(t, err)
	assert.Equal(t, booking.StateCreated, first.Status)

	t.Run("overlapping interval rejected", func(t *testing.T) {
		_, err := m.CreateBooking(ctx, 1, 1, day10am.Add(30*time.Minute), day11am.Add(30*time.Minute))
		assert.ErrorIs(t, err, booking.ErrTimeConflict)
	})

	t.Run("back-to-back allowed", func(t *testing.T) {
		_, err := m.CreateBooking(ctx, 1, 1, day11am, day12pm)
		assert.NoError(t, err)
	})

	t.Run("cancelled booking frees the slot", func(t *testing.T) {
		require.NoError(t, m.CancelBooking(ctx, first.ID))
		_, err := m.CreateBooking(ctx, 1, 1, day10am, day11am)
		assert.NoError(t, err)
	})

	t.Run("unknown requester rejected", func(t *testing.T) {
		_, err := m.CreateBooking(ctx, 99, 1, day12pm, day12pm.Add(time.Hour))
		assert.ErrorIs(t, err, requester.ErrNotFound)
	})

	t.Run("unknown room rejected", func(t *testing.T) {
		_, err := m.CreateBooking(ctx, 1, 99, day12pm, day12pm.Add(time.Hour))
		assert.ErrorIs(t, err, room.ErrNotFound)
	})
}

func TestCreateBookingRequiresOperableRoom(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	require.NoError(t, m.UpdateRoomStatus(ctx, 1, room.StatusMaintenance))
	_, err := m.CreateBooking(ctx, 1, 1, day10am, day11am)
	assert.ErrorIs(t, err, booking.ErrTimeConflict)
}

func TestExtendBooking(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	a, err := m.CreateBooking(ctx, 1, 1, day10am, day11am)
	require.NoError(t, err)
	_, err = m.CreateBooking(ctx, 1, 1, day11am.Add(30*time.Minute), day12pm.Add(30*time.Minute))
	require.NoError(t, err)

	t.Run("extension into an occupied slot fails and leaves the end untouched", func(t *testing.T) {
		err := m.ExtendBooking(ctx, a.ID, day12pm)
		assert.ErrorIs(t, err, booking.ErrTimeConflict)

		got, err := m.BookingByID(a.ID)
		require.NoError(t, err)
		assert.True(t, got.EndTime.Equal(day11am))
	})

	t.Run("extension up to the neighbour succeeds", func(t *testing.T) {
		newEnd := day11am.Add(30 * time.Minute)
		require.NoError(t, m.ExtendBooking(ctx, a.ID, newEnd))

		got, err := m.BookingByID(a.ID)
		require.NoError(t, err)
		assert.True(t, got.EndTime.Equal(newEnd))
	})

	t.Run("shrinking rejected", func(t *testing.T) {
		err := m.ExtendBooking(ctx, a.ID, day10am.Add(15*time.Minute))
		assert.ErrorIs(t, err, booking.ErrInvalidExtension)
	})
}

func TestFindAvailableRooms(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	small, err := room.New(2, "Lassonde", "102", 2, room.StatusOperable)
	require.NoError(t, err)
	require.NoError(t, m.AddRoom(ctx, small))
	disabled, err := room.New(3, "Lassonde", "103", 10, room.StatusDisabled)
	require.NoError(t, err)
	require.NoError(t, m.AddRoom(ctx, disabled))

	t.Run("filters capacity and status", func(t *testing.T) {
		rooms, err := m.FindAvailableRooms(ctx, day10am, day11am, 4)
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, 1, rooms[0].ID)
	})

	t.Run("booked room drops out of the window", func(t *testing.T) {
		_, err := m.CreateBooking(ctx, 1, 1, day10am, day11am)
		require.NoError(t, err)

		rooms, err := m.FindAvailableRooms(ctx, day10am, day11am, 1)
		require.NoError(t, err)
		require.Len(t, rooms, 1)
		assert.Equal(t, 2, rooms[0].ID)

		// The adjacent window still offers both operable rooms.
		rooms, err = m.FindAvailableRooms(ctx, day11am, day12pm, 1)
		require.NoError(t, err)
		assert.Len(t, rooms, 2)
	})

	t.Run("invalid queries rejected", func(t *testing.T) {
		_, err := m.FindAvailableRooms(ctx, day11am, day10am, 1)
		assert.ErrorIs(t, err, booking.ErrInvalidTimeRange)
		_, err = m.FindAvailableRooms(ctx, time.Time{}, day11am, 1)
		assert.ErrorIs(t, err, booking.ErrMissingTimes)
		_, err = m.FindAvailableRooms(ctx, day10am, day11am, 0)
		assert.ErrorIs(t, err, room.ErrInvalidCapacity)
	})
}

func TestCheckInTiming(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	b, err := m.CreateBooking(ctx, 1, 1, day10am, day11am)
	require.NoError(t, err)

	t.Run("early check-in leaves the booking created", func(t *testing.T) {
		m.now = func() time.Time { return day10am.Add(-20 * time.Minute) }
		require.NoError(t, m.CheckIn(ctx, b.ID))

		got, err := m.BookingByID(b.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StateCreated, got.Status)
	})

	t.Run("check-in within the grace window", func(t *testing.T) {
		m.now = func() time.Time { return day10am.Add(10 * time.Minute) }
		require.NoError(t, m.CheckIn(ctx, b.ID))

		got, err := m.BookingByID(b.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StateCheckedIn, got.Status)
	})

	t.Run("completing a checked-in booking", func(t *testing.T) {
		require.NoError(t, m.Complete(ctx, b.ID))
		got, err := m.BookingByID(b.ID)
		require.NoError(t, err)
		assert.Equal(t, booking.StateCompleted, got.Status)
	})

	t.Run("events on terminal bookings rejected", func(t *testing.T) {
		assert.ErrorIs(t, m.CancelBooking(ctx, b.ID), booking.ErrIllegalTransition)
	})
}

func TestLateCheckInExpires(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	b, err := m.CreateBooking(ctx, 1, 1, day10am, day11am)
	require.NoError(t, err)

	m.now = func() time.Time { return day10am.Add(booking.CheckInGrace + time.Minute) }
	require.NoError(t, m.CheckIn(ctx, b.ID))

	got, err := m.BookingByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StateExpired, got.Status)
}

func TestConcurrentCreateBooking(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	const attempts = 16
	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = m.CreateBooking(ctx, 1, 1, day10am, day11am)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, booking.ErrTimeConflict)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestBookingAmountsAndSnapshots(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	b, err := m.CreateBooking(ctx, 1, 1, day10am, day12pm)
	require.NoError(t, err)

	total, _ := money.New(4000, "CAD")
	deposit, _ := money.New(2000, "CAD")
	require.NoError(t, m.SetBookingTotal(ctx, b.ID, total))
	require.NoError(t, m.SetBookingDeposit(ctx, b.ID, deposit))

	got, err := m.BookingByID(b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Total)
	assert.Equal(t, int64(4000), got.Total.Cents)

	// Mutating the snapshot must not leak into the manager's copy.
	got.Total.Cents = 1
	again, err := m.BookingByID(b.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4000), again.Total.Cents)
}

func TestBookingsForRequester(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	other, err := requester.New(2, requester.CategoryFaculty)
	require.NoError(t, err)
	require.NoError(t, m.RegisterRequester(ctx, other))

	_, err = m.CreateBooking(ctx, 1, 1, day10am, day11am)
	require.NoError(t, err)
	_, err = m.CreateBooking(ctx, 2, 1, day11am, day12pm)
	require.NoError(t, err)

	assert.Len(t, m.BookingsForRequester(1), 1)
	assert.Len(t, m.BookingsForRequester(2), 1)
	assert.Len(t, m.Bookings(), 2)

	category, ok := m.RequesterCategory(2)
	require.True(t, ok)
	assert.Equal(t, requester.CategoryFaculty, category)
}

// stubProvider returns fixed rooms or an error.
type stubProvider struct {
	rooms []*room.Room
	err   error
}

func (p *stubProvider) FindAvailableRooms(ctx context.Context, start, end time.Time, minCapacity int) ([]*room.Room, error) {
	return p.rooms, p.err
}

func TestAvailabilityUnionsProviderRooms(t *testing.T) {
	ctx := context.Background()
	external := &room.Room{ID: 1017, Location: "Partner", Number: "17", Capacity: 6, Status: room.StatusOperable}

	t.Run("provider rooms appended", func(t *testing.T) {
		m := newTestManager(t)
		m.provider = &stubProvider{rooms: []*room.Room{external}}

		rooms, err := m.FindAvailableRooms(ctx, day10am, day11am, 1)
		require.NoError(t, err)
		require.Len(t, rooms, 2)
		assert.Equal(t, 1, rooms[0].ID)
		assert.Equal(t, 1017, rooms[1].ID)
	})

	t.Run("provider failure degrades to internal rooms", func(t *testing.T) {
		m := newTestManager(t)
		m.provider = &stubProvider{err: context.DeadlineExceeded}

		rooms, err := m.FindAvailableRooms(ctx, day10am, day11am, 1)
		require.NoError(t, err)
		assert.Len(t, rooms, 1)
	})
}

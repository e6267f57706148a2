package reservation

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/campusbook/room-booking-backend/internal/booking"
	"github.com/campusbook/room-booking-backend/internal/money"
	"github.com/campusbook/room-booking-backend/internal/notify"
	"github.com/campusbook/room-booking-backend/internal/requester"
	"github.com/campusbook/room-booking-backend/internal/room"
	"github.com/campusbook/room-booking-backend/internal/store"
)

// AvailabilityProvider supplies externally sourced rooms for an availability
// query. Results are unioned with the internal ones without deduplication;
// providers namespace their ids to avoid collisions.
type AvailabilityProvider interface {
	FindAvailableRooms(ctx context.Context, start, end time.Time, minCapacity int) ([]*room.Room, error)
}

// Manager is the authoritative in-memory store of rooms, bookings and
// requesters, and the concurrency boundary for every mutation. A single
// mutex serializes all mutating operations so that an availability check and
// the booking insertion it guards are atomic; read-only queries share the
// read side of the lock and never observe a half-written booking.
//
// Persistence through the Store and lookups through the provider are
// best-effort collaborator calls; a failing store call is logged, never
// propagated. No background task or timer exists here: time-guarded
// transitions are evaluated only when CheckIn or Expire is invoked.
type Manager struct {
	mu            sync.RWMutex
	rooms         map[int]*room.Room
	bookings      map[int]*booking.Booking
	requesters    map[int]*requester.Requester
	nextBookingID int

	store    store.Store
	provider AvailabilityProvider
	fanout   *notify.Fanout
	now      func() time.Time
}

// NewManager builds a Manager. Store and provider may be nil; a nil fanout
// gets replaced by an empty one.
func NewManager(st store.Store, provider AvailabilityProvider, fanout *notify.Fanout) *Manager {
	if fanout == nil {
		fanout = notify.NewFanout()
	}
	return &Manager{
		rooms:         make(map[int]*room.Room),
		bookings:      make(map[int]*booking.Booking),
		requesters:    make(map[int]*requester.Requester),
		nextBookingID: 1,
		store:         st,
		provider:      provider,
		fanout:        fanout,
		now:           time.Now,
	}
}

// Fanout exposes the notification registry so callers can attach and detach
// subscribers on individual bookings.
func (m *Manager) Fanout() *notify.Fanout {
	return m.fanout
}

// LoadFromStore hydrates the in-memory collections from the configured store.
// Intended for startup, before the manager serves traffic.
func (m *Manager) LoadFromStore(ctx context.Context) error {
	if m.store == nil {
		return nil
	}

	rooms, err := m.store.LoadAllRooms(ctx)
	if err != nil {
		return fmt.Errorf("load rooms: %w", err)
	}
	requesters, err := m.store.LoadAllRequesters(ctx)
	if err != nil {
		return fmt.Errorf("load requesters: %w", err)
	}
	bookings, err := m.store.LoadAllBookings(ctx)
	if err != nil {
		return fmt.Errorf("load bookings: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range rooms {
		m.rooms[r.ID] = r
	}
	for _, r := range requesters {
		m.requesters[r.ID] = r
	}
	for _, b := range bookings {
		m.bookings[b.ID] = b
		if b.ID >= m.nextBookingID {
			m.nextBookingID = b.ID + 1
		}
		m.fanout.Register(b)
	}
	return nil
}

// === Rooms ===

// AddRoom registers a new room. Room ids are unique; rooms are never deleted
// afterwards, only disabled.
func (m *Manager) AddRoom(ctx context.Context, r *room.Room) error {
	if r == nil {
		return room.ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.rooms[r.ID]; exists {
		return room.ErrDuplicateID
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = m.now().UTC()
	}
	m.rooms[r.ID] = r

	m.persist(ctx, "save room", func(ctx context.Context) error {
		return m.store.SaveRoom(ctx, r)
	})
	return nil
}

// UpdateRoomStatus changes a room's operability status.
func (m *Manager) UpdateRoomStatus(ctx context.Context, roomID int, status room.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return room.ErrNotFound
	}
	if err := r.SetStatus(status); err != nil {
		return err
	}

	m.persist(ctx, "update room", func(ctx context.Context) error {
		return m.store.UpdateRoom(ctx, r)
	})
	return nil
}

// RoomByID returns a snapshot of the room.
func (m *Manager) RoomByID(id int) (*room.Room, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rooms[id]
	if !ok {
		return nil, room.ErrNotFound
	}
	snapshot := *r
	return &snapshot, nil
}

// Rooms returns snapshots of all rooms ordered by id.
func (m *Manager) Rooms() []*room.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rooms := make([]*room.Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		snapshot := *r
		rooms = append(rooms, &snapshot)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].ID < rooms[j].ID })
	return rooms
}

// === Requesters ===

// RegisterRequester adds a requester to the registry. Ids are unique.
func (m *Manager) RegisterRequester(ctx context.Context, r *requester.Requester) error {
	if r == nil {
		return requester.ErrNotFound
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.requesters[r.ID]; exists {
		return requester.ErrDuplicateID
	}
	m.requesters[r.ID] = r

	m.persist(ctx, "save requester", func(ctx context.Context) error {
		return m.store.SaveRequester(ctx, r)
	})
	return nil
}

// RequesterByID returns a snapshot of the requester.
func (m *Manager) RequesterByID(id int) (*requester.Requester, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.requesters[id]
	if !ok {
		return nil, requester.ErrNotFound
	}
	snapshot := *r
	return &snapshot, nil
}

// RequesterCategory resolves a requester id to its category. Shaped to plug
// directly into notify.CategoryLookup.
func (m *Manager) RequesterCategory(id int) (requester.Category, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.requesters[id]
	if !ok {
		return "", false
	}
	return r.Category, true
}

// === Availability ===

// FindAvailableRooms returns every operable internal room of sufficient
// capacity with no non-terminal booking overlapping [start, end), unioned
// with whatever the external provider offers for the same query. The union
// is not deduplicated; provider ids are namespaced by the provider itself.
// A provider failure degrades the result to internal rooms only.
func (m *Manager) FindAvailableRooms(ctx context.Context, start, end time.Time, minCapacity int) ([]*room.Room, error) {
	if start.IsZero() || end.IsZero() {
		return nil, booking.ErrMissingTimes
	}
	if !start.Before(end) {
		return nil, booking.ErrInvalidTimeRange
	}
	if minCapacity <= 0 {
		return nil, room.ErrInvalidCapacity
	}

	m.mu.RLock()
	var available []*room.Room
	for _, r := range m.rooms {
		if r.Capacity >= minCapacity && r.Status == room.StatusOperable && m.roomFreeLocked(r.ID, start, end, 0) {
			snapshot := *r
			available = append(available, &snapshot)
		}
	}
	m.mu.RUnlock()

	sort.Slice(available, func(i, j int) bool { return available[i].ID < available[j].ID })

	if m.provider != nil {
		external, err := m.provider.FindAvailableRooms(ctx, start, end, minCapacity)
		if err != nil {
			log.Printf("availability provider query failed: %v", err)
		} else {
			available = append(available, external...)
		}
	}
	return available, nil
}

// roomFreeLocked reports whether no non-terminal booking on the room overlaps
// [start, end). excludeBookingID skips one booking, used when extending.
// Callers hold at least the read lock.
func (m *Manager) roomFreeLocked(roomID int, start, end time.Time, excludeBookingID int) bool {
	for _, b := range m.bookings {
		if b.RoomID != roomID || b.ID == excludeBookingID {
			continue
		}
		if b.Status.Terminal() {
			continue
		}
		if b.Overlaps(start, end) {
			return false
		}
	}
	return true
}

// === Bookings ===

// CreateBooking books a room for a requester over [start, end). The
// availability check and the insertion happen under one critical section, so
// two concurrent creations for the same room and interval cannot both
// succeed. Pricing is not computed here; callers go through the payment
// service and attach amounts via SetBookingTotal/SetBookingDeposit.
func (m *Manager) CreateBooking(ctx context.Context, requesterID, roomID int, start, end time.Time) (*booking.Booking, error) {
	if start.IsZero() || end.IsZero() {
		return nil, booking.ErrMissingTimes
	}
	if !start.Before(end) {
		return nil, booking.ErrInvalidTimeRange
	}

	m.mu.Lock()

	if _, ok := m.requesters[requesterID]; !ok {
		m.mu.Unlock()
		return nil, requester.ErrNotFound
	}
	r, ok := m.rooms[roomID]
	if !ok {
		m.mu.Unlock()
		return nil, room.ErrNotFound
	}
	if r.Status != room.StatusOperable || !m.roomFreeLocked(roomID, start, end, 0) {
		m.mu.Unlock()
		return nil, booking.ErrTimeConflict
	}

	b, err := booking.New(m.nextBookingID, requesterID, roomID, start, end)
	if err != nil {
		m.mu.Unlock()
		return nil, err
	}
	m.nextBookingID++
	m.bookings[b.ID] = b

	m.persist(ctx, "save booking", func(ctx context.Context) error {
		return m.store.SaveBooking(ctx, b)
	})

	snapshot := snapshotBooking(b)
	m.mu.Unlock()

	m.fanout.Register(snapshot)
	return snapshot, nil
}

// ExtendBooking moves a booking's end time forward. Only the delta interval
// [oldEnd, newEnd) is checked for conflicts on the same room; on failure the
// original end time is untouched.
func (m *Manager) ExtendBooking(ctx context.Context, bookingID int, newEnd time.Time) error {
	if newEnd.IsZero() {
		return booking.ErrMissingTimes
	}

	m.mu.Lock()

	b, ok := m.bookings[bookingID]
	if !ok {
		m.mu.Unlock()
		return booking.ErrNotFound
	}
	if !newEnd.After(b.EndTime) {
		m.mu.Unlock()
		return booking.ErrInvalidExtension
	}
	r, ok := m.rooms[b.RoomID]
	if !ok {
		m.mu.Unlock()
		return room.ErrNotFound
	}
	if r.Status != room.StatusOperable || !m.roomFreeLocked(b.RoomID, b.EndTime, newEnd, b.ID) {
		m.mu.Unlock()
		return booking.ErrTimeConflict
	}

	b.EndTime = newEnd
	b.UpdatedAt = m.now().UTC()

	m.persist(ctx, "update booking", func(ctx context.Context) error {
		return m.store.UpdateBooking(ctx, b)
	})

	snapshot := snapshotBooking(b)
	m.mu.Unlock()

	m.fanout.Publish(snapshot, fmt.Sprintf("booking extended until %s", newEnd.Format(time.RFC3339)))
	return nil
}

// CheckIn applies the time-guarded check-in event. Too-early check-ins leave
// the state untouched and only inform; check-ins past the grace window expire
// the booking.
func (m *Manager) CheckIn(ctx context.Context, bookingID int) error {
	return m.applyEvent(ctx, bookingID, booking.EventCheckIn)
}

// CancelBooking cancels a booking via its lifecycle.
func (m *Manager) CancelBooking(ctx context.Context, bookingID int) error {
	return m.applyEvent(ctx, bookingID, booking.EventCancel)
}

// Complete completes a checked-in booking.
func (m *Manager) Complete(ctx context.Context, bookingID int) error {
	return m.applyEvent(ctx, bookingID, booking.EventComplete)
}

// Expire expires a never-checked-in booking. There is no automatic sweep;
// callers decide when to invoke this.
func (m *Manager) Expire(ctx context.Context, bookingID int) error {
	return m.applyEvent(ctx, bookingID, booking.EventExpire)
}

func (m *Manager) applyEvent(ctx context.Context, bookingID int, event booking.Event) error {
	m.mu.Lock()

	b, ok := m.bookings[bookingID]
	if !ok {
		m.mu.Unlock()
		return booking.ErrNotFound
	}

	result, err := booking.Transit(b.Status, event, m.now(), b.StartTime)
	if err != nil {
		m.mu.Unlock()
		return err
	}

	if result.Changed {
		b.Status = result.Next
		b.UpdatedAt = m.now().UTC()
		m.persist(ctx, "update booking", func(ctx context.Context) error {
			return m.store.UpdateBooking(ctx, b)
		})
	}

	snapshot := snapshotBooking(b)
	m.mu.Unlock()

	m.fanout.Publish(snapshot, result.Message)
	return nil
}

// SetBookingTotal attaches the computed total price to a booking.
func (m *Manager) SetBookingTotal(ctx context.Context, bookingID int, total money.Money) error {
	return m.setAmount(ctx, bookingID, func(b *booking.Booking) { b.Total = &total })
}

// SetBookingDeposit attaches the computed deposit to a booking.
func (m *Manager) SetBookingDeposit(ctx context.Context, bookingID int, deposit money.Money) error {
	return m.setAmount(ctx, bookingID, func(b *booking.Booking) { b.Deposit = &deposit })
}

func (m *Manager) setAmount(ctx context.Context, bookingID int, set func(*booking.Booking)) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[bookingID]
	if !ok {
		return booking.ErrNotFound
	}
	set(b)
	b.UpdatedAt = m.now().UTC()

	m.persist(ctx, "update booking", func(ctx context.Context) error {
		return m.store.UpdateBooking(ctx, b)
	})
	return nil
}

// BookingByID returns a snapshot of the booking.
func (m *Manager) BookingByID(id int) (*booking.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bookings[id]
	if !ok {
		return nil, booking.ErrNotFound
	}
	return snapshotBooking(b), nil
}

// Bookings returns snapshots of all bookings ordered by id.
func (m *Manager) Bookings() []*booking.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookingsLocked(func(*booking.Booking) bool { return true })
}

// BookingsForRequester returns snapshots of one requester's bookings ordered
// by id.
func (m *Manager) BookingsForRequester(requesterID int) []*booking.Booking {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bookingsLocked(func(b *booking.Booking) bool { return b.RequesterID == requesterID })
}

func (m *Manager) bookingsLocked(keep func(*booking.Booking) bool) []*booking.Booking {
	var bookings []*booking.Booking
	for _, b := range m.bookings {
		if keep(b) {
			bookings = append(bookings, snapshotBooking(b))
		}
	}
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
	return bookings
}

// persist runs a store call best-effort. Persistence failures are logged and
// never unwind the in-memory operation; the in-memory state is the source of
// truth for the running process.
func (m *Manager) persist(ctx context.Context, op string, fn func(context.Context) error) {
	if m.store == nil {
		return
	}
	if err := fn(ctx); err != nil {
		log.Printf("store: %s failed: %v", op, err)
	}
}

// snapshotBooking deep-copies a booking so readers outside the lock never
// share memory with the canonical record.
func snapshotBooking(b *booking.Booking) *booking.Booking {
	snapshot := *b
	if b.Total != nil {
		total := *b.Total
		snapshot.Total = &total
	}
	if b.Deposit != nil {
		deposit := *b.Deposit
		snapshot.Deposit = &deposit
	}
	return &snapshot
}

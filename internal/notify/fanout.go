package notify

import (
	"sync"

	"github.com/campusbook/room-booking-backend/internal/booking"
)

// Fanout owns the subscriber lists for all bookings plus the default
// subscriber set that every new booking is registered with. Keeping the lists
// here rather than on the Booking avoids cyclic ownership between bookings
// and their observers.
type Fanout struct {
	mu       sync.RWMutex
	defaults []Subscriber
	lists    map[int]*List
}

// NewFanout creates a Fanout with the given default subscribers.
func NewFanout(defaults ...Subscriber) *Fanout {
	f := &Fanout{
		lists: make(map[int]*List),
	}
	for _, s := range defaults {
		if s != nil {
			f.defaults = append(f.defaults, s)
		}
	}
	return f
}

// AddDefault appends a subscriber to the default set. Only bookings
// registered after the call pick it up.
func (f *Fanout) AddDefault(s Subscriber) {
	if s == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.defaults = append(f.defaults, s)
}

// Register creates the subscriber list for a booking and attaches the default
// subscribers to it. Registering the same booking twice is a no-op for
// already-attached defaults.
func (f *Fanout) Register(b *booking.Booking) {
	if b == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	l := f.listLocked(b.ID)
	for _, s := range f.defaults {
		l.Attach(s)
	}
}

// Attach adds a subscriber to one booking's list.
func (f *Fanout) Attach(bookingID int, s Subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listLocked(bookingID).Attach(s)
}

// Detach removes a subscriber from one booking's list.
func (f *Fanout) Detach(bookingID int, s Subscriber) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l, ok := f.lists[bookingID]; ok {
		l.Detach(s)
	}
}

// Subscribers returns the number of subscribers attached to a booking.
func (f *Fanout) Subscribers(bookingID int) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if l, ok := f.lists[bookingID]; ok {
		return l.Len()
	}
	return 0
}

// Publish delivers a lifecycle message to every subscriber of the booking,
// in registration order, best-effort.
func (f *Fanout) Publish(b *booking.Booking, message string) {
	if b == nil {
		return
	}
	f.mu.RLock()
	l, ok := f.lists[b.ID]
	var snapshot []Subscriber
	if ok {
		snapshot = append(snapshot, l.subscribers...)
	}
	f.mu.RUnlock()

	for _, s := range snapshot {
		s.Notify(b, message)
	}
}

func (f *Fanout) listLocked(bookingID int) *List {
	l, ok := f.lists[bookingID]
	if !ok {
		l = &List{}
		f.lists[bookingID] = l
	}
	return l
}

package notify

import (
	"github.com/campusbook/room-booking-backend/internal/booking"
)

// Subscriber receives lifecycle messages for bookings it is attached to.
// Implementations must tolerate a nil or incomplete booking by doing nothing;
// delivery to the remaining subscribers must never be blocked by one of them.
type Subscriber interface {
	Notify(b *booking.Booking, message string)
}

// List is an ordered set of subscribers for a single booking. Duplicates are
// rejected on attach; detaching an absent subscriber is a no-op. The zero
// value is ready to use.
type List struct {
	subscribers []Subscriber
}

// Attach appends s unless it is nil or already present.
func (l *List) Attach(s Subscriber) {
	if s == nil {
		return
	}
	for _, existing := range l.subscribers {
		if existing == s {
			return
		}
	}
	l.subscribers = append(l.subscribers, s)
}

// Detach removes s if present.
func (l *List) Detach(s Subscriber) {
	for i, existing := range l.subscribers {
		if existing == s {
			l.subscribers = append(l.subscribers[:i], l.subscribers[i+1:]...)
			return
		}
	}
}

// NotifyAll delivers message to every subscriber in registration order.
// Delivery is synchronous and attempted exactly once per subscriber.
func (l *List) NotifyAll(b *booking.Booking, message string) {
	for _, s := range l.subscribers {
		s.Notify(b, message)
	}
}

// Len returns the number of attached subscribers.
func (l *List) Len() int {
	return len(l.subscribers)
}

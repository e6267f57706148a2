package notify

import (
	"log"

	"github.com/campusbook/room-booking-backend/internal/booking"
	"github.com/campusbook/room-booking-backend/internal/requester"
)

// EmailNotifier delivers lifecycle messages to the requester's mailbox.
// Actual SMTP delivery lives behind the operations stack; this channel logs
// the outgoing message.
type EmailNotifier struct{}

func NewEmailNotifier() *EmailNotifier {
	return &EmailNotifier{}
}

func (n *EmailNotifier) Notify(b *booking.Booking, message string) {
	if b == nil {
		log.Printf("email: dropped notification with no booking: %s", message)
		return
	}
	log.Printf("email: booking %d (requester %d, room %d, status %s): %s",
		b.ID, b.RequesterID, b.RoomID, b.Status, message)
}

// AdminDashboard surfaces every lifecycle message on the operations view.
type AdminDashboard struct{}

func NewAdminDashboard() *AdminDashboard {
	return &AdminDashboard{}
}

func (d *AdminDashboard) Notify(b *booking.Booking, message string) {
	if b == nil {
		log.Printf("dashboard: dropped notification with no booking: %s", message)
		return
	}
	log.Printf("dashboard: booking %d room %d status %s: %s", b.ID, b.RoomID, b.Status, message)
}

// CategoryLookup resolves a requester id to its category. The portal takes a
// callback rather than a requester handle so bookings keep referencing
// requesters by id only.
type CategoryLookup func(requesterID int) (requester.Category, bool)

// PartnerPortal forwards lifecycle messages for partner bookings to the
// partner-facing feed and ignores everything else.
type PartnerPortal struct {
	lookup CategoryLookup
}

func NewPartnerPortal(lookup CategoryLookup) *PartnerPortal {
	return &PartnerPortal{lookup: lookup}
}

func (p *PartnerPortal) Notify(b *booking.Booking, message string) {
	if b == nil || p.lookup == nil {
		return
	}
	category, ok := p.lookup(b.RequesterID)
	if !ok || category != requester.CategoryPartner {
		return
	}
	log.Printf("partner portal: booking %d room %d status %s: %s", b.ID, b.RoomID, b.Status, message)
}

package partner

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/campusbook/room-booking-backend/internal/room"
)

// IDOffset namespaces partner room ids away from internally managed room ids,
// so the unioned availability results never collide.
const IDOffset = 1000

// Adapter exposes the partner System through the reservation manager's
// AvailabilityProvider contract.
type Adapter struct {
	system *System
}

func NewAdapter(system *System) *Adapter {
	return &Adapter{system: system}
}

// FindAvailableRooms queries the partner system and converts qualifying
// records into rooms with namespaced ids.
func (a *Adapter) FindAvailableRooms(ctx context.Context, start, end time.Time, minCapacity int) ([]*room.Room, error) {
	records := a.system.QueryRooms(start, end)

	var rooms []*room.Room
	for _, record := range records {
		if record.MaxPeople < minCapacity {
			continue
		}
		rooms = append(rooms, toRoom(record))
	}
	return rooms, nil
}

func toRoom(record RoomRecord) *room.Room {
	location := "Partner"
	number := record.ExternalID
	if parts := strings.SplitN(record.Location, "-", 2); len(parts) == 2 {
		location = parts[0]
		number = parts[1]
	} else if record.Location != "" {
		location = record.Location
	}

	return &room.Room{
		ID:       IDOffset + numericID(record.ExternalID),
		Location: location,
		Number:   number,
		Capacity: record.MaxPeople,
		Status:   room.StatusOperable,
	}
}

// numericID extracts the digits of an external id ("PR-17" -> 17).
func numericID(externalID string) int {
	var digits strings.Builder
	for _, r := range externalID {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0
	}
	return n
}

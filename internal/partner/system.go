package partner

import (
	"sync"
	"time"
)

// RoomRecord is a partner-side room in the partner system's own vocabulary.
// StartTime/EndTime hold the record's existing reservation, if any.
type RoomRecord struct {
	ExternalID string
	Location   string
	MaxPeople  int
	Active     bool
	StartTime  time.Time
	EndTime    time.Time
}

// System is the partner inventory. It answers availability queries over its
// own records; the adapter translates them into this service's room model.
type System struct {
	mu      sync.RWMutex
	records []RoomRecord
}

func NewSystem() *System {
	return &System{}
}

// AddRecord registers a partner room record.
func (s *System) AddRecord(record RoomRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
}

// QueryRooms returns the active records free over [from, to).
func (s *System) QueryRooms(from, to time.Time) []RoomRecord {
	if from.IsZero() || to.IsZero() {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var available []RoomRecord
	for _, record := range s.records {
		if record.Active && !record.conflicts(from, to) {
			available = append(available, record)
		}
	}
	return available
}

func (r RoomRecord) conflicts(from, to time.Time) bool {
	if r.StartTime.IsZero() || r.EndTime.IsZero() {
		return false
	}
	return r.StartTime.Before(to) && r.EndTime.After(from)
}

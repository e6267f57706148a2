package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitCheckInWindow(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("early check-in informs without state change", func(t *testing.T) {
		res, err := Transit(StateCreated, EventCheckIn, start.Add(-20*time.Minute), start)
		require.NoError(t, err)
		assert.False(t, res.Changed)
		assert.Equal(t, StateCreated, res.Next)
		assert.Equal(t, "too early to check in, 20 minutes remain", res.Message)
	})

	t.Run("check-in exactly at start", func(t *testing.T) {
		res, err := Transit(StateCreated, EventCheckIn, start, start)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, StateCheckedIn, res.Next)
	})

	t.Run("check-in at the grace boundary still accepted", func(t *testing.T) {
		res, err := Transit(StateCreated, EventCheckIn, start.Add(CheckInGrace), start)
		require.NoError(t, err)
		assert.Equal(t, StateCheckedIn, res.Next)
	})

	t.Run("check-in past the grace window expires", func(t *testing.T) {
		res, err := Transit(StateCreated, EventCheckIn, start.Add(CheckInGrace+time.Second), start)
		require.NoError(t, err)
		assert.True(t, res.Changed)
		assert.Equal(t, StateExpired, res.Next)
		assert.Equal(t, "booking expired, check-in too late", res.Message)
	})
}

func TestTransitTable(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	now := start

	tests := []struct {
		name    string
		state   State
		event   Event
		want    State
		changed bool
		wantErr bool
	}{
		{"cancel from created", StateCreated, EventCancel, StateCancelled, true, false},
		{"expire from created", StateCreated, EventExpire, StateExpired, true, false},
		{"complete from created rejected", StateCreated, EventComplete, "", false, true},
		{"complete from checked-in", StateCheckedIn, EventComplete, StateCompleted, true, false},
		{"double check-in rejected", StateCheckedIn, EventCheckIn, "", false, true},
		{"cancel after check-in rejected", StateCheckedIn, EventCancel, "", false, true},
		{"expire after check-in rejected", StateCheckedIn, EventExpire, "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Transit(tt.state, tt.event, now, start)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIllegalTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Next)
			assert.Equal(t, tt.changed, res.Changed)
		})
	}
}

func TestTransitTerminalStatesRejectEverything(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	for _, state := range []State{StateCompleted, StateCancelled, StateExpired} {
		for _, event := range []Event{EventCheckIn, EventCancel, EventComplete, EventExpire} {
			_, err := Transit(state, event, start, start)
			assert.ErrorIs(t, err, ErrIllegalTransition, "state %s event %s", state, event)
		}
	}
}

func TestOverlaps(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	b, err := New(1, 1, 1, start, end)
	require.NoError(t, err)

	t.Run("same interval overlaps", func(t *testing.T) {
		assert.True(t, b.Overlaps(start, end))
	})

	t.Run("back-to-back does not overlap", func(t *testing.T) {
		assert.False(t, b.Overlaps(end, end.Add(time.Hour)))
		assert.False(t, b.Overlaps(start.Add(-time.Hour), start))
	})

	t.Run("partial overlap", func(t *testing.T) {
		assert.True(t, b.Overlaps(start.Add(30*time.Minute), end.Add(30*time.Minute)))
	})
}

func TestNewValidation(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	t.Run("end must be after start", func(t *testing.T) {
		_, err := New(1, 1, 1, start, start)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	})

	t.Run("times required", func(t *testing.T) {
		_, err := New(1, 1, 1, time.Time{}, start)
		assert.ErrorIs(t, err, ErrMissingTimes)
	})
}

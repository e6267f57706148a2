package booking

import (
	"fmt"
	"time"
)

// State is a booking lifecycle state.
type State string

const (
	StateCreated   State = "CREATED"
	StateCheckedIn State = "CHECKED_IN"
	StateCompleted State = "COMPLETED"
	StateCancelled State = "CANCELLED"
	StateExpired   State = "EXPIRED"
)

// Valid reports whether s is one of the five lifecycle states.
func (s State) Valid() bool {
	switch s {
	case StateCreated, StateCheckedIn, StateCompleted, StateCancelled, StateExpired:
		return true
	}
	return false
}

// Terminal reports whether no event may ever move the booking out of s.
func (s State) Terminal() bool {
	switch s {
	case StateCompleted, StateCancelled, StateExpired:
		return true
	}
	return false
}

// Event is a lifecycle event applied to a booking.
type Event string

const (
	EventCheckIn  Event = "check_in"
	EventCancel   Event = "cancel"
	EventComplete Event = "complete"
	EventExpire   Event = "expire"
)

// CheckInGrace is how long after the booked start a check-in is still
// accepted. A later check-in expires the booking.
const CheckInGrace = 30 * time.Minute

// Result describes the outcome of a legal lifecycle transition.
// Changed is false for the informational early check-in case, which leaves
// the booking in CREATED.
type Result struct {
	Next    State
	Changed bool
	Message string
}

// Transit applies event to a booking in the given state and returns the
// resulting state and the subscriber-facing message. The time-guarded
// check-in rules use now against the booked start; nothing here reads the
// wall clock, which keeps the table trivially testable.
//
// Rejected events return an error wrapping ErrIllegalTransition and imply no
// state change.
func Transit(state State, event Event, now, start time.Time) (Result, error) {
	if state.Terminal() {
		return Result{}, fmt.Errorf("no %s from terminal state %s: %w", event, state, ErrIllegalTransition)
	}

	switch state {
	case StateCreated:
		switch event {
		case EventCheckIn:
			return checkInFromCreated(now, start), nil
		case EventCancel:
			return Result{Next: StateCancelled, Changed: true, Message: "booking cancelled"}, nil
		case EventExpire:
			return Result{Next: StateExpired, Changed: true, Message: "booking expired, no check-in"}, nil
		case EventComplete:
			return Result{}, fmt.Errorf("must check in before completing: %w", ErrIllegalTransition)
		}

	case StateCheckedIn:
		switch event {
		case EventComplete:
			return Result{Next: StateCompleted, Changed: true, Message: "booking completed"}, nil
		case EventCheckIn:
			return Result{}, fmt.Errorf("booking is already checked in: %w", ErrIllegalTransition)
		case EventCancel:
			return Result{}, fmt.Errorf("cannot cancel a checked-in booking: %w", ErrIllegalTransition)
		case EventExpire:
			return Result{}, fmt.Errorf("cannot expire a checked-in booking: %w", ErrIllegalTransition)
		}
	}

	return Result{}, fmt.Errorf("unknown event %q in state %s: %w", event, state, ErrIllegalTransition)
}

func checkInFromCreated(now, start time.Time) Result {
	cutoff := start.Add(CheckInGrace)
	switch {
	case now.Before(start):
		remaining := start.Sub(now).Round(time.Minute) / time.Minute
		return Result{
			Next:    StateCreated,
			Changed: false,
			Message: fmt.Sprintf("too early to check in, %d minutes remain", remaining),
		}
	case now.After(cutoff):
		return Result{
			Next:    StateExpired,
			Changed: true,
			Message: "booking expired, check-in too late",
		}
	default:
		return Result{
			Next:    StateCheckedIn,
			Changed: true,
			Message: "booking checked in",
		}
	}
}

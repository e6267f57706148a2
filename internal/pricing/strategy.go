package pricing

import (
	"net/http"
	"time"

	"github.com/campusbook/room-booking-backend/internal/money"
	"github.com/campusbook/room-booking-backend/internal/pkg/apperror"
	"github.com/campusbook/room-booking-backend/internal/requester"
)

var ErrMissingTimes = apperror.New(http.StatusBadRequest, "booking times are required for pricing")

// Currency is the single billing currency of the service. Multi-currency
// conversion is out of scope.
const Currency = "CAD"

// Strategy computes the reservation price for a time span.
type Strategy interface {
	Price(start, end time.Time) (money.Money, error)
}

// HourlyStrategy bills a flat rate per started hour, with a minimum of one
// billed hour even for spans under an hour.
type HourlyStrategy struct {
	RateCents int64
}

func (s HourlyStrategy) Price(start, end time.Time) (money.Money, error) {
	if start.IsZero() || end.IsZero() {
		return money.Money{}, ErrMissingTimes
	}
	hours := billedHours(start, end)
	return money.New(s.RateCents*hours, Currency)
}

// billedHours returns the span rounded up to whole hours, floored at one.
func billedHours(start, end time.Time) int64 {
	d := end.Sub(start)
	if d <= 0 {
		return 1
	}
	hours := int64(d / time.Hour)
	if d%time.Hour != 0 {
		hours++
	}
	if hours < 1 {
		hours = 1
	}
	return hours
}

// Hourly rates in cents per category. The default entry covers admins and any
// category the table does not know about.
const (
	studentRateCents = 2000
	facultyRateCents = 3000
	staffRateCents   = 4000
	partnerRateCents = 5000
	defaultRateCents = 5000
)

var strategies = map[requester.Category]Strategy{
	requester.CategoryStudent: HourlyStrategy{RateCents: studentRateCents},
	requester.CategoryFaculty: HourlyStrategy{RateCents: facultyRateCents},
	requester.CategoryStaff:   HourlyStrategy{RateCents: staffRateCents},
	requester.CategoryPartner: HourlyStrategy{RateCents: partnerRateCents},
}

var defaultStrategy Strategy = HourlyStrategy{RateCents: defaultRateCents}

// ForCategory returns the pricing strategy for a requester category, falling
// back to the default strategy for admins and unmapped categories.
func ForCategory(category requester.Category) Strategy {
	if s, ok := strategies[category]; ok {
		return s
	}
	return defaultStrategy
}

// DepositFor returns the flat per-category deposit, a single billed hour at
// the category rate regardless of booking length.
func DepositFor(category requester.Category) money.Money {
	s, ok := strategies[category]
	if !ok {
		s = defaultStrategy
	}
	hourly := s.(HourlyStrategy)
	m, _ := money.New(hourly.RateCents, Currency)
	return m
}

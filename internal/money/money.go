package money

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/campusbook/room-booking-backend/internal/pkg/apperror"
)

var (
	ErrNegativeAmount   = apperror.New(http.StatusBadRequest, "amount cannot be negative")
	ErrEmptyCurrency    = apperror.New(http.StatusBadRequest, "currency must be specified")
	ErrCurrencyMismatch = apperror.New(http.StatusBadRequest, "currency mismatch")
)

// Money is an immutable amount of a single currency.
// The amount is held as integer cents to avoid float arithmetic on prices.
type Money struct {
	Cents    int64  `json:"cents"`
	Currency string `json:"currency"`
}

// New builds a Money value. Negative amounts and empty currencies are rejected.
func New(cents int64, currency string) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	if strings.TrimSpace(currency) == "" {
		return Money{}, ErrEmptyCurrency
	}
	return Money{Cents: cents, Currency: currency}, nil
}

// Add returns the sum of m and other. Both must share a currency.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	return Money{Cents: m.Cents + other.Cents, Currency: m.Currency}, nil
}

// Sub returns m minus other. Both must share a currency and the
// result may not go negative.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, ErrCurrencyMismatch
	}
	if other.Cents > m.Cents {
		return Money{}, ErrNegativeAmount
	}
	return Money{Cents: m.Cents - other.Cents, Currency: m.Currency}, nil
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Cents == 0
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d %s", m.Cents/100, m.Cents%100, m.Currency)
}

package payment

import (
	"net/http"

	"github.com/campusbook/room-booking-backend/internal/booking"
	"github.com/campusbook/room-booking-backend/internal/money"
	"github.com/campusbook/room-booking-backend/internal/pkg/apperror"
	"github.com/campusbook/room-booking-backend/internal/pricing"
	"github.com/campusbook/room-booking-backend/internal/requester"
)

var (
	ErrNilBooking      = apperror.New(http.StatusBadRequest, "booking is required")
	ErrInvalidMethod   = apperror.New(http.StatusBadRequest, "invalid payment method")
	ErrTotalUnset      = apperror.New(http.StatusUnprocessableEntity, "booking total amount not set")
	ErrDepositUnset    = apperror.New(http.StatusUnprocessableEntity, "booking deposit amount not set")
	ErrPaymentDeclined = apperror.New(http.StatusPaymentRequired, "payment declined by gateway")
)

// Service selects the pricing strategy per requester category and drives the
// payment gateway. It never mutates bookings; callers attach the computed
// amounts through the reservation manager.
type Service struct {
	gateway Gateway
}

// NewService builds a Service. A nil gateway falls back to the logging
// gateway.
func NewService(gateway Gateway) *Service {
	if gateway == nil {
		gateway = NewLoggingGateway()
	}
	return &Service{gateway: gateway}
}

// CalculatePrice prices the booking's full span at the category rate.
func (s *Service) CalculatePrice(b *booking.Booking, category requester.Category) (money.Money, error) {
	if b == nil {
		return money.Money{}, ErrNilBooking
	}
	return pricing.ForCategory(category).Price(b.StartTime, b.EndTime)
}

// CalculateDeposit returns the flat per-category deposit, independent of the
// booking length.
func (s *Service) CalculateDeposit(b *booking.Booking, category requester.Category) (money.Money, error) {
	if b == nil {
		return money.Money{}, ErrNilBooking
	}
	return pricing.DepositFor(category), nil
}

// PayDeposit charges the booking's deposit through the gateway.
func (s *Service) PayDeposit(b *booking.Booking, method Method) error {
	if b == nil {
		return ErrNilBooking
	}
	if !method.Valid() {
		return ErrInvalidMethod
	}
	if b.Deposit == nil {
		return ErrDepositUnset
	}
	if !s.gateway.Process(method, *b.Deposit) {
		return ErrPaymentDeclined
	}
	return nil
}

// PayRemainingBalance charges total minus deposit. A remainder of zero or
// less is trivially successful and never reaches the gateway.
func (s *Service) PayRemainingBalance(b *booking.Booking, method Method) error {
	if b == nil {
		return ErrNilBooking
	}
	if !method.Valid() {
		return ErrInvalidMethod
	}
	if b.Total == nil {
		return ErrTotalUnset
	}
	if b.Deposit == nil {
		return ErrDepositUnset
	}
	if b.Total.Currency != b.Deposit.Currency {
		return money.ErrCurrencyMismatch
	}
	if b.Total.Cents <= b.Deposit.Cents {
		return nil
	}
	remaining, err := b.Total.Sub(*b.Deposit)
	if err != nil {
		return err
	}
	if !s.gateway.Process(method, remaining) {
		return ErrPaymentDeclined
	}
	return nil
}

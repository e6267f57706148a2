package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusbook/room-booking-backend/internal/booking"
	"github.com/campusbook/room-booking-backend/internal/money"
	"github.com/campusbook/room-booking-backend/internal/requester"
)

// fakeGateway records every charge and answers with a fixed verdict.
type fakeGateway struct {
	accept  bool
	charges []money.Money
}

func (g *fakeGateway) Process(method Method, amount money.Money) bool {
	g.charges = append(g.charges, amount)
	return g.accept
}

func testBooking(t *testing.T) *booking.Booking {
	t.Helper()
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	b, err := booking.New(1, 1, 1, start, start.Add(3*time.Hour))
	require.NoError(t, err)
	return b
}

func TestCalculatePrice(t *testing.T) {
	svc := NewService(nil)
	b := testBooking(t)

	total, err := svc.CalculatePrice(b, requester.CategoryStudent)
	require.NoError(t, err)
	assert.Equal(t, int64(6000), total.Cents)

	deposit, err := svc.CalculateDeposit(b, requester.CategoryStudent)
	require.NoError(t, err)
	assert.Equal(t, int64(2000), deposit.Cents)

	_, err = svc.CalculatePrice(nil, requester.CategoryStudent)
	assert.ErrorIs(t, err, ErrNilBooking)
}

func TestPayDeposit(t *testing.T) {
	deposit, _ := money.New(2000, "CAD")

	t.Run("charges the gateway", func(t *testing.T) {
		gw := &fakeGateway{accept: true}
		svc := NewService(gw)
		b := testBooking(t)
		b.Deposit = &deposit

		require.NoError(t, svc.PayDeposit(b, MethodCredit))
		require.Len(t, gw.charges, 1)
		assert.Equal(t, deposit, gw.charges[0])
	})

	t.Run("declined charge surfaces", func(t *testing.T) {
		gw := &fakeGateway{accept: false}
		svc := NewService(gw)
		b := testBooking(t)
		b.Deposit = &deposit

		assert.ErrorIs(t, svc.PayDeposit(b, MethodDebit), ErrPaymentDeclined)
	})

	t.Run("deposit must be quoted first", func(t *testing.T) {
		svc := NewService(&fakeGateway{accept: true})
		assert.ErrorIs(t, svc.PayDeposit(testBooking(t), MethodCredit), ErrDepositUnset)
	})

	t.Run("unknown method rejected", func(t *testing.T) {
		svc := NewService(&fakeGateway{accept: true})
		b := testBooking(t)
		b.Deposit = &deposit
		assert.ErrorIs(t, svc.PayDeposit(b, Method("cash")), ErrInvalidMethod)
	})
}

func TestPayRemainingBalance(t *testing.T) {
	total, _ := money.New(6000, "CAD")
	deposit, _ := money.New(2000, "CAD")

	t.Run("charges total minus deposit", func(t *testing.T) {
		gw := &fakeGateway{accept: true}
		svc := NewService(gw)
		b := testBooking(t)
		b.Total = &total
		b.Deposit = &deposit

		require.NoError(t, svc.PayRemainingBalance(b, MethodInstitutional))
		require.Len(t, gw.charges, 1)
		assert.Equal(t, int64(4000), gw.charges[0].Cents)
	})

	t.Run("zero remainder never reaches the gateway", func(t *testing.T) {
		gw := &fakeGateway{accept: false}
		svc := NewService(gw)
		b := testBooking(t)
		b.Total = &deposit
		b.Deposit = &deposit

		require.NoError(t, svc.PayRemainingBalance(b, MethodCredit))
		assert.Empty(t, gw.charges)
	})

	t.Run("amounts must be quoted first", func(t *testing.T) {
		svc := NewService(&fakeGateway{accept: true})
		b := testBooking(t)
		assert.ErrorIs(t, svc.PayRemainingBalance(b, MethodCredit), ErrTotalUnset)

		b.Total = &total
		assert.ErrorIs(t, svc.PayRemainingBalance(b, MethodCredit), ErrDepositUnset)
	})

	t.Run("currency mismatch rejected", func(t *testing.T) {
		usd, _ := money.New(1000, "USD")
		svc := NewService(&fakeGateway{accept: true})
		b := testBooking(t)
		b.Total = &total
		b.Deposit = &usd
		assert.ErrorIs(t, svc.PayRemainingBalance(b, MethodCredit), money.ErrCurrencyMismatch)
	})
}

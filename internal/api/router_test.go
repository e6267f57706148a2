package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingHttp "github.com/campusbook/room-booking-backend/internal/booking/http"
	"github.com/campusbook/room-booking-backend/internal/notify"
	"github.com/campusbook/room-booking-backend/internal/payment"
	"github.com/campusbook/room-booking-backend/internal/reservation"
	roomHttp "github.com/campusbook/room-booking-backend/internal/room/http"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	manager := reservation.NewManager(nil, nil, notify.NewFanout())
	return NewRouter(Config{
		Manager:        manager,
		PaymentService: payment.NewService(nil),
	})
}

func executeRequest(t *testing.T, router *gin.Engine, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestBookingFlow(t *testing.T) {
	router := newTestRouter()

	// Booked to start a few minutes ago so check-in lands inside the grace
	// window.
	start := time.Now().UTC().Add(-5 * time.Minute).Truncate(time.Second)
	end := start.Add(2 * time.Hour)

	t.Run("create room", func(t *testing.T) {
		w := executeRequest(t, router, "POST", "/v1/rooms", gin.H{
			"id": 1, "location": "Lassonde", "number": "101", "capacity": 4,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp roomHttp.RoomResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "operable", resp.Status)
	})

	t.Run("duplicate room rejected", func(t *testing.T) {
		w := executeRequest(t, router, "POST", "/v1/rooms", gin.H{
			"id": 1, "location": "Lassonde", "number": "101", "capacity": 4,
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("register requester", func(t *testing.T) {
		w := executeRequest(t, router, "POST", "/v1/requesters", gin.H{
			"id": 1, "category": "student",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("availability lists the room", func(t *testing.T) {
		path := fmt.Sprintf("/v1/rooms/available?start=%s&end=%s&capacity=2",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
		w := executeRequest(t, router, "GET", path, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var rooms []roomHttp.RoomResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rooms))
		require.Len(t, rooms, 1)
		assert.Equal(t, 1, rooms[0].ID)
	})

	var bookingID int

	t.Run("create booking", func(t *testing.T) {
		w := executeRequest(t, router, "POST", "/v1/bookings", gin.H{
			"requester_id": 1, "room_id": 1,
			"start_time": start, "end_time": end,
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "CREATED", resp.Status)
		bookingID = resp.ID
	})

	t.Run("overlapping booking rejected", func(t *testing.T) {
		w := executeRequest(t, router, "POST", "/v1/bookings", gin.H{
			"requester_id": 1, "room_id": 1,
			"start_time": start.Add(time.Hour), "end_time": end.Add(time.Hour),
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("quote attaches amounts", func(t *testing.T) {
		w := executeRequest(t, router, "POST", fmt.Sprintf("/v1/bookings/%d/quote", bookingID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp bookingHttp.QuoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(4000), resp.Total.Cents) // 2h at the student rate
		assert.Equal(t, int64(2000), resp.Deposit.Cents)
		assert.Equal(t, "CAD", resp.Total.Currency)
	})

	t.Run("pay deposit", func(t *testing.T) {
		w := executeRequest(t, router, "POST", fmt.Sprintf("/v1/bookings/%d/pay-deposit", bookingID), gin.H{
			"method": "credit",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("check-in within grace window", func(t *testing.T) {
		w := executeRequest(t, router, "POST", fmt.Sprintf("/v1/bookings/%d/check-in", bookingID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "CHECKED_IN", resp.Status)
	})

	t.Run("cancel after check-in rejected", func(t *testing.T) {
		w := executeRequest(t, router, "POST", fmt.Sprintf("/v1/bookings/%d/cancel", bookingID), nil)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("complete", func(t *testing.T) {
		w := executeRequest(t, router, "POST", fmt.Sprintf("/v1/bookings/%d/complete", bookingID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "COMPLETED", resp.Status)
	})

	t.Run("pay remaining balance", func(t *testing.T) {
		w := executeRequest(t, router, "POST", fmt.Sprintf("/v1/bookings/%d/pay-balance", bookingID), gin.H{
			"method": "credit",
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("requester booking history", func(t *testing.T) {
		w := executeRequest(t, router, "GET", "/v1/requesters/1/bookings", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp []bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp, 1)
	})
}

func TestRouterErrorMapping(t *testing.T) {
	router := newTestRouter()

	t.Run("unknown booking is 404", func(t *testing.T) {
		w := executeRequest(t, router, "GET", "/v1/bookings/42", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unknown room is 404", func(t *testing.T) {
		w := executeRequest(t, router, "GET", "/v1/rooms/42", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid room payload is 400", func(t *testing.T) {
		w := executeRequest(t, router, "POST", "/v1/rooms", gin.H{
			"id": 1, "location": "Lassonde",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("inverted availability window is 400", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Second)
		path := fmt.Sprintf("/v1/rooms/available?start=%s&end=%s",
			now.Add(time.Hour).Format(time.RFC3339), now.Format(time.RFC3339))
		w := executeRequest(t, router, "GET", path, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("paying an unquoted deposit is 422", func(t *testing.T) {
		executeRequest(t, router, "POST", "/v1/rooms", gin.H{
			"id": 1, "location": "Lassonde", "number": "101", "capacity": 4,
		})
		executeRequest(t, router, "POST", "/v1/requesters", gin.H{"id": 1, "category": "staff"})

		start := time.Now().UTC().Add(time.Hour).Truncate(time.Second)
		w := executeRequest(t, router, "POST", "/v1/bookings", gin.H{
			"requester_id": 1, "room_id": 1,
			"start_time": start, "end_time": start.Add(time.Hour),
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var resp bookingHttp.BookingResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

		w = executeRequest(t, router, "POST", fmt.Sprintf("/v1/bookings/%d/pay-deposit", resp.ID), gin.H{
			"method": "credit",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

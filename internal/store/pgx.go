package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusbook/room-booking-backend/internal/booking"
	"github.com/campusbook/room-booking-backend/internal/money"
	"github.com/campusbook/room-booking-backend/internal/requester"
	"github.com/campusbook/room-booking-backend/internal/room"
)

const schema = `
CREATE TABLE IF NOT EXISTS public.rooms (
	id BIGINT PRIMARY KEY,
	location TEXT NOT NULL,
	number TEXT NOT NULL,
	capacity INT NOT NULL,
	status TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS public.requesters (
	id BIGINT PRIMARY KEY,
	category TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS public.bookings (
	id BIGINT PRIMARY KEY,
	room_id BIGINT NOT NULL,
	requester_id BIGINT NOT NULL,
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ NOT NULL,
	status TEXT NOT NULL,
	total_cents BIGINT,
	total_currency TEXT,
	deposit_cents BIGINT,
	deposit_currency TEXT,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bookings_room_time
	ON public.bookings (room_id, start_time, end_time);
`

type pgxStore struct {
	pool *pgxpool.Pool
}

// NewPgxStore creates a Postgres-backed Store on the given pool.
func NewPgxStore(pool *pgxpool.Pool) Store {
	return &pgxStore{pool: pool}
}

func (s *pgxStore) Initialize(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("initialize schema failed: %w", err)
	}
	return nil
}

// mapPgError converts unique violations to ErrDuplicate.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrDuplicate
	}
	return err
}

func psql() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// === Rooms ===

func (s *pgxStore) SaveRoom(ctx context.Context, r *room.Room) error {
	query, args, err := psql().Insert("public.rooms").
		Columns("id", "location", "number", "capacity", "status").
		Values(r.ID, r.Location, r.Number, r.Capacity, r.Status).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build save room query failed: %w", err)
	}

	if err := s.pool.QueryRow(ctx, query, args...).Scan(&r.CreatedAt); err != nil {
		return mapPgError(fmt.Errorf("save room failed: %w", err))
	}
	return nil
}

func (s *pgxStore) LoadAllRooms(ctx context.Context) ([]*room.Room, error) {
	query, args, err := psql().Select("id", "location", "number", "capacity", "status", "created_at").
		From("public.rooms").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load rooms query failed: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*room.Room
	for rows.Next() {
		var r room.Room
		if err := rows.Scan(&r.ID, &r.Location, &r.Number, &r.Capacity, &r.Status, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, &r)
	}
	return rooms, rows.Err()
}

func (s *pgxStore) UpdateRoom(ctx context.Context, r *room.Room) error {
	query, args, err := psql().Update("public.rooms").
		Set("location", r.Location).
		Set("number", r.Number).
		Set("capacity", r.Capacity).
		Set("status", r.Status).
		Where(squirrel.Eq{"id": r.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room query failed: %w", err)
	}

	ct, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// === Bookings ===

func (s *pgxStore) SaveBooking(ctx context.Context, b *booking.Booking) error {
	totalCents, totalCurrency := moneyColumns(b.Total)
	depositCents, depositCurrency := moneyColumns(b.Deposit)

	query, args, err := psql().Insert("public.bookings").
		Columns("id", "room_id", "requester_id", "start_time", "end_time", "status",
			"total_cents", "total_currency", "deposit_cents", "deposit_currency",
			"created_at", "updated_at").
		Values(b.ID, b.RoomID, b.RequesterID, b.StartTime, b.EndTime, b.Status,
			totalCents, totalCurrency, depositCents, depositCurrency,
			b.CreatedAt, b.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build save booking query failed: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return mapPgError(fmt.Errorf("save booking failed: %w", err))
	}
	return nil
}

func (s *pgxStore) LoadAllBookings(ctx context.Context) ([]*booking.Booking, error) {
	query, args, err := psql().Select("id", "room_id", "requester_id", "start_time", "end_time", "status",
		"total_cents", "total_currency", "deposit_cents", "deposit_currency",
		"created_at", "updated_at").
		From("public.bookings").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load bookings query failed: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func (s *pgxStore) UpdateBooking(ctx context.Context, b *booking.Booking) error {
	totalCents, totalCurrency := moneyColumns(b.Total)
	depositCents, depositCurrency := moneyColumns(b.Deposit)

	query, args, err := psql().Update("public.bookings").
		Set("start_time", b.StartTime).
		Set("end_time", b.EndTime).
		Set("status", b.Status).
		Set("total_cents", totalCents).
		Set("total_currency", totalCurrency).
		Set("deposit_cents", depositCents).
		Set("deposit_currency", depositCurrency).
		Set("updated_at", b.UpdatedAt).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking query failed: %w", err)
	}

	ct, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanBooking(rows pgx.Rows) (*booking.Booking, error) {
	var (
		b               booking.Booking
		totalCents      *int64
		totalCurrency   *string
		depositCents    *int64
		depositCurrency *string
	)
	if err := rows.Scan(&b.ID, &b.RoomID, &b.RequesterID, &b.StartTime, &b.EndTime, &b.Status,
		&totalCents, &totalCurrency, &depositCents, &depositCurrency,
		&b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, fmt.Errorf("scan booking failed: %w", err)
	}
	b.Total = moneyFromColumns(totalCents, totalCurrency)
	b.Deposit = moneyFromColumns(depositCents, depositCurrency)
	return &b, nil
}

func moneyColumns(m *money.Money) (*int64, *string) {
	if m == nil {
		return nil, nil
	}
	cents := m.Cents
	currency := m.Currency
	return &cents, &currency
}

func moneyFromColumns(cents *int64, currency *string) *money.Money {
	if cents == nil || currency == nil {
		return nil
	}
	return &money.Money{Cents: *cents, Currency: *currency}
}

// === Requesters ===

func (s *pgxStore) SaveRequester(ctx context.Context, r *requester.Requester) error {
	query, args, err := psql().Insert("public.requesters").
		Columns("id", "category").
		Values(r.ID, r.Category).
		ToSql()
	if err != nil {
		return fmt.Errorf("build save requester query failed: %w", err)
	}

	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		return mapPgError(fmt.Errorf("save requester failed: %w", err))
	}
	return nil
}

func (s *pgxStore) LoadAllRequesters(ctx context.Context) ([]*requester.Requester, error) {
	query, args, err := psql().Select("id", "category").
		From("public.requesters").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load requesters query failed: %w", err)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load requesters failed: %w", err)
	}
	defer rows.Close()

	var requesters []*requester.Requester
	for rows.Next() {
		var r requester.Requester
		if err := rows.Scan(&r.ID, &r.Category); err != nil {
			return nil, fmt.Errorf("scan requester failed: %w", err)
		}
		requesters = append(requesters, &r)
	}
	return requesters, rows.Err()
}

func (s *pgxStore) UpdateRequester(ctx context.Context, r *requester.Requester) error {
	query, args, err := psql().Update("public.requesters").
		Set("category", r.Category).
		Where(squirrel.Eq{"id": r.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update requester query failed: %w", err)
	}

	ct, err := s.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update requester failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

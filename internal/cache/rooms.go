package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusbook/room-booking-backend/internal/room"
)

const roomsKey = "rooms:all"

// RoomCache is a read-side cache for the room catalog list endpoint.
// Availability and conflict checks never read from it; only the catalog
// listing does, so a stale entry can never corrupt a booking decision.
type RoomCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoomCache connects a cache to the given Redis address.
func NewRoomCache(addr, password string, db int, ttl time.Duration) *RoomCache {
	return &RoomCache{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db}),
		ttl:    ttl,
	}
}

// Get returns the cached room list, or (nil, nil) on a cache miss.
func (c *RoomCache) Get(ctx context.Context) ([]*room.Room, error) {
	data, err := c.client.Get(ctx, roomsKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached rooms failed: %w", err)
	}

	var rooms []*room.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("decode cached rooms failed: %w", err)
	}
	return rooms, nil
}

// Set stores the room list with the configured TTL.
func (c *RoomCache) Set(ctx context.Context, rooms []*room.Room) error {
	data, err := json.Marshal(rooms)
	if err != nil {
		return fmt.Errorf("encode rooms for cache failed: %w", err)
	}
	if err := c.client.Set(ctx, roomsKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached rooms failed: %w", err)
	}
	return nil
}

// Invalidate drops the cached list. Called after every room mutation.
func (c *RoomCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, roomsKey).Err(); err != nil {
		return fmt.Errorf("invalidate cached rooms failed: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (c *RoomCache) Close() error {
	return c.client.Close()
}

package notify

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/campusbook/room-booking-backend/internal/booking"
)

// LifecycleEvent is the message published for every booking lifecycle change.
type LifecycleEvent struct {
	BookingID   int       `json:"booking_id"`
	RoomID      int       `json:"room_id"`
	RequesterID int       `json:"requester_id"`
	Status      string    `json:"status"`
	Message     string    `json:"message"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	At          time.Time `json:"at"`
}

// EventPublisher is a Subscriber that publishes lifecycle events to a Kafka
// topic. Publishing is best-effort: failures are logged and never interrupt
// delivery to the other subscribers.
type EventPublisher struct {
	writer  *kafka.Writer
	timeout time.Duration
}

// NewEventPublisher creates a publisher writing to topic on the given brokers.
func NewEventPublisher(brokers []string, topic string) *EventPublisher {
	return &EventPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
		timeout: 5 * time.Second,
	}
}

func (p *EventPublisher) Notify(b *booking.Booking, message string) {
	if b == nil {
		return
	}

	event := LifecycleEvent{
		BookingID:   b.ID,
		RoomID:      b.RoomID,
		RequesterID: b.RequesterID,
		Status:      string(b.Status),
		Message:     message,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		At:          time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("kafka: marshal lifecycle event for booking %d failed: %v", b.ID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	// Keyed by booking id so one booking's events stay ordered.
	msg := kafka.Message{
		Key:   []byte(strconv.Itoa(b.ID)),
		Value: data,
		Time:  event.At,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		log.Printf("kafka: publish lifecycle event for booking %d failed: %v", b.ID, err)
	}
}

// Close flushes and closes the underlying writer.
func (p *EventPublisher) Close() error {
	return p.writer.Close()
}

// Package queue defines booking lifecycle events exchanged over the
// message broker and the background consumer that records them.
package queue

// BookingQueueName is the durable queue carrying booking lifecycle
// events.
const BookingQueueName = "booking.events"

// Actions carried by BookingEvent.
const (
	ActionCreated   = "created"
	ActionCancelled = "cancelled"
)

// BookingEvent is published after a booking is created or cancelled.
// It carries enough information for downstream consumers to log or
// notify without querying the primary database.
type BookingEvent struct {
	Action     string `json:"action"`
	BookingID  uint64 `json:"booking_id"`
	UserID     uint64 `json:"user_id"`
	TourID     uint64 `json:"tour_id"`
	Date       string `json:"date"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurred_at"`
}

package booking

import (
	"context"
	"time"

	"tabbyx/internal/domain"
)

const (
	RoutingKeyCreated   = "booking.created"
	RoutingKeyCancelled = "booking.cancelled"
)

// JSONPublisher is satisfied by mq.Publisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

type bookingEvent struct {
	BookingID   string     `json:"booking_id"`
	UserID      int64      `json:"user_id,omitempty"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

type brokerEvents struct {
	pub JSONPublisher
}

// NewBrokerEvents publishes booking lifecycle events as JSON messages.
func NewBrokerEvents(pub JSONPublisher) EventPublisher {
	return &brokerEvents{pub: pub}
}

func (e *brokerEvents) BookingCreated(ctx context.Context, b domain.Booking) error {
	start, end := b.StartDate, b.EndDate
	return e.pub.PublishJSON(ctx, RoutingKeyCreated, bookingEvent{
		BookingID: b.ID,
		UserID:    b.CreatedBy,
		Start:     &start,
		End:       &end,
	})
}

func (e *brokerEvents) BookingCancelled(ctx context.Context, bookingID string, cancelledAt time.Time) error {
	return e.pub.PublishJSON(ctx, RoutingKeyCancelled, bookingEvent{
		BookingID:   bookingID,
		CancelledAt: &cancelledAt,
	})
}

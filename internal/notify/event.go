// Package notify delivers order and booking events to the POS board feed,
// the Kafka event stream, and customers over WhatsApp.
package notify

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	EventOrderCreated         = "order.created"
	EventOrderStatusChanged   = "order.status_changed"
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
)

// Event is a state change of an order or booking. Data is encoded as JSON by
// every publisher.
type Event struct {
	Type         string    `json:"type"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	EntityID     uuid.UUID `json:"entity_id"`
	Data         any       `json:"data"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher delivers events to one destination.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Fanout publishes to every destination and joins their errors. One failing
// destination does not stop the others.
type Fanout []Publisher

func (f Fanout) Publish(ctx context.Context, ev Event) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every event. Used when no destination is configured.
type Discard struct{}

func (Discard) Publish(context.Context, Event) error { return nil }

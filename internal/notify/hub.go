package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/platewise/api/internal/ws"
)

type broadcaster interface {
	BroadcastToRestaurant(ctx context.Context, restaurantID uuid.UUID, event ws.Event) error
}

// HubPublisher pushes events to the restaurant's connected POS boards.
type HubPublisher struct {
	hub broadcaster
}

func NewHubPublisher(hub *ws.Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

func (p *HubPublisher) Publish(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev.Data)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", ev.Type, err)
	}
	if err := p.hub.BroadcastToRestaurant(ctx, ev.RestaurantID, ws.Event{Type: ev.Type, Payload: payload}); err != nil {
		return fmt.Errorf("broadcast %s: %w", ev.Type, err)
	}
	return nil
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"okultedarik/internal/models"
)

// RoutingKeyStatusChanged is used for every committed order status change.
const RoutingKeyStatusChanged = "order.status_changed"

// EventPublisher delivers an encoded event to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// MultiPublisher fans an event out to several publishers.
type MultiPublisher []EventPublisher

// Publish sends to every publisher and joins their errors.
func (m MultiPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, routingKey, body); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// StatusChangedEvent is the payload published after a status change.
type StatusChangedEvent struct {
	OrderID     string             `json:"orderId"`
	OrderNumber string             `json:"orderNumber"`
	FromStatus  models.OrderStatus `json:"fromStatus"`
	ToStatus    models.OrderStatus `json:"toStatus"`
	ActorID     string             `json:"actorId"`
	ActorType   models.ActorType   `json:"actorType"`
	At          time.Time          `json:"at"`
}

// publishStatusChanged is best-effort. A nil publisher disables events.
func publishStatusChanged(ctx context.Context, pub EventPublisher, log *zap.Logger, ev StatusChangedEvent) {
	if pub == nil {
		return
	}
	body, err := json.Marshal(ev)
	if err != nil {
		log.Error("failed to marshal status event", zap.String("order_id", ev.OrderID), zap.Error(err))
		return
	}
	if err := pub.Publish(ctx, RoutingKeyStatusChanged, body); err != nil {
		log.Warn("failed to publish status event", zap.String("order_id", ev.OrderID), zap.Error(err))
		return
	}
	log.Debug("published status event", zap.String("order_id", ev.OrderID), zap.String("to", string(ev.ToStatus)))
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"

	"okultedarik/internal/models"
	"okultedarik/internal/repositories"
)

// OrderService owns the order status lifecycle.
type OrderService struct {
	orders repositories.OrderRepository
	tx     repositories.Transactor
	audit  *AuditTrail
	events EventPublisher
	log    *zap.Logger
	now    func() time.Time
}

// NewOrderService creates a new OrderService. events may be nil.
func NewOrderService(orders repositories.OrderRepository, tx repositories.Transactor, audit *AuditTrail, events EventPublisher, log *zap.Logger) *OrderService {
	return &OrderService{
		orders: orders,
		tx:     tx,
		audit:  audit,
		events: events,
		log:    log,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// GetOrderByID retrieves a single order.
func (s *OrderService) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	return s.orders.GetByID(ctx, id)
}

// ListOrders returns orders matching the filter.
func (s *OrderService) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	return s.orders.List(ctx, filter)
}

// GetOrderForParent looks an order up by number. The phone must match the one given at
// checkout; a mismatch is reported as not found.
func (s *OrderService) GetOrderForParent(ctx context.Context, orderNumber, phone string) (*models.Order, error) {
	order, err := s.orders.GetByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if normalizePhone(order.ParentPhone) == "" || normalizePhone(order.ParentPhone) != normalizePhone(phone) {
		return nil, fmt.Errorf("order with number %s not found: %w", orderNumber, ErrNotFound)
	}
	return order, nil
}

// ApplyStatusChange moves an order to the requested status if the transition table
// allows it. The audit record is written after the change commits.
func (s *OrderService) ApplyStatusChange(ctx context.Context, orderID string, to models.OrderStatus, actor models.Actor) (*models.Order, error) {
	var (
		order *models.Order
		from  models.OrderStatus
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		order, from, err = s.changeStatus(ctx, orderID, to)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.afterStatusChange(ctx, order, from, actor)
	return order, nil
}

// changeStatus validates and applies one transition inside the caller's transaction.
// The update is conditional on the status read, so a concurrent change makes it fail.
func (s *OrderService) changeStatus(ctx context.Context, orderID string, to models.OrderStatus) (*models.Order, models.OrderStatus, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	from := order.Status
	if !models.CanTransition(from, to) {
		return nil, "", fmt.Errorf("%w: order %s cannot move from %s to %s", ErrInvalidTransition, order.OrderNumber, from, to)
	}

	at := s.now()
	ok, err := s.orders.CompareAndSetStatus(ctx, orderID, from, to, at)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		return nil, "", fmt.Errorf("%w: order %s is no longer %s", ErrInvalidTransition, order.OrderNumber, from)
	}
	order.Status = to
	order.UpdatedAt = at
	return order, from, nil
}

func (s *OrderService) afterStatusChange(ctx context.Context, order *models.Order, from models.OrderStatus, actor models.Actor) {
	s.log.Info("order status changed",
		zap.String("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("from", string(from)),
		zap.String("to", string(order.Status)),
		zap.String("actor_id", actor.ID),
	)
	s.audit.Record(ctx, actor, models.AuditUpdate, models.EntityOrder, order.ID, map[string]any{
		"orderNumber": order.OrderNumber,
		"newStatus":   order.Status,
	})
	publishStatusChanged(ctx, s.events, s.log, StatusChangedEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		FromStatus:  from,
		ToStatus:    order.Status,
		ActorID:     actor.ID,
		ActorType:   actor.Type,
		At:          order.UpdatedAt,
	})
}

// UpdateCargoTracking records the carrier tracking number. The status is not changed.
func (s *OrderService) UpdateCargoTracking(ctx context.Context, orderID, trackingNo string, actor models.Actor) (*models.Order, error) {
	trackingNo = strings.TrimSpace(trackingNo)
	if trackingNo == "" {
		return nil, fmt.Errorf("%w: tracking number is required", ErrInvalidInput)
	}
	if err := s.orders.UpdateCargoTracking(ctx, orderID, trackingNo, s.now()); err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actor, models.AuditUpdate, models.EntityOrder, order.ID, map[string]any{
		"orderNumber":     order.OrderNumber,
		"cargoTrackingNo": trackingNo,
	})
	return order, nil
}

func normalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	// 0555..., 90555... and +90555... are the same line.
	digits = strings.TrimPrefix(digits, "90")
	return strings.TrimPrefix(digits, "0")
}

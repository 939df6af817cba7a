package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"okultedarik/internal/models"
	"okultedarik/internal/repositories"
)

// CancellationService runs the cancellation request workflow on top of the order lifecycle.
type CancellationService struct {
	requests  repositories.CancelRequestRepository
	orders    repositories.OrderRepository
	lifecycle *OrderService
	tx        repositories.Transactor
	audit     *AuditTrail
	log       *zap.Logger
	now       func() time.Time
}

// NewCancellationService creates a new CancellationService.
func NewCancellationService(requests repositories.CancelRequestRepository, orders repositories.OrderRepository, lifecycle *OrderService, tx repositories.Transactor, audit *AuditTrail, log *zap.Logger) *CancellationService {
	return &CancellationService{
		requests:  requests,
		orders:    orders,
		lifecycle: lifecycle,
		tx:        tx,
		audit:     audit,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// GetRequest retrieves a single request.
func (s *CancellationService) GetRequest(ctx context.Context, id string) (*models.CancelRequest, error) {
	return s.requests.GetByID(ctx, id)
}

// ListRequests returns requests, optionally filtered by status.
func (s *CancellationService) ListRequests(ctx context.Context, status models.CancelRequestStatus) ([]models.CancelRequest, error) {
	return s.requests.List(ctx, status)
}

// ListRequestsForOrder returns the request history of one order.
func (s *CancellationService) ListRequestsForOrder(ctx context.Context, orderID string) ([]models.CancelRequest, error) {
	return s.requests.ListByOrder(ctx, orderID)
}

// RequestCancellation opens a PENDING request for an order in the cancellable set.
// At most one request per order may be pending.
func (s *CancellationService) RequestCancellation(ctx context.Context, orderID, reason string, requestor models.Actor) (*models.CancelRequest, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", ErrInvalidInput)
	}

	var req *models.CancelRequest
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		// Serializes concurrent requests for the same order.
		if err := s.orders.Lock(ctx, orderID); err != nil {
			return err
		}
		order, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !order.Status.IsCancellable() {
			return fmt.Errorf("%w: order %s is %s", ErrNotCancellable, order.OrderNumber, order.Status)
		}
		pending, err := s.requests.HasPending(ctx, orderID)
		if err != nil {
			return err
		}
		if pending {
			return fmt.Errorf("%w: order %s", ErrDuplicatePendingRequest, order.OrderNumber)
		}

		req = &models.CancelRequest{
			OrderID:         orderID,
			Reason:          reason,
			Status:          models.CancelPending,
			RequestedByID:   requestor.ID,
			RequestedByType: requestor.Type,
			CreatedAt:       s.now(),
		}
		return s.requests.Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("cancel request opened", zap.String("request_id", req.ID), zap.String("order_id", orderID))
	s.audit.Record(ctx, requestor, models.AuditCreate, models.EntityCancelRequest, req.ID, map[string]any{
		"orderId": orderID,
		"reason":  reason,
	})
	return req, nil
}

// RequestCancellationForParent opens a request on behalf of the parent who placed the order.
func (s *CancellationService) RequestCancellationForParent(ctx context.Context, orderNumber, phone, reason string) (*models.CancelRequest, error) {
	order, err := s.lifecycle.GetOrderForParent(ctx, orderNumber, phone)
	if err != nil {
		return nil, err
	}
	parent := models.Actor{ID: normalizePhone(order.ParentPhone), Type: models.ActorParent}
	return s.RequestCancellation(ctx, order.ID, reason, parent)
}

// ResolveCancellation approves or rejects a PENDING request. Approval cancels the order
// in the same transaction; if the order can no longer be cancelled nothing is changed.
func (s *CancellationService) ResolveCancellation(ctx context.Context, requestID string, decision models.CancelRequestStatus, adminNote string, actor models.Actor) (*models.CancelRequest, error) {
	if !decision.IsDecision() {
		return nil, ErrInvalidDecision
	}
	adminNote = strings.TrimSpace(adminNote)

	var (
		req   *models.CancelRequest
		order *models.Order
		from  models.OrderStatus
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		req, err = s.requests.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if req.Status != models.CancelPending {
			return fmt.Errorf("%w: cancel request %s is %s", ErrAlreadyProcessed, req.ID, req.Status)
		}

		at := s.now()
		ok, err := s.requests.Resolve(ctx, req.ID, decision, adminNote, at)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: cancel request %s", ErrAlreadyProcessed, req.ID)
		}
		req.Status = decision
		req.AdminNote = adminNote
		req.ProcessedAt = &at

		if decision == models.CancelApproved {
			order, from, err = s.lifecycle.changeStatus(ctx, req.OrderID, models.StatusCancelled)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("cancel request resolved",
		zap.String("request_id", req.ID),
		zap.String("decision", string(decision)),
		zap.String("actor_id", actor.ID),
	)
	s.audit.Record(ctx, actor, models.AuditUpdate, models.EntityCancelRequest, req.ID, map[string]any{
		"orderId":   req.OrderID,
		"decision":  decision,
		"adminNote": adminNote,
	})
	if order != nil {
		s.lifecycle.afterStatusChange(ctx, order, from, actor)
		req.Order = order
	}
	return req, nil
}

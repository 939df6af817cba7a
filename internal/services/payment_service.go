package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"okultedarik/internal/models"
	"okultedarik/internal/repositories"
)

// PaymentService handles school billing records.
type PaymentService struct {
	payments repositories.PaymentRepository
	audit    *AuditTrail
	log      *zap.Logger
	now      func() time.Time
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(payments repositories.PaymentRepository, audit *AuditTrail, log *zap.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		audit:    audit,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// ListPayments returns payments matching the filter.
func (s *PaymentService) ListPayments(ctx context.Context, filter models.PaymentFilter) ([]models.SchoolPayment, error) {
	return s.payments.List(ctx, filter)
}

// GetPayment retrieves a single payment.
func (s *PaymentService) GetPayment(ctx context.Context, id string) (*models.SchoolPayment, error) {
	return s.payments.GetByID(ctx, id)
}

// CreatePayment records a PENDING payment owed by a school.
func (s *PaymentService) CreatePayment(ctx context.Context, payment *models.SchoolPayment, actor models.Actor) error {
	if !payment.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}
	payment.Status = models.PaymentPending
	payment.PaidAt = nil
	if err := s.payments.Create(ctx, payment); err != nil {
		return err
	}
	s.audit.Record(ctx, actor, models.AuditCreate, models.EntityPayment, payment.ID, map[string]any{
		"schoolId": payment.SchoolID,
		"amount":   payment.Amount.StringFixed(2),
	})
	return nil
}

// MarkPaid moves a PENDING payment to PAID and stamps paidAt.
func (s *PaymentService) MarkPaid(ctx context.Context, id string, actor models.Actor) (*models.SchoolPayment, error) {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if payment.Status != models.PaymentPending {
		return nil, fmt.Errorf("%w: payment %s is %s", ErrAlreadyProcessed, id, payment.Status)
	}

	at := s.now()
	ok, err := s.payments.MarkPaid(ctx, id, at)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: payment %s", ErrAlreadyProcessed, id)
	}
	payment.Status = models.PaymentPaid
	payment.PaidAt = &at

	s.log.Info("payment marked paid", zap.String("payment_id", id), zap.String("school_id", payment.SchoolID))
	s.audit.Record(ctx, actor, models.AuditUpdate, models.EntityPayment, id, map[string]any{
		"schoolId":  payment.SchoolID,
		"amount":    payment.Amount.StringFixed(2),
		"newStatus": models.PaymentPaid,
	})
	return payment, nil
}

// DeletePayment voids a payment record.
func (s *PaymentService) DeletePayment(ctx context.Context, id string, actor models.Actor) error {
	payment, err := s.payments.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.payments.Delete(ctx, id); err != nil {
		return err
	}

	s.log.Info("payment deleted", zap.String("payment_id", id))
	s.audit.Record(ctx, actor, models.AuditDelete, models.EntityPayment, id, map[string]any{
		"schoolId": payment.SchoolID,
		"amount":   payment.Amount.StringFixed(2),
		"status":   payment.Status,
	})
	return nil
}

package repositories

import (
	"context"
	"time"

	"okultedarik/internal/models"
)

// PaymentRepository defines the interface for school payment data access.
type PaymentRepository interface {
	GetByID(ctx context.Context, id string) (*models.SchoolPayment, error)
	List(ctx context.Context, filter models.PaymentFilter) ([]models.SchoolPayment, error)
	Create(ctx context.Context, payment *models.SchoolPayment) error
	// MarkPaid moves a PENDING payment to PAID. It reports false when the payment is not pending.
	MarkPaid(ctx context.Context, id string, at time.Time) (bool, error)
	Delete(ctx context.Context, id string) error
}

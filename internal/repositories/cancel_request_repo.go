package repositories

import (
	"context"
	"time"

	"okultedarik/internal/models"
)

// CancelRequestRepository defines the interface for cancellation request data access.
type CancelRequestRepository interface {
	GetByID(ctx context.Context, id string) (*models.CancelRequest, error)
	ListByOrder(ctx context.Context, orderID string) ([]models.CancelRequest, error)
	List(ctx context.Context, status models.CancelRequestStatus) ([]models.CancelRequest, error)
	HasPending(ctx context.Context, orderID string) (bool, error)
	Create(ctx context.Context, req *models.CancelRequest) error
	// Resolve moves a PENDING request to its decision. It reports false when the
	// request is no longer pending.
	Resolve(ctx context.Context, id string, decision models.CancelRequestStatus, adminNote string, at time.Time) (bool, error)
}

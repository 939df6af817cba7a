package repositories

import (
	"context"
	"time"

	"okultedarik/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetByOrderNumber(ctx context.Context, number string) (*models.Order, error)
	List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	Create(ctx context.Context, order *models.Order) error
	// CompareAndSetStatus moves the order to `to` only if it is still in `from`.
	// It reports false when the stored status no longer matches.
	CompareAndSetStatus(ctx context.Context, id string, from, to models.OrderStatus, at time.Time) (bool, error)
	// Lock takes a row write lock for the rest of the transaction carried by ctx.
	Lock(ctx context.Context, id string) error
	UpdateCargoTracking(ctx context.Context, id, trackingNo string, at time.Time) error
}

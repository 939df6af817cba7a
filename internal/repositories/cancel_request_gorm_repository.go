package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"okultedarik/internal/models"
)

// GORMCancelRequestRepository is a GORM implementation of CancelRequestRepository.
type GORMCancelRequestRepository struct {
	db *gorm.DB
}

// NewGORMCancelRequestRepository creates a new instance of GORMCancelRequestRepository.
func NewGORMCancelRequestRepository(db *gorm.DB) *GORMCancelRequestRepository {
	return &GORMCancelRequestRepository{db: db}
}

// GetByID retrieves a request together with its order.
func (r *GORMCancelRequestRepository) GetByID(ctx context.Context, id string) (*models.CancelRequest, error) {
	var req models.CancelRequest
	if err := conn(ctx, r.db).Preload("Order").First(&req, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "get cancel request", "cancel request", id)
	}
	return &req, nil
}

// ListByOrder returns every request ever opened for an order, newest first.
func (r *GORMCancelRequestRepository) ListByOrder(ctx context.Context, orderID string) ([]models.CancelRequest, error) {
	var reqs []models.CancelRequest
	if err := conn(ctx, r.db).Where("order_id = ?", orderID).Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, storageErr("list cancel requests by order", err)
	}
	return reqs, nil
}

// List returns requests, optionally filtered by status, newest first.
func (r *GORMCancelRequestRepository) List(ctx context.Context, status models.CancelRequestStatus) ([]models.CancelRequest, error) {
	q := conn(ctx, r.db).Preload("Order")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var reqs []models.CancelRequest
	if err := q.Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, storageErr("list cancel requests", err)
	}
	return reqs, nil
}

// HasPending reports whether the order has an open request.
func (r *GORMCancelRequestRepository) HasPending(ctx context.Context, orderID string) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&models.CancelRequest{}).
		Where("order_id = ? AND status = ?", orderID, models.CancelPending).
		Count(&count).Error
	if err != nil {
		return false, storageErr("count pending cancel requests", err)
	}
	return count > 0, nil
}

// Create inserts a new request.
func (r *GORMCancelRequestRepository) Create(ctx context.Context, req *models.CancelRequest) error {
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	if err := conn(ctx, r.db).Omit("Order").Create(req).Error; err != nil {
		return storageErr("create cancel request", err)
	}
	return nil
}

// Resolve performs a conditional PENDING -> decision update.
func (r *GORMCancelRequestRepository) Resolve(ctx context.Context, id string, decision models.CancelRequestStatus, adminNote string, at time.Time) (bool, error) {
	res := conn(ctx, r.db).Model(&models.CancelRequest{}).
		Where("id = ? AND status = ?", id, models.CancelPending).
		UpdateColumns(map[string]any{
			"status":       decision,
			"admin_note":   adminNote,
			"processed_at": at,
			"updated_at":   at,
		})
	if res.Error != nil {
		return false, storageErr("resolve cancel request", res.Error)
	}
	return res.RowsAffected == 1, nil
}

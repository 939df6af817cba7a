package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"okultedarik/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

func (r *GORMOrderRepository) withRelations(ctx context.Context) *gorm.DB {
	return conn(ctx, r.db).Preload("Class").Preload("Class.School").Preload("Package")
}

// GetByID retrieves a single order with its class and package.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.withRelations(ctx).First(&order, "orders.id = ?", id).Error; err != nil {
		return nil, wrap(err, "get order", "order", id)
	}
	return &order, nil
}

// GetByOrderNumber retrieves a single order by its human-readable number.
func (r *GORMOrderRepository) GetByOrderNumber(ctx context.Context, number string) (*models.Order, error) {
	var order models.Order
	if err := r.withRelations(ctx).First(&order, "orders.order_number = ?", number).Error; err != nil {
		return nil, wrap(err, "get order by number", "order", number)
	}
	return &order, nil
}

// List returns orders matching the filter, newest first.
func (r *GORMOrderRepository) List(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	q := r.withRelations(ctx).Model(&models.Order{})
	if filter.Status != "" {
		q = q.Where("orders.status = ?", filter.Status)
	}
	if filter.ClassID != "" {
		q = q.Where("orders.class_id = ?", filter.ClassID)
	}
	if filter.SchoolID != "" {
		q = q.Where("orders.class_id IN (?)",
			conn(ctx, r.db).Model(&models.Class{}).Select("id").Where("school_id = ?", filter.SchoolID))
	}
	if filter.From != nil {
		q = q.Where("orders.created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("orders.created_at < ?", *filter.To)
	}

	var orders []models.Order
	if err := q.Order("orders.created_at DESC").Find(&orders).Error; err != nil {
		return nil, storageErr("list orders", err)
	}
	return orders, nil
}

// Create inserts a new order.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.Status == "" {
		order.Status = models.StatusNew
	}
	if err := conn(ctx, r.db).Omit("Class", "Package").Create(order).Error; err != nil {
		return storageErr("create order", err)
	}
	return nil
}

// CompareAndSetStatus performs a conditional status update.
func (r *GORMOrderRepository) CompareAndSetStatus(ctx context.Context, id string, from, to models.OrderStatus, at time.Time) (bool, error) {
	res := conn(ctx, r.db).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		UpdateColumns(map[string]any{"status": to, "updated_at": at})
	if res.Error != nil {
		return false, storageErr("update order status", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// Lock issues a no-op write on the order row so concurrent transactions queue behind it.
func (r *GORMOrderRepository) Lock(ctx context.Context, id string) error {
	res := conn(ctx, r.db).Model(&models.Order{}).Where("id = ?", id).
		UpdateColumn("status", gorm.Expr("status"))
	if res.Error != nil {
		return storageErr("lock order", res.Error)
	}
	return nil
}

// UpdateCargoTracking sets the cargo tracking number without touching the status.
func (r *GORMOrderRepository) UpdateCargoTracking(ctx context.Context, id, trackingNo string, at time.Time) error {
	res := conn(ctx, r.db).Model(&models.Order{}).Where("id = ?", id).
		UpdateColumns(map[string]any{"cargo_tracking_no": trackingNo, "updated_at": at})
	if res.Error != nil {
		return storageErr("update cargo tracking", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap(gorm.ErrRecordNotFound, "update cargo tracking", "order", id)
	}
	return nil
}

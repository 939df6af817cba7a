package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"okultedarik/internal/models"
)

// GORMPaymentRepository is a GORM implementation of PaymentRepository.
type GORMPaymentRepository struct {
	db *gorm.DB
}

// NewGORMPaymentRepository creates a new instance of GORMPaymentRepository.
func NewGORMPaymentRepository(db *gorm.DB) *GORMPaymentRepository {
	return &GORMPaymentRepository{db: db}
}

// GetByID retrieves a single payment and its school.
func (r *GORMPaymentRepository) GetByID(ctx context.Context, id string) (*models.SchoolPayment, error) {
	var p models.SchoolPayment
	if err := conn(ctx, r.db).Preload("School").First(&p, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "get payment", "payment", id)
	}
	return &p, nil
}

// List returns payments matching the filter, newest first.
func (r *GORMPaymentRepository) List(ctx context.Context, filter models.PaymentFilter) ([]models.SchoolPayment, error) {
	q := conn(ctx, r.db).Preload("School")
	if filter.SchoolID != "" {
		q = q.Where("school_id = ?", filter.SchoolID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	var payments []models.SchoolPayment
	if err := q.Order("created_at DESC").Find(&payments).Error; err != nil {
		return nil, storageErr("list payments", err)
	}
	return payments, nil
}

// Create inserts a new payment. Status defaults to PENDING.
func (r *GORMPaymentRepository) Create(ctx context.Context, payment *models.SchoolPayment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()
	}
	if payment.Status == "" {
		payment.Status = models.PaymentPending
	}
	if err := conn(ctx, r.db).Omit("School").Create(payment).Error; err != nil {
		return storageErr("create payment", err)
	}
	return nil
}

// MarkPaid performs a conditional PENDING -> PAID update.
func (r *GORMPaymentRepository) MarkPaid(ctx context.Context, id string, at time.Time) (bool, error) {
	res := conn(ctx, r.db).Model(&models.SchoolPayment{}).
		Where("id = ? AND status = ?", id, models.PaymentPending).
		UpdateColumns(map[string]any{"status": models.PaymentPaid, "paid_at": at, "updated_at": at})
	if res.Error != nil {
		return false, storageErr("mark payment paid", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// Delete removes a payment by its ID.
func (r *GORMPaymentRepository) Delete(ctx context.Context, id string) error {
	res := conn(ctx, r.db).Delete(&models.SchoolPayment{}, "id = ?", id)
	if res.Error != nil {
		return storageErr("delete payment", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap(gorm.ErrRecordNotFound, "delete payment", "payment", id)
	}
	return nil
}

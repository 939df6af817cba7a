package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"okultedarik/internal/models"
)

// AuditRepository defines the interface for the audit trail.
type AuditRepository interface {
	Create(ctx context.Context, entry *models.AuditLog) error
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error)
}

const defaultAuditLimit = 100

// GORMAuditRepository is a GORM implementation of AuditRepository.
type GORMAuditRepository struct {
	db *gorm.DB
}

// NewGORMAuditRepository creates a new instance of GORMAuditRepository.
func NewGORMAuditRepository(db *gorm.DB) *GORMAuditRepository {
	return &GORMAuditRepository{db: db}
}

// Create appends an entry. It always writes outside any caller transaction.
func (r *GORMAuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return storageErr("create audit log", err)
	}
	return nil
}

// List returns the most recent entries matching the filter.
func (r *GORMAuditRepository) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	q := conn(ctx, r.db)
	if filter.Entity != "" {
		q = q.Where("entity = ?", filter.Entity)
	}
	if filter.EntityID != "" {
		q = q.Where("entity_id = ?", filter.EntityID)
	}
	limit := filter.Limit
	if limit <= 0 || limit > 1000 {
		limit = defaultAuditLimit
	}
	var entries []models.AuditLog
	if err := q.Order("created_at DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, storageErr("list audit logs", err)
	}
	return entries, nil
}

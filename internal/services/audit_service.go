package services

import (
	"context"

	"okultedarik/internal/models"
	"okultedarik/internal/repositories"
)

// AuditService exposes the audit trail for reading.
type AuditService struct {
	entries repositories.AuditRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(entries repositories.AuditRepository) *AuditService {
	return &AuditService{entries: entries}
}

// List returns the most recent entries matching the filter.
func (s *AuditService) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	return s.entries.List(ctx, filter)
}

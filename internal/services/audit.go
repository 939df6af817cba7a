package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"okultedarik/internal/models"
)

// AuditRecorder persists audit trail entries.
type AuditRecorder interface {
	Create(ctx context.Context, entry *models.AuditLog) error
}

// AuditTrail writes audit entries after a mutation has committed. The trail is
// best-effort: failures are logged and never undo the mutation.
type AuditTrail struct {
	recorder AuditRecorder
	log      *zap.Logger
}

// NewAuditTrail creates a new AuditTrail.
func NewAuditTrail(recorder AuditRecorder, log *zap.Logger) *AuditTrail {
	return &AuditTrail{recorder: recorder, log: log}
}

// Record writes one entry and reports whether it was stored.
func (a *AuditTrail) Record(ctx context.Context, actor models.Actor, action models.AuditAction, entity models.AuditEntity, entityID string, details map[string]any) bool {
	entry := &models.AuditLog{
		UserID:   actor.ID,
		UserType: actor.Type,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
	}
	if details != nil {
		raw, err := json.Marshal(details)
		if err != nil {
			a.log.Error("failed to marshal audit details", zap.String("entity", string(entity)), zap.String("entity_id", entityID), zap.Error(err))
		} else {
			entry.Details = raw
		}
	}
	if err := a.recorder.Create(ctx, entry); err != nil {
		a.log.Error("failed to write audit record",
			zap.String("user_id", actor.ID),
			zap.String("action", string(action)),
			zap.String("entity", string(entity)),
			zap.String("entity_id", entityID),
			zap.Any("details", details),
			zap.Error(err),
		)
		return false
	}
	return true
}

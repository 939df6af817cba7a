package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"okultedarik/internal/models"
	"okultedarik/internal/services"
)

func TestAuditTrail_Record(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ok := env.auditTrail.Record(ctx, admin, models.AuditCreate, models.EntitySchool, "s1", map[string]any{"name": "X"})
	assert.True(t, ok)

	entries, err := services.NewAuditService(env.audits).List(ctx, models.AuditFilter{Entity: models.EntitySchool})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.ActorAdmin, entries[0].UserType)
	assert.JSONEq(t, `{"name":"X"}`, string(entries[0].Details))
}

func TestAuditTrail_RecordFailure(t *testing.T) {
	recorder := new(MockAuditRecorder)
	recorder.On("Create", mock.Anything, mock.MatchedBy(func(e *models.AuditLog) bool {
		return e.Entity == models.EntityOrder && e.EntityID == "o1"
	})).Return(errors.New("disk full")).Once()
	env := newTestEnvWithRecorder(t, recorder)

	ok := env.auditTrail.Record(context.Background(), admin, models.AuditUpdate, models.EntityOrder, "o1", nil)
	assert.False(t, ok)
	assert.Equal(t, 1, env.logs.FilterMessage("failed to write audit record").Len())
	recorder.AssertExpectations(t)
}

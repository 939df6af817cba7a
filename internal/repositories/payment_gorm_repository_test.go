package repositories_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okultedarik/internal/models"
	"okultedarik/internal/repositories"
	"okultedarik/internal/testutil"
)

func TestGORMPaymentRepository(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	f := testutil.SeedFixture(t, db, "Ata")
	repo := repositories.NewGORMPaymentRepository(db)
	ctx := context.Background()

	p := &models.SchoolPayment{SchoolID: f.School.ID, Amount: decimal.RequireFromString("1200.50")}
	require.NoError(t, repo.Create(ctx, p))
	assert.Equal(t, models.PaymentPending, p.Status)

	list, err := repo.List(ctx, models.PaymentFilter{SchoolID: f.School.ID, Status: models.PaymentPending})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Amount.Equal(decimal.RequireFromString("1200.50")))
	require.NotNil(t, list[0].School)

	ok, err := repo.MarkPaid(ctx, p.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.MarkPaid(ctx, p.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, got.Status)
	assert.NotNil(t, got.PaidAt)

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), repositories.ErrNotFound)
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

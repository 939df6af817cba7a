package repositories_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okultedarik/internal/models"
	"okultedarik/internal/repositories"
	"okultedarik/internal/testutil"
)

func TestGORMOrderRepository_GetByID(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	f := testutil.SeedFixture(t, db, "Ata")
	seeded := testutil.SeedOrder(t, db, f, models.StatusNew, "250.00")
	repo := repositories.NewGORMOrderRepository(db)
	ctx := context.Background()

	order, err := repo.GetByID(ctx, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.OrderNumber, order.OrderNumber)
	assert.Equal(t, "250", order.TotalAmount.String())
	require.NotNil(t, order.Class)
	assert.Equal(t, f.Class.Name, order.Class.Name)
	require.NotNil(t, order.Class.School)
	assert.Equal(t, f.School.ID, order.Class.School.ID)
	require.NotNil(t, order.Package)
	assert.Equal(t, f.Package.Name, order.Package.Name)

	byNumber, err := repo.GetByOrderNumber(ctx, seeded.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, byNumber.ID)

	_, err = repo.GetByID(ctx, "missing")
	assert.True(t, errors.Is(err, repositories.ErrNotFound))
	assert.Contains(t, err.Error(), "order with ID missing not found")
}

func TestGORMOrderRepository_ListFilters(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	ata := testutil.SeedFixture(t, db, "Ata")
	cumhuriyet := testutil.SeedFixture(t, db, "Cumhuriyet")
	repo := repositories.NewGORMOrderRepository(db)
	ctx := context.Background()

	testutil.SeedOrder(t, db, ata, models.StatusPaid, "100")
	testutil.SeedOrder(t, db, ata, models.StatusNew, "100")
	testutil.SeedOrder(t, db, cumhuriyet, models.StatusPaid, "100")

	all, err := repo.List(ctx, models.OrderFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	paid, err := repo.List(ctx, models.OrderFilter{Status: models.StatusPaid})
	require.NoError(t, err)
	assert.Len(t, paid, 2)

	ataOrders, err := repo.List(ctx, models.OrderFilter{SchoolID: ata.School.ID})
	require.NoError(t, err)
	assert.Len(t, ataOrders, 2)

	ataPaid, err := repo.List(ctx, models.OrderFilter{SchoolID: ata.School.ID, Status: models.StatusPaid})
	require.NoError(t, err)
	assert.Len(t, ataPaid, 1)

	future := time.Now().UTC().Add(time.Hour)
	none, err := repo.List(ctx, models.OrderFilter{From: &future})
	require.NoError(t, err)
	assert.Empty(t, none)

	past := time.Now().UTC().Add(-time.Hour)
	recent, err := repo.List(ctx, models.OrderFilter{From: &past, To: &future, ClassID: cumhuriyet.Class.ID})
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestGORMOrderRepository_CompareAndSetStatus(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	f := testutil.SeedFixture(t, db, "Ata")
	order := testutil.SeedOrder(t, db, f, models.StatusPaid, "100")
	repo := repositories.NewGORMOrderRepository(db)
	ctx := context.Background()
	at := time.Now().UTC()

	ok, err := repo.CompareAndSetStatus(ctx, order.ID, models.StatusPaid, models.StatusShipped, at)
	require.NoError(t, err)
	assert.True(t, ok)

	// Stale source state.
	ok, err = repo.CompareAndSetStatus(ctx, order.ID, models.StatusPaid, models.StatusCancelled, at)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusShipped, got.Status)
}

func TestGORMOrderRepository_UpdateCargoTracking(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	f := testutil.SeedFixture(t, db, "Ata")
	order := testutil.SeedOrder(t, db, f, models.StatusShipped, "100")
	repo := repositories.NewGORMOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.UpdateCargoTracking(ctx, order.ID, "YK123456", time.Now().UTC()))
	got, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CargoTrackingNo)
	assert.Equal(t, "YK123456", *got.CargoTrackingNo)
	assert.Equal(t, models.StatusShipped, got.Status)

	err = repo.UpdateCargoTracking(ctx, "missing", "X", time.Now().UTC())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMTransactor_RollsBack(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	f := testutil.SeedFixture(t, db, "Ata")
	order := testutil.SeedOrder(t, db, f, models.StatusPaid, "100")
	repo := repositories.NewGORMOrderRepository(db)
	tx := repositories.NewGORMTransactor(db)
	boom := errors.New("boom")

	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		ok, err := repo.CompareAndSetStatus(ctx, order.ID, models.StatusPaid, models.StatusShipped, time.Now().UTC())
		require.NoError(t, err)
		require.True(t, ok)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := repo.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPaid, got.Status)
}

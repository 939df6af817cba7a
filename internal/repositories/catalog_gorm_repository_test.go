package repositories_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okultedarik/internal/models"
	"okultedarik/internal/repositories"
	"okultedarik/internal/testutil"
)

func TestGORMClassRepository_GetByPassword(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	f := testutil.SeedFixture(t, db, "Ata")
	repo := repositories.NewGORMClassRepository(db)
	ctx := context.Background()

	class, err := repo.GetByPassword(ctx, f.Class.Password)
	require.NoError(t, err)
	assert.Equal(t, f.Class.ID, class.ID)
	require.NotNil(t, class.Package)
	assert.Len(t, class.Package.Items, 2)
	require.NotNil(t, class.School)

	exists, err := repo.PasswordExists(ctx, f.Class.Password)
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.GetByPassword(ctx, "nope")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	classes, err := repo.GetBySchool(ctx, f.School.ID)
	require.NoError(t, err)
	assert.Len(t, classes, 1)
}

func TestGORMPackageRepository_UpdateReplacesItems(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	f := testutil.SeedFixture(t, db, "Ata")
	repo := repositories.NewGORMPackageRepository(db)
	ctx := context.Background()

	pkg := f.Package
	pkg.Name = "Ata Paketi 2"
	pkg.Price = decimal.RequireFromString("300")
	pkg.Active = false
	pkg.Items = []models.PackageItem{{Name: "Silgi", Quantity: 2}}
	require.NoError(t, repo.Update(ctx, &pkg))

	got, err := repo.GetByID(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ata Paketi 2", got.Name)
	assert.False(t, got.Active)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(300)))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Silgi", got.Items[0].Name)

	missing := models.Package{ID: "missing", Name: "x"}
	assert.ErrorIs(t, repo.Update(ctx, &missing), repositories.ErrNotFound)
}

func TestGORMSchoolRepository_Update(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	f := testutil.SeedFixture(t, db, "Ata")
	repo := repositories.NewGORMSchoolRepository(db)
	ctx := context.Background()

	school := f.School
	school.DeliveryType = models.DeliveryCargo
	require.NoError(t, repo.Update(ctx, &school))

	got, err := repo.GetByID(ctx, school.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DeliveryCargo, got.DeliveryType)

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

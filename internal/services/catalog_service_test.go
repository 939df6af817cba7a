package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okultedarik/internal/models"
	"okultedarik/internal/repositories"
	"okultedarik/internal/services"
)

func newCatalogService(env *testEnv) *services.CatalogService {
	return services.NewCatalogService(
		repositories.NewGORMSchoolRepository(env.db),
		repositories.NewGORMClassRepository(env.db),
		repositories.NewGORMPackageRepository(env.db),
		env.auditTrail,
		env.log,
	)
}

func TestCatalogService_CreateClassGeneratesPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newCatalogService(env)

	class := &models.Class{SchoolID: env.fixture.School.ID, Name: "2-B", PackageID: &env.fixture.Package.ID}
	require.NoError(t, svc.CreateClass(ctx, class, admin))
	assert.Len(t, class.Password, 8)

	found, err := svc.ResolveClassAccess(ctx, strings.ToLower(class.Password))
	require.NoError(t, err)
	assert.Equal(t, class.ID, found.ID)
	require.NotNil(t, found.School)
	assert.Equal(t, env.fixture.School.ID, found.School.ID)

	old := class.Password
	regenerated, err := svc.RegenerateClassPassword(ctx, class.ID, admin)
	require.NoError(t, err)
	assert.NotEqual(t, old, regenerated.Password)
	_, err = svc.ResolveClassAccess(ctx, old)
	assert.ErrorIs(t, err, services.ErrNotFound)

	assert.Len(t, env.auditFor(t, models.EntityClass, class.ID), 2)
}

func TestCatalogService_CreateClassChecksReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newCatalogService(env)

	err := svc.CreateClass(ctx, &models.Class{SchoolID: "missing", Name: "X"}, admin)
	assert.ErrorIs(t, err, services.ErrNotFound)

	missing := "missing"
	err = svc.CreateClass(ctx, &models.Class{SchoolID: env.fixture.School.ID, Name: "X", PackageID: &missing}, admin)
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.ResolveClassAccess(ctx, "  ")
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestCatalogService_UpdateClassRejectsTakenPassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newCatalogService(env)

	other := &models.Class{SchoolID: env.fixture.School.ID, Name: "3-C"}
	require.NoError(t, svc.CreateClass(ctx, other, admin))

	update := &models.Class{ID: other.ID, Name: "3-C", Password: strings.ToLower(env.fixture.Class.Password)}
	err := svc.UpdateClass(ctx, update, admin)
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	stored, err := svc.GetClass(ctx, other.ID)
	require.NoError(t, err)
	assert.Equal(t, other.Password, stored.Password)

	keep := &models.Class{ID: other.ID, Name: "3-D", Password: other.Password}
	require.NoError(t, svc.UpdateClass(ctx, keep, admin))
}

func TestCatalogService_Packages(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newCatalogService(env)

	pkg := &models.Package{Name: "Ortaokul", Price: decimal.RequireFromString("-1"), Active: true}
	assert.ErrorIs(t, svc.CreatePackage(ctx, pkg, admin), services.ErrInvalidInput)

	pkg.Price = decimal.RequireFromString("399.90")
	pkg.Items = []models.PackageItem{{Name: "Cetvel", Quantity: 1}}
	require.NoError(t, svc.CreatePackage(ctx, pkg, admin))

	pkg.Items = []models.PackageItem{{Name: "Boya", Quantity: 12}, {Name: "Silgi", Quantity: 2}}
	require.NoError(t, svc.UpdatePackage(ctx, pkg, admin))

	stored, err := svc.GetPackage(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Items, 2)
	assert.Equal(t, "399.90", stored.Price.StringFixed(2))
}

func TestCatalogService_Schools(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newCatalogService(env)

	school := &models.School{Name: "Cumhuriyet Ortaokulu", DeliveryType: models.DeliveryCargo}
	require.NoError(t, svc.CreateSchool(ctx, school, admin))
	school.Name = "Cumhuriyet Ortaokulu (Merkez)"
	require.NoError(t, svc.UpdateSchool(ctx, school, admin))

	schools, err := svc.ListSchools(ctx)
	require.NoError(t, err)
	assert.Len(t, schools, 2)

	got, err := svc.GetSchool(ctx, school.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cumhuriyet Ortaokulu (Merkez)", got.Name)
}

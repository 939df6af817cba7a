package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"okultedarik/internal/models"
	"okultedarik/internal/repositories"
	"okultedarik/internal/testutil"
)

func TestGORMUserRepository(t *testing.T) {
	db := testutil.OpenInMemoryDB(t)
	repo := repositories.NewGORMUserRepository(db)
	ctx := context.Background()
	schoolID := "school-1"

	require.NoError(t, repo.Create(ctx, &models.User{Username: "admin", Password: "x", Type: models.ActorAdmin}))
	require.NoError(t, repo.Create(ctx, &models.User{Username: "mudur1", Password: "x", Type: models.ActorMudur, SchoolID: &schoolID}))

	u, err := repo.GetByUsername(ctx, "mudur1")
	require.NoError(t, err)
	assert.Equal(t, models.Actor{ID: u.ID, Type: models.ActorMudur, SchoolID: schoolID}, u.Actor())

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "mudur1", byID.Username)

	n, err := repo.CountByType(ctx, models.ActorAdmin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	mudurs, err := repo.ListByType(ctx, models.ActorMudur)
	require.NoError(t, err)
	assert.Len(t, mudurs, 1)

	_, err = repo.GetByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	err = repo.Create(ctx, &models.User{Username: "admin", Password: "y", Type: models.ActorAdmin})
	var storageErr *repositories.StorageError
	assert.ErrorAs(t, err, &storageErr)
}

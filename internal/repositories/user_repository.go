package repositories

import (
	"context"

	"okultedarik/internal/models"
)

// UserRepository defines the interface for staff account data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	ListByType(ctx context.Context, userType models.ActorType) ([]models.User, error)
	CountByType(ctx context.Context, userType models.ActorType) (int64, error)
}

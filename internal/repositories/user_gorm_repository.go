package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"okultedarik/internal/models"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Create creates a new user in the database.
func (r *GORMUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if err := conn(ctx, r.db).Create(user).Error; err != nil {
		return storageErr("create user", err)
	}
	return nil
}

// GetByUsername retrieves a user by their username from the database.
func (r *GORMUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := conn(ctx, r.db).First(&user, "username = ?", username).Error; err != nil {
		return nil, wrap(err, "get user by username", "user", username)
	}
	return &user, nil
}

// GetByID retrieves a user by their ID from the database.
func (r *GORMUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := conn(ctx, r.db).First(&user, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "get user", "user", id)
	}
	return &user, nil
}

// ListByType retrieves all users of one type ordered by username.
func (r *GORMUserRepository) ListByType(ctx context.Context, userType models.ActorType) ([]models.User, error) {
	var users []models.User
	if err := conn(ctx, r.db).Where("type = ?", userType).Order("username").Find(&users).Error; err != nil {
		return nil, storageErr("list users", err)
	}
	return users, nil
}

// CountByType counts users of one type.
func (r *GORMUserRepository) CountByType(ctx context.Context, userType models.ActorType) (int64, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.User{}).Where("type = ?", userType).Count(&count).Error; err != nil {
		return 0, storageErr("count users", err)
	}
	return count, nil
}

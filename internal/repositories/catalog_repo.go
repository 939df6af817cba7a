package repositories

import (
	"context"

	"okultedarik/internal/models"
)

// SchoolRepository defines the interface for school data access.
type SchoolRepository interface {
	GetAll(ctx context.Context) ([]models.School, error)
	GetByID(ctx context.Context, id string) (*models.School, error)
	Create(ctx context.Context, school *models.School) error
	Update(ctx context.Context, school *models.School) error
}

// ClassRepository defines the interface for class data access.
type ClassRepository interface {
	GetBySchool(ctx context.Context, schoolID string) ([]models.Class, error)
	GetByID(ctx context.Context, id string) (*models.Class, error)
	GetByPassword(ctx context.Context, password string) (*models.Class, error)
	PasswordExists(ctx context.Context, password string) (bool, error)
	Create(ctx context.Context, class *models.Class) error
	Update(ctx context.Context, class *models.Class) error
}

// PackageRepository defines the interface for package data access.
type PackageRepository interface {
	GetAll(ctx context.Context) ([]models.Package, error)
	GetByID(ctx context.Context, id string) (*models.Package, error)
	Create(ctx context.Context, pkg *models.Package) error
	// Update saves the package fields and replaces its item list.
	Update(ctx context.Context, pkg *models.Package) error
}

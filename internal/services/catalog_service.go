package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"okultedarik/internal/models"
	"okultedarik/internal/repositories"
	"okultedarik/pkg/password"
)

const (
	classPasswordLength   = 8
	classPasswordAttempts = 5
)

// CatalogService manages schools, classes and packages.
type CatalogService struct {
	schools  repositories.SchoolRepository
	classes  repositories.ClassRepository
	packages repositories.PackageRepository
	audit    *AuditTrail
	log      *zap.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(schools repositories.SchoolRepository, classes repositories.ClassRepository, packages repositories.PackageRepository, audit *AuditTrail, log *zap.Logger) *CatalogService {
	return &CatalogService{
		schools:  schools,
		classes:  classes,
		packages: packages,
		audit:    audit,
		log:      log,
	}
}

// ListSchools returns every school.
func (s *CatalogService) ListSchools(ctx context.Context) ([]models.School, error) {
	return s.schools.GetAll(ctx)
}

// GetSchool retrieves a single school.
func (s *CatalogService) GetSchool(ctx context.Context, id string) (*models.School, error) {
	return s.schools.GetByID(ctx, id)
}

// CreateSchool creates a new school.
func (s *CatalogService) CreateSchool(ctx context.Context, school *models.School, actor models.Actor) error {
	if err := s.schools.Create(ctx, school); err != nil {
		return err
	}
	s.audit.Record(ctx, actor, models.AuditCreate, models.EntitySchool, school.ID, map[string]any{"name": school.Name})
	return nil
}

// UpdateSchool saves an existing school.
func (s *CatalogService) UpdateSchool(ctx context.Context, school *models.School, actor models.Actor) error {
	if err := s.schools.Update(ctx, school); err != nil {
		return err
	}
	s.audit.Record(ctx, actor, models.AuditUpdate, models.EntitySchool, school.ID, map[string]any{
		"name":         school.Name,
		"deliveryType": school.DeliveryType,
	})
	return nil
}

// ListClasses returns the classes of a school, or all classes when schoolID is empty.
func (s *CatalogService) ListClasses(ctx context.Context, schoolID string) ([]models.Class, error) {
	return s.classes.GetBySchool(ctx, schoolID)
}

// GetClass retrieves a single class.
func (s *CatalogService) GetClass(ctx context.Context, id string) (*models.Class, error) {
	return s.classes.GetByID(ctx, id)
}

// ResolveClassAccess finds the class a parent is entering with its access password.
func (s *CatalogService) ResolveClassAccess(ctx context.Context, accessPassword string) (*models.Class, error) {
	accessPassword = strings.TrimSpace(accessPassword)
	if accessPassword == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	return s.classes.GetByPassword(ctx, strings.ToUpper(accessPassword))
}

// CreateClass creates a class under an existing school, generating an access password
// when none is supplied.
func (s *CatalogService) CreateClass(ctx context.Context, class *models.Class, actor models.Actor) error {
	if _, err := s.schools.GetByID(ctx, class.SchoolID); err != nil {
		return err
	}
	if err := s.checkPackage(ctx, class.PackageID); err != nil {
		return err
	}
	if class.Password == "" {
		pw, err := s.uniquePassword(ctx)
		if err != nil {
			return err
		}
		class.Password = pw
	}
	class.Password = strings.ToUpper(class.Password)
	if err := s.classes.Create(ctx, class); err != nil {
		return err
	}
	s.audit.Record(ctx, actor, models.AuditCreate, models.EntityClass, class.ID, map[string]any{
		"schoolId": class.SchoolID,
		"name":     class.Name,
	})
	return nil
}

// UpdateClass saves an existing class.
func (s *CatalogService) UpdateClass(ctx context.Context, class *models.Class, actor models.Actor) error {
	current, err := s.classes.GetByID(ctx, class.ID)
	if err != nil {
		return err
	}
	if err := s.checkPackage(ctx, class.PackageID); err != nil {
		return err
	}
	if class.Password == "" {
		class.Password = current.Password
	}
	class.Password = strings.ToUpper(class.Password)
	if class.Password != current.Password {
		exists, err := s.classes.PasswordExists(ctx, class.Password)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%w: access password is already in use", ErrInvalidInput)
		}
	}
	class.SchoolID = current.SchoolID
	if err := s.classes.Update(ctx, class); err != nil {
		return err
	}
	s.audit.Record(ctx, actor, models.AuditUpdate, models.EntityClass, class.ID, map[string]any{"name": class.Name})
	return nil
}

// RegenerateClassPassword replaces a class's access password.
func (s *CatalogService) RegenerateClassPassword(ctx context.Context, classID string, actor models.Actor) (*models.Class, error) {
	class, err := s.classes.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	pw, err := s.uniquePassword(ctx)
	if err != nil {
		return nil, err
	}
	class.Password = pw
	if err := s.classes.Update(ctx, class); err != nil {
		return nil, err
	}
	s.audit.Record(ctx, actor, models.AuditUpdate, models.EntityClass, class.ID, map[string]any{"passwordRegenerated": true})
	return class, nil
}

func (s *CatalogService) uniquePassword(ctx context.Context) (string, error) {
	for i := 0; i < classPasswordAttempts; i++ {
		pw, err := password.Generate(classPasswordLength)
		if err != nil {
			return "", err
		}
		exists, err := s.classes.PasswordExists(ctx, pw)
		if err != nil {
			return "", err
		}
		if !exists {
			return pw, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique class password after %d attempts", classPasswordAttempts)
}

func (s *CatalogService) checkPackage(ctx context.Context, packageID *string) error {
	if packageID == nil || *packageID == "" {
		return nil
	}
	_, err := s.packages.GetByID(ctx, *packageID)
	return err
}

// ListPackages returns every package.
func (s *CatalogService) ListPackages(ctx context.Context) ([]models.Package, error) {
	return s.packages.GetAll(ctx)
}

// GetPackage retrieves a single package.
func (s *CatalogService) GetPackage(ctx context.Context, id string) (*models.Package, error) {
	return s.packages.GetByID(ctx, id)
}

// CreatePackage creates a package with its items.
func (s *CatalogService) CreatePackage(ctx context.Context, pkg *models.Package, actor models.Actor) error {
	if pkg.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if err := s.packages.Create(ctx, pkg); err != nil {
		return err
	}
	s.audit.Record(ctx, actor, models.AuditCreate, models.EntityPackage, pkg.ID, map[string]any{
		"name":  pkg.Name,
		"price": pkg.Price.StringFixed(2),
	})
	return nil
}

// UpdatePackage saves a package and replaces its items.
func (s *CatalogService) UpdatePackage(ctx context.Context, pkg *models.Package, actor models.Actor) error {
	if pkg.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if err := s.packages.Update(ctx, pkg); err != nil {
		return err
	}
	s.audit.Record(ctx, actor, models.AuditUpdate, models.EntityPackage, pkg.ID, map[string]any{
		"name":  pkg.Name,
		"price": pkg.Price.StringFixed(2),
	})
	return nil
}

package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"okultedarik/internal/models"
)

// GORMSchoolRepository is a GORM implementation of SchoolRepository.
type GORMSchoolRepository struct {
	db *gorm.DB
}

// NewGORMSchoolRepository creates a new instance of GORMSchoolRepository.
func NewGORMSchoolRepository(db *gorm.DB) *GORMSchoolRepository {
	return &GORMSchoolRepository{db: db}
}

// GetAll retrieves all schools ordered by name.
func (r *GORMSchoolRepository) GetAll(ctx context.Context) ([]models.School, error) {
	var schools []models.School
	if err := conn(ctx, r.db).Order("name").Find(&schools).Error; err != nil {
		return nil, storageErr("list schools", err)
	}
	return schools, nil
}

// GetByID retrieves a single school.
func (r *GORMSchoolRepository) GetByID(ctx context.Context, id string) (*models.School, error) {
	var school models.School
	if err := conn(ctx, r.db).First(&school, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "get school", "school", id)
	}
	return &school, nil
}

// Create inserts a new school.
func (r *GORMSchoolRepository) Create(ctx context.Context, school *models.School) error {
	if school.ID == "" {
		school.ID = uuid.New().String()
	}
	if err := conn(ctx, r.db).Create(school).Error; err != nil {
		return storageErr("create school", err)
	}
	return nil
}

// Update saves an existing school.
func (r *GORMSchoolRepository) Update(ctx context.Context, school *models.School) error {
	res := conn(ctx, r.db).Model(school).Select("name", "address", "phone", "delivery_type", "updated_at").Updates(school)
	if res.Error != nil {
		return storageErr("update school", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap(gorm.ErrRecordNotFound, "update school", "school", school.ID)
	}
	return nil
}

// GORMClassRepository is a GORM implementation of ClassRepository.
type GORMClassRepository struct {
	db *gorm.DB
}

// NewGORMClassRepository creates a new instance of GORMClassRepository.
func NewGORMClassRepository(db *gorm.DB) *GORMClassRepository {
	return &GORMClassRepository{db: db}
}

// GetBySchool retrieves the classes of one school ordered by name.
func (r *GORMClassRepository) GetBySchool(ctx context.Context, schoolID string) ([]models.Class, error) {
	var classes []models.Class
	q := conn(ctx, r.db).Preload("Package")
	if schoolID != "" {
		q = q.Where("school_id = ?", schoolID)
	}
	if err := q.Order("name").Find(&classes).Error; err != nil {
		return nil, storageErr("list classes", err)
	}
	return classes, nil
}

// GetByID retrieves a class with its school and package.
func (r *GORMClassRepository) GetByID(ctx context.Context, id string) (*models.Class, error) {
	var class models.Class
	err := conn(ctx, r.db).Preload("School").Preload("Package.Items").First(&class, "id = ?", id).Error
	if err != nil {
		return nil, wrap(err, "get class", "class", id)
	}
	return &class, nil
}

// GetByPassword resolves a class from its access password.
func (r *GORMClassRepository) GetByPassword(ctx context.Context, password string) (*models.Class, error) {
	var class models.Class
	err := conn(ctx, r.db).Preload("School").Preload("Package.Items").First(&class, "password = ?", password).Error
	if err != nil {
		return nil, wrap(err, "get class by password", "class", "(password)")
	}
	return &class, nil
}

// PasswordExists reports whether any class already uses the password.
func (r *GORMClassRepository) PasswordExists(ctx context.Context, password string) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&models.Class{}).Where("password = ?", password).Count(&count).Error; err != nil {
		return false, storageErr("check class password", err)
	}
	return count > 0, nil
}

// Create inserts a new class.
func (r *GORMClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.New().String()
	}
	if err := conn(ctx, r.db).Omit("School", "Package").Create(class).Error; err != nil {
		return storageErr("create class", err)
	}
	return nil
}

// Update saves an existing class.
func (r *GORMClassRepository) Update(ctx context.Context, class *models.Class) error {
	res := conn(ctx, r.db).Model(class).Omit("School", "Package").
		Select("name", "password", "package_id", "updated_at").Updates(class)
	if res.Error != nil {
		return storageErr("update class", res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap(gorm.ErrRecordNotFound, "update class", "class", class.ID)
	}
	return nil
}

// GORMPackageRepository is a GORM implementation of PackageRepository.
type GORMPackageRepository struct {
	db *gorm.DB
}

// NewGORMPackageRepository creates a new instance of GORMPackageRepository.
func NewGORMPackageRepository(db *gorm.DB) *GORMPackageRepository {
	return &GORMPackageRepository{db: db}
}

// GetAll retrieves all packages with their items.
func (r *GORMPackageRepository) GetAll(ctx context.Context) ([]models.Package, error) {
	var pkgs []models.Package
	if err := conn(ctx, r.db).Preload("Items").Order("name").Find(&pkgs).Error; err != nil {
		return nil, storageErr("list packages", err)
	}
	return pkgs, nil
}

// GetByID retrieves a single package with its items.
func (r *GORMPackageRepository) GetByID(ctx context.Context, id string) (*models.Package, error) {
	var pkg models.Package
	if err := conn(ctx, r.db).Preload("Items").First(&pkg, "id = ?", id).Error; err != nil {
		return nil, wrap(err, "get package", "package", id)
	}
	return &pkg, nil
}

// Create inserts a package and its items.
func (r *GORMPackageRepository) Create(ctx context.Context, pkg *models.Package) error {
	if pkg.ID == "" {
		pkg.ID = uuid.New().String()
	}
	assignItemIDs(pkg)
	if err := conn(ctx, r.db).Create(pkg).Error; err != nil {
		return storageErr("create package", err)
	}
	return nil
}

// Update saves the package and replaces its items in one transaction.
func (r *GORMPackageRepository) Update(ctx context.Context, pkg *models.Package) error {
	assignItemIDs(pkg)
	err := conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(pkg).Omit("Items").
			Select("name", "description", "price", "active", "updated_at").Updates(pkg)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Where("package_id = ?", pkg.ID).Delete(&models.PackageItem{}).Error; err != nil {
			return err
		}
		if len(pkg.Items) == 0 {
			return nil
		}
		return tx.Create(&pkg.Items).Error
	})
	return wrap(err, "update package", "package", pkg.ID)
}

func assignItemIDs(pkg *models.Package) {
	for i := range pkg.Items {
		if pkg.Items[i].ID == "" {
			pkg.Items[i].ID = uuid.New().String()
		}
		pkg.Items[i].PackageID = pkg.ID
	}
}

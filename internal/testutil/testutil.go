package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"okultedarik/internal/models"
	"okultedarik/internal/repositories"
)

// OpenInMemoryDB opens a private in-memory SQLite database and migrates every model.
func OpenInMemoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openDB(t, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String()))
}

// OpenFileDB opens a migrated SQLite database file under the test's temp dir.
func OpenFileDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openDB(t, filepath.Join(t.TempDir(), "okul.db"))
}

func openDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	db, err := repositories.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := repositories.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// Fixture is a school with one class and one package.
type Fixture struct {
	School  models.School
	Class   models.Class
	Package models.Package
}

// SeedFixture inserts a school, a package and a class that uses it.
func SeedFixture(t *testing.T, db *gorm.DB, name string) Fixture {
	t.Helper()
	ctx := context.Background()
	f := Fixture{
		School: models.School{Name: name + " Ilkokulu", DeliveryType: models.DeliverySchool},
		Package: models.Package{
			Name:   name + " Paketi",
			Price:  decimal.RequireFromString("250.00"),
			Active: true,
			Items:  []models.PackageItem{{Name: "Defter", Quantity: 5}, {Name: "Kalem", Quantity: 10}},
		},
	}
	if err := repositories.NewGORMSchoolRepository(db).Create(ctx, &f.School); err != nil {
		t.Fatalf("seed school: %v", err)
	}
	if err := repositories.NewGORMPackageRepository(db).Create(ctx, &f.Package); err != nil {
		t.Fatalf("seed package: %v", err)
	}
	f.Class = models.Class{
		SchoolID:  f.School.ID,
		Name:      name + " 1-A",
		Password:  strings.ToUpper("PW" + uuid.New().String()[:8]),
		PackageID: &f.Package.ID,
	}
	if err := repositories.NewGORMClassRepository(db).Create(ctx, &f.Class); err != nil {
		t.Fatalf("seed class: %v", err)
	}
	return f
}

// SeedOrder inserts an order for the fixture's class in the given status.
func SeedOrder(t *testing.T, db *gorm.DB, f Fixture, status models.OrderStatus, amount string) *models.Order {
	t.Helper()
	order := &models.Order{
		OrderNumber:     "ORD-" + uuid.New().String()[:8],
		Status:          status,
		TotalAmount:     decimal.RequireFromString(amount),
		StudentName:     "Ali Yilmaz",
		ParentName:      "Ayse Yilmaz",
		ParentPhone:     "05551234567",
		ParentEmail:     "ayse@example.com",
		DeliveryAddress: "Okul teslim",
		ClassID:         f.Class.ID,
		PackageID:       &f.Package.ID,
		CreatedAt:       time.Now().UTC(),
	}
	if err := repositories.NewGORMOrderRepository(db).Create(context.Background(), order); err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

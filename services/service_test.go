package services

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shop-http-service/config"
	"shop-http-service/models"
)

// setupTestDB opens an in-memory database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Admin{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		ProductsDir:          t.TempDir(),
		ImageMaxWidth:        1600,
		ImageMaxHeight:       1200,
		ImageJPEGQuality:     82,
		JWTSecretKey:         "test-secret",
		AdminEmail:           "admin@example.com",
		DefaultAdminPassword: "admin123",
	}
}

func mustCreateCategory(t *testing.T, svc InterfaceCategoryService, slug, name string) *models.Category {
	t.Helper()
	category, err := svc.CreateCategory(slug, name)
	if err != nil {
		t.Fatalf("CreateCategory(%q): %v", slug, err)
	}
	return category
}

func mustCreateProduct(t *testing.T, svc InterfaceProductService, name string, price float64, categoryID uint) *models.AdminProductRow {
	t.Helper()
	row, err := svc.CreateProduct(name, name+" description", price, categoryID)
	if err != nil {
		t.Fatalf("CreateProduct(%q): %v", name, err)
	}
	return row
}

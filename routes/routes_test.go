package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shop-http-service/config"
	"shop-http-service/models"
	"shop-http-service/services"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

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

	cfg := &config.Config{
		ProductsDir:  t.TempDir(),
		JWTSecretKey: "test-secret",
	}
	return SetupRouter(db, cfg), db, cfg
}

func seedProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()

	category := models.Category{Slug: "berries", Name: "Berries"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	product := models.Product{
		Name:        "Strawberry",
		Description: "fresh",
		Price:       250,
		Image:       "/products/berries.svg",
		CategoryID:  category.ID,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return &product
}

// the URL stored on the product row must be servable by the router as-is
func TestUploadedImageURLResolves(t *testing.T) {
	r, db, cfg := setupTestRouter(t)
	product := seedProduct(t, db)

	payload := []byte("raw image bytes")
	imageURL, err := services.NewImageService(db, cfg).UploadProductImage(product.ID, payload, "image/png")
	if err != nil {
		t.Fatalf("UploadProductImage: %v", err)
	}
	if !strings.HasPrefix(imageURL, "/products/") {
		t.Fatalf("unexpected image URL %q", imageURL)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, imageURL, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s: want 200, got %d", imageURL, w.Code)
	}
	if w.Body.String() != string(payload) {
		t.Fatal("served file must contain the uploaded bytes")
	}
}

func TestImageRouteMissingFile(t *testing.T) {
	r, _, _ := setupTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products/9999-deadbeef00.jpg", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing file: want 404, got %d", w.Code)
	}
}

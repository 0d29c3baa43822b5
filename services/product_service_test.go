package services

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"shop-http-service/config"
)

func newProductFixture(t *testing.T) (*gorm.DB, *config.Config, InterfaceCategoryService, InterfaceProductService) {
	t.Helper()
	db := setupTestDB(t)
	cfg := testConfig(t)
	return db, cfg, NewCategoryService(db, cfg, nil), NewProductService(db, cfg)
}

func TestCreateProductFloorsPrice(t *testing.T) {
	_, _, categories, products := newProductFixture(t)
	category := mustCreateCategory(t, categories, "berries", "Berries")

	row := mustCreateProduct(t, products, "Strawberry", 99.99, category.ID)
	if row.Price != 99 {
		t.Fatalf("want price floored to 99, got %d", row.Price)
	}

	row = mustCreateProduct(t, products, "Freebie", -5, category.ID)
	if row.Price != 0 {
		t.Fatalf("want negative price clamped to 0, got %d", row.Price)
	}
}

func TestCreateProductPlaceholderImage(t *testing.T) {
	_, _, categories, products := newProductFixture(t)
	category := mustCreateCategory(t, categories, "berries", "Berries")

	row := mustCreateProduct(t, products, "Strawberry", 250, category.ID)
	if row.Image != "/products/berries.svg" {
		t.Fatalf("want placeholder image for category slug, got %q", row.Image)
	}
}

func TestCreateProductUnknownCategory(t *testing.T) {
	_, _, _, products := newProductFixture(t)
	if _, err := products.CreateProduct("Ghost", "no category", 100, 42); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("want ErrUnknownCategory, got %v", err)
	}
}

func TestCreateProductRequiresNameAndDescription(t *testing.T) {
	_, _, categories, products := newProductFixture(t)
	category := mustCreateCategory(t, categories, "berries", "Berries")

	if _, err := products.CreateProduct("  ", "desc", 100, category.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation for blank name, got %v", err)
	}
	if _, err := products.CreateProduct("Name", "", 100, category.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("want ErrValidation for blank description, got %v", err)
	}
}

func TestUpdateProductRecoercesPrice(t *testing.T) {
	_, _, categories, products := newProductFixture(t)
	category := mustCreateCategory(t, categories, "berries", "Berries")
	row := mustCreateProduct(t, products, "Strawberry", 250, category.ID)

	updated, err := products.UpdateProduct(row.ID, map[string]interface{}{"price": 123.75})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Price != 123 {
		t.Fatalf("want price 123 after update, got %d", updated.Price)
	}

	// fields absent from the update stay unchanged
	if updated.Name != "Strawberry" {
		t.Fatalf("name changed unexpectedly: %q", updated.Name)
	}
}

func TestUpdateProductUnknownCategory(t *testing.T) {
	_, _, categories, products := newProductFixture(t)
	category := mustCreateCategory(t, categories, "berries", "Berries")
	row := mustCreateProduct(t, products, "Strawberry", 250, category.ID)

	if _, err := products.UpdateProduct(row.ID, map[string]interface{}{"category_id": uint(99)}); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("want ErrUnknownCategory, got %v", err)
	}
}

func TestSearchProductsMatchesEveryToken(t *testing.T) {
	_, _, categories, products := newProductFixture(t)
	category := mustCreateCategory(t, categories, "fruits", "Fruits")

	mustCreateProduct(t, products, "Red Apple", 100, category.ID)
	mustCreateProduct(t, products, "Green Apple", 110, category.ID)
	mustCreateProduct(t, products, "Red Berry", 120, category.ID)

	rows, err := products.SearchProducts("red apple", "")
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Red Apple" {
		t.Fatalf("want only the product matching all tokens, got %+v", rows)
	}

	// a token may match the description instead of the name
	rows, err = products.SearchProducts("berry description", "")
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Red Berry" {
		t.Fatalf("want description match, got %+v", rows)
	}
}

func TestSearchProductsCategoryFilter(t *testing.T) {
	_, _, categories, products := newProductFixture(t)
	fruits := mustCreateCategory(t, categories, "fruits", "Fruits")
	berries := mustCreateCategory(t, categories, "berries", "Berries")

	mustCreateProduct(t, products, "Apple", 100, fruits.ID)
	mustCreateProduct(t, products, "Strawberry", 250, berries.ID)

	rows, err := products.SearchProducts("", "berries")
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(rows) != 1 || rows[0].CategorySlug != "berries" {
		t.Fatalf("want only berries products, got %+v", rows)
	}
}

func TestListGroupedByCategoryOrder(t *testing.T) {
	_, _, categories, products := newProductFixture(t)
	zebra := mustCreateCategory(t, categories, "zebra", "Zebra")
	apples := mustCreateCategory(t, categories, "apples", "Apples")

	mustCreateProduct(t, products, "Old Zebra Item", 10, zebra.ID)
	first := mustCreateProduct(t, products, "Apple One", 20, apples.ID)
	second := mustCreateProduct(t, products, "Apple Two", 30, apples.ID)

	rows, err := products.ListGroupedByCategory()
	if err != nil {
		t.Fatalf("ListGroupedByCategory: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("want 3 rows, got %d", len(rows))
	}

	// categories sort by name, newest product first within a category
	if rows[0].ID != second.ID || rows[1].ID != first.ID {
		t.Fatalf("want apples group first with newest on top, got %+v", rows)
	}
	if rows[2].CategorySlug != "zebra" {
		t.Fatalf("want zebra group last, got %+v", rows[2])
	}
}

func TestDeleteProductKeepsOrderItems(t *testing.T) {
	db, cfg, categories, products := newProductFixture(t)
	category := mustCreateCategory(t, categories, "berries", "Berries")
	row := mustCreateProduct(t, products, "Strawberry", 250, category.ID)

	orders := NewOrderService(db, cfg)
	order, err := orders.CreateOrder(CheckoutRequest{
		Name:  "Ivan",
		Phone: "+70000000000",
		Items: []CartLine{{ProductID: row.ID, Quantity: 1}},
	}, "token-1")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if err := products.DeleteProduct(row.ID); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	listed, err := orders.ListClientOrders("token-1")
	if err != nil {
		t.Fatalf("ListClientOrders: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != order.ID {
		t.Fatalf("order should survive product deletion, got %+v", listed)
	}
	item := listed[0].Items[0]
	if item.Price != 250 || item.Name != "" {
		t.Fatalf("want price snapshot kept and name blank after deletion, got %+v", item)
	}
}

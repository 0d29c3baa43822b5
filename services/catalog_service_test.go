package services

import (
	"fmt"
	"testing"

	"gorm.io/gorm"

	"shop-http-service/models"
)

func newCatalogFixture(t *testing.T, productCount int) (*gorm.DB, InterfaceCatalogService, []uint) {
	t.Helper()
	db := setupTestDB(t)
	cfg := testConfig(t)
	categories := NewCategoryService(db, cfg, nil)
	products := NewProductService(db, cfg)

	category := mustCreateCategory(t, categories, "fruits", "Fruits")
	ids := make([]uint, 0, productCount)
	for i := 0; i < productCount; i++ {
		row := mustCreateProduct(t, products, fmt.Sprintf("Product %02d", i), float64(100+i), category.ID)
		ids = append(ids, row.ID)
	}

	return db, NewCatalogService(db, cfg), ids
}

func collectIDs(result *models.PageResult) []uint {
	items := result.Items.([]models.CatalogItem)
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestCatalogSeededPagination(t *testing.T) {
	_, catalog, ids := newCatalogFixture(t, 25)

	seen := make(map[uint]bool)
	for page := 1; page <= 3; page++ {
		result, err := catalog.ListProducts(CatalogQuery{Page: page, Limit: 10, Seed: 4242})
		if err != nil {
			t.Fatalf("ListProducts page %d: %v", page, err)
		}
		for _, id := range collectIDs(result) {
			if seen[id] {
				t.Fatalf("product %d appeared on more than one page", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != len(ids) {
		t.Fatalf("pages must cover all %d products exactly once, saw %d", len(ids), len(seen))
	}
}

func TestCatalogShuffleReproducible(t *testing.T) {
	_, catalog, _ := newCatalogFixture(t, 15)

	first, err := catalog.ListProducts(CatalogQuery{Page: 1, Limit: 15, Seed: 777})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	second, err := catalog.ListProducts(CatalogQuery{Page: 1, Limit: 15, Seed: 777})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}

	a, b := collectIDs(first), collectIDs(second)
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed must give the same order: %v vs %v", a, b)
		}
	}
}

func TestCatalogLimitClamp(t *testing.T) {
	_, catalog, _ := newCatalogFixture(t, 60)

	result, err := catalog.ListProducts(CatalogQuery{Page: 1, Limit: 100, Seed: 1})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(result.Items.([]models.CatalogItem)) != 50 {
		t.Fatalf("limit must clamp to 50, got %d", len(result.Items.([]models.CatalogItem)))
	}

	result, err = catalog.ListProducts(CatalogQuery{Page: 1, Seed: 1})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(result.Items.([]models.CatalogItem)) != 10 {
		t.Fatalf("default limit must be 10, got %d", len(result.Items.([]models.CatalogItem)))
	}
	if result.Total != 60 || !result.HasMore {
		t.Fatalf("want total=60 hasMore=true, got total=%d hasMore=%v", result.Total, result.HasMore)
	}
}

func TestCatalogPriceSort(t *testing.T) {
	_, catalog, _ := newCatalogFixture(t, 10)

	result, err := catalog.ListProducts(CatalogQuery{Page: 1, Limit: 10, Sort: "price_desc", Seed: 1})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}

	items := result.Items.([]models.CatalogItem)
	for i := 1; i < len(items); i++ {
		if items[i-1].Price < items[i].Price {
			t.Fatalf("price_desc must be monotone, got %d before %d", items[i-1].Price, items[i].Price)
		}
	}
}

func TestCatalogUnknownSortFallsBackToPriceAsc(t *testing.T) {
	_, catalog, _ := newCatalogFixture(t, 10)

	// any explicit sort value overrides the shuffle; unknown ones
	// behave like price_asc
	result, err := catalog.ListProducts(CatalogQuery{Page: 1, Limit: 10, Sort: "newest", Seed: 777})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	items := result.Items.([]models.CatalogItem)
	for i := 1; i < len(items); i++ {
		if items[i-1].Price > items[i].Price {
			t.Fatalf("unknown sort must order by price ASC, got %d before %d", items[i-1].Price, items[i].Price)
		}
	}
}

func TestCatalogDefaultCategoryFirst(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig(t)
	categories := NewCategoryService(db, cfg, nil)
	products := NewProductService(db, cfg)
	catalog := NewCatalogService(db, cfg)

	fruits := mustCreateCategory(t, categories, "fruits", "Fruits")
	berries := mustCreateCategory(t, categories, "berries", "Berries")
	mustCreateProduct(t, products, "Apple", 100, fruits.ID)
	berryRow := mustCreateProduct(t, products, "Strawberry", 250, berries.ID)

	if err := categories.SetDefaultCategory(berries.ID); err != nil {
		t.Fatalf("SetDefaultCategory: %v", err)
	}

	result, err := catalog.ListProducts(CatalogQuery{Page: 1, Limit: 10, Sort: "price_asc", Seed: 1})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	items := result.Items.([]models.CatalogItem)
	if len(items) != 2 || items[0].ID != berryRow.ID {
		t.Fatalf("default category products must come first, got %+v", items)
	}
}

func TestCatalogCategoryFilter(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig(t)
	categories := NewCategoryService(db, cfg, nil)
	products := NewProductService(db, cfg)
	catalog := NewCatalogService(db, cfg)

	fruits := mustCreateCategory(t, categories, "fruits", "Fruits")
	berries := mustCreateCategory(t, categories, "berries", "Berries")
	mustCreateProduct(t, products, "Apple", 100, fruits.ID)
	mustCreateProduct(t, products, "Strawberry", 250, berries.ID)

	result, err := catalog.ListProducts(CatalogQuery{Page: 1, Limit: 10, Category: "berries", Seed: 1})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	items := result.Items.([]models.CatalogItem)
	if len(items) != 1 || items[0].Category != "berries" {
		t.Fatalf("want only berries products, got %+v", items)
	}
}

func TestCatalogRatingCountsDistinctOrders(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig(t)
	categories := NewCategoryService(db, cfg, nil)
	products := NewProductService(db, cfg)
	orders := NewOrderService(db, cfg)
	catalog := NewCatalogService(db, cfg)

	category := mustCreateCategory(t, categories, "fruits", "Fruits")
	popular := mustCreateProduct(t, products, "Apple", 100, category.ID)
	quiet := mustCreateProduct(t, products, "Pear", 120, category.ID)

	for i := 0; i < 3; i++ {
		if _, err := orders.CreateOrder(CheckoutRequest{
			Name:  "Ivan",
			Phone: "+70000000000",
			// the same product twice in one order still counts as one order
			Items: []CartLine{{ProductID: popular.ID, Quantity: 2}},
		}, fmt.Sprintf("token-%d", i)); err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
	}

	result, err := catalog.ListProducts(CatalogQuery{Page: 1, Limit: 10, Sort: "rating", Seed: 1})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	items := result.Items.([]models.CatalogItem)
	if len(items) != 2 || items[0].ID != popular.ID {
		t.Fatalf("highest rated product must come first, got %+v", items)
	}
	if items[0].Rating != 3 {
		t.Fatalf("want rating 3 for product in 3 orders, got %d", items[0].Rating)
	}
	for _, item := range items {
		if item.ID == quiet.ID && item.Rating != 0 {
			t.Fatalf("unordered product must have rating 0, got %d", item.Rating)
		}
	}
}

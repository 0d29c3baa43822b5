package services

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"shop-http-service/models"
)

func newOrderFixture(t *testing.T) (*gorm.DB, InterfaceOrderService, []*models.AdminProductRow) {
	t.Helper()
	db := setupTestDB(t)
	cfg := testConfig(t)
	categories := NewCategoryService(db, cfg, nil)
	products := NewProductService(db, cfg)

	category := mustCreateCategory(t, categories, "berries", "Berries")
	strawberry := mustCreateProduct(t, products, "Strawberry", 250, category.ID)
	raspberry := mustCreateProduct(t, products, "Raspberry", 125, category.ID)

	return db, NewOrderService(db, cfg), []*models.AdminProductRow{strawberry, raspberry}
}

func TestCreateOrderRepricesFromCatalog(t *testing.T) {
	_, orders, rows := newOrderFixture(t)

	order, err := orders.CreateOrder(CheckoutRequest{
		Name:  "Ivan",
		Phone: "+70000000000",
		Items: []CartLine{
			{ProductID: rows[0].ID, Quantity: 2},
			{ProductID: rows[1].ID, Quantity: 2},
		},
	}, "token-1")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.TotalPrice != 750 {
		t.Fatalf("want total 250*2 + 125*2 = 750, got %d", order.TotalPrice)
	}
	if order.Status != models.OrderStatusPending {
		t.Fatalf("new order must be pending, got %q", order.Status)
	}
	if order.ExpiresAt == nil || time.Until(*order.ExpiresAt) < 29*24*time.Hour {
		t.Fatalf("want expiry about 30 days out, got %v", order.ExpiresAt)
	}
}

func TestCreateOrderNormalizesQuantities(t *testing.T) {
	_, orders, rows := newOrderFixture(t)

	order, err := orders.CreateOrder(CheckoutRequest{
		Name:  "Ivan",
		Phone: "+70000000000",
		Items: []CartLine{
			{ProductID: rows[0].ID, Quantity: 0.5}, // lifted to 1
			{ProductID: rows[1].ID, Quantity: 2.9}, // floored to 2
		},
	}, "token-1")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if len(order.Items) != 2 {
		t.Fatalf("want 2 items, got %d", len(order.Items))
	}
	if order.Items[0].Quantity != 1 || order.Items[1].Quantity != 2 {
		t.Fatalf("want quantities 1 and 2, got %d and %d", order.Items[0].Quantity, order.Items[1].Quantity)
	}
	if order.TotalPrice != 250*1+125*2 {
		t.Fatalf("unexpected total %d", order.TotalPrice)
	}
}

func TestCreateOrderDropsUnknownProducts(t *testing.T) {
	_, orders, rows := newOrderFixture(t)

	order, err := orders.CreateOrder(CheckoutRequest{
		Name:  "Ivan",
		Phone: "+70000000000",
		Items: []CartLine{
			{ProductID: rows[0].ID, Quantity: 1},
			{ProductID: 9999, Quantity: 3},
		},
	}, "token-1")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if len(order.Items) != 1 || order.TotalPrice != 250 {
		t.Fatalf("unknown product must be dropped silently, got %+v", order)
	}
}

func TestCreateOrderRejectsEmptyCart(t *testing.T) {
	db, orders, _ := newOrderFixture(t)

	_, err := orders.CreateOrder(CheckoutRequest{
		Name:  "Ivan",
		Phone: "+70000000000",
		Items: []CartLine{{ProductID: 9999, Quantity: 1}},
	}, "token-1")
	if !errors.Is(err, ErrEmptyOrder) {
		t.Fatalf("want ErrEmptyOrder, got %v", err)
	}

	// the rejected order must leave no rows behind
	var count int64
	db.Model(&models.Order{}).Count(&count)
	if count != 0 {
		t.Fatalf("want no orders persisted, got %d", count)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	_, orders, rows := newOrderFixture(t)

	cases := []CheckoutRequest{
		{Name: "", Phone: "+7", Items: []CartLine{{ProductID: rows[0].ID, Quantity: 1}}},
		{Name: "Ivan", Phone: "  ", Items: []CartLine{{ProductID: rows[0].ID, Quantity: 1}}},
		{Name: "Ivan", Phone: "+7", Items: nil},
	}
	for i, req := range cases {
		if _, err := orders.CreateOrder(req, "token-1"); !errors.Is(err, ErrValidation) {
			t.Errorf("case %d: want ErrValidation, got %v", i, err)
		}
	}
}

func TestListClientOrdersScopedByToken(t *testing.T) {
	_, orders, rows := newOrderFixture(t)

	for _, token := range []string{"mine", "mine", "theirs"} {
		if _, err := orders.CreateOrder(CheckoutRequest{
			Name:  "Ivan",
			Phone: "+70000000000",
			Items: []CartLine{{ProductID: rows[0].ID, Quantity: 1}},
		}, token); err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
	}

	mine, err := orders.ListClientOrders("mine")
	if err != nil {
		t.Fatalf("ListClientOrders: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("want 2 own orders, got %d", len(mine))
	}
	if mine[0].ID > mine[1].ID {
		t.Fatal("client orders must come back in id order")
	}
	if mine[0].Items[0].Name != "Strawberry" {
		t.Fatalf("item name must resolve from the product row, got %q", mine[0].Items[0].Name)
	}
}

func TestListClientOrdersHidesExpired(t *testing.T) {
	db, orders, rows := newOrderFixture(t)

	order, err := orders.CreateOrder(CheckoutRequest{
		Name:  "Ivan",
		Phone: "+70000000000",
		Items: []CartLine{{ProductID: rows[0].ID, Quantity: 1}},
	}, "token-1")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	past := time.Now().Add(-time.Hour)
	if err := db.Model(&models.Order{}).Where("id = ?", order.ID).Update("expires_at", past).Error; err != nil {
		t.Fatalf("backdate order: %v", err)
	}

	listed, err := orders.ListClientOrders("token-1")
	if err != nil {
		t.Fatalf("ListClientOrders: %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expired order must be hidden, got %+v", listed)
	}
}

func TestDeleteClientOrderOwnershipAndStatus(t *testing.T) {
	db, orders, rows := newOrderFixture(t)

	order, err := orders.CreateOrder(CheckoutRequest{
		Name:  "Ivan",
		Phone: "+70000000000",
		Items: []CartLine{{ProductID: rows[0].ID, Quantity: 1}},
	}, "token-1")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	// someone else's token looks like a missing order, not a forbidden one
	if err := orders.DeleteClientOrder(order.ID, "stranger"); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound for foreign token, got %v", err)
	}

	if _, err := orders.UpdateOrderStatus(order.ID, models.OrderStatusProcessing); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if err := orders.DeleteClientOrder(order.ID, "token-1"); !errors.Is(err, ErrOrderNotCancelable) {
		t.Fatalf("want ErrOrderNotCancelable once processing, got %v", err)
	}

	if _, err := orders.UpdateOrderStatus(order.ID, models.OrderStatusPending); err != nil {
		t.Fatalf("UpdateOrderStatus: %v", err)
	}
	if err := orders.DeleteClientOrder(order.ID, "token-1"); err != nil {
		t.Fatalf("DeleteClientOrder: %v", err)
	}

	var itemCount int64
	db.Model(&models.OrderItem{}).Where("order_id = ?", order.ID).Count(&itemCount)
	if itemCount != 0 {
		t.Fatalf("order items must be removed with the order, %d left", itemCount)
	}
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	_, orders, rows := newOrderFixture(t)

	order, err := orders.CreateOrder(CheckoutRequest{
		Name:  "Ivan",
		Phone: "+70000000000",
		Items: []CartLine{{ProductID: rows[0].ID, Quantity: 1}},
	}, "token-1")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if _, err := orders.UpdateOrderStatus(order.ID, "shipped"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("want ErrInvalidStatus, got %v", err)
	}
	if _, err := orders.UpdateOrderStatus(9999, models.OrderStatusProcessing); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound, got %v", err)
	}

	for _, status := range []string{models.OrderStatusProcessing, models.OrderStatusFulfilled} {
		if _, err := orders.UpdateOrderStatus(order.ID, status); err != nil {
			t.Fatalf("UpdateOrderStatus(%q): %v", status, err)
		}
	}
}

func TestSetItemChecked(t *testing.T) {
	_, orders, rows := newOrderFixture(t)

	order, err := orders.CreateOrder(CheckoutRequest{
		Name:  "Ivan",
		Phone: "+70000000000",
		Items: []CartLine{{ProductID: rows[0].ID, Quantity: 1}},
	}, "token-1")
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	itemID := order.Items[0].ID

	if err := orders.SetItemChecked(order.ID, itemID, true); err != nil {
		t.Fatalf("SetItemChecked: %v", err)
	}

	listed, err := orders.ListAllOrders()
	if err != nil {
		t.Fatalf("ListAllOrders: %v", err)
	}
	if len(listed) != 1 || !listed[0].Items[0].Checked {
		t.Fatalf("item must be checked, got %+v", listed)
	}

	if err := orders.SetItemChecked(order.ID, 9999, true); !errors.Is(err, ErrOrderItemNotFound) {
		t.Fatalf("want ErrOrderItemNotFound, got %v", err)
	}
	// item id under a different order must not match either
	if err := orders.SetItemChecked(order.ID+1, itemID, true); !errors.Is(err, ErrOrderItemNotFound) {
		t.Fatalf("want ErrOrderItemNotFound for wrong order, got %v", err)
	}
}

func TestListAllOrdersNewestFirst(t *testing.T) {
	db, orders, rows := newOrderFixture(t)

	var ids []uint
	for i := 0; i < 3; i++ {
		order, err := orders.CreateOrder(CheckoutRequest{
			Name:  "Ivan",
			Phone: "+70000000000",
			Items: []CartLine{{ProductID: rows[0].ID, Quantity: 1}},
		}, "token-1")
		if err != nil {
			t.Fatalf("CreateOrder: %v", err)
		}
		ids = append(ids, order.ID)
	}

	// equal created_at timestamps fall back to id DESC
	if err := db.Model(&models.Order{}).Where("1 = 1").Update("created_at", time.Now()).Error; err != nil {
		t.Fatalf("normalize timestamps: %v", err)
	}

	listed, err := orders.ListAllOrders()
	if err != nil {
		t.Fatalf("ListAllOrders: %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("want 3 orders, got %d", len(listed))
	}
	if listed[0].ID != ids[2] || listed[2].ID != ids[0] {
		t.Fatalf("want newest order first, got %+v", listed)
	}
}

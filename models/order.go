package models

import "time"

// Order status values. There is no backward transition; anything outside
// this set is rejected as a validation failure.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusFulfilled  = "fulfilled"
)

// IsValidOrderStatus reports whether s is one of the enumerated statuses
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusFulfilled:
		return true
	}
	return false
}

// Order is a placed order. ClientToken links the anonymous shopper who
// created it; ExpiresAt bounds how long the order stays visible in the
// shopper's own-orders view.
type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"-"`
	ExpiresAt       *time.Time  `gorm:"index" json:"expires_at,omitempty"`
	TotalPrice      int64       `gorm:"not null" json:"total_price"`
	ClientToken     *string     `gorm:"type:varchar(64);index" json:"-"`
	Status          string      `gorm:"type:varchar(20);not null;default:pending;index" json:"status"`
	CustomerName    string      `gorm:"type:varchar(255)" json:"customer_name"`
	CustomerPhone   string      `gorm:"type:varchar(50)" json:"customer_phone"`
	CustomerAddress *string     `gorm:"type:varchar(500)" json:"customer_address,omitempty"`
	Items           []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem freezes the price at order time; later product price edits
// never change past orders. Checked is the fulfillment checklist flag.
type OrderItem struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	OrderID   uint  `gorm:"index;not null" json:"order_id"`
	ProductID uint  `gorm:"index;not null" json:"product_id"`
	Quantity  int   `gorm:"not null" json:"quantity"`
	Price     int64 `gorm:"not null" json:"price"`
	Checked   bool  `gorm:"not null;default:false" json:"checked"`
}

// ClientOrderItem 订单明细在客户端视图中的表示，商品名称与图片按当前商品行解析
type ClientOrderItem struct {
	ProductID uint   `json:"id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
}

// ClientOrder 订单在客户端"我的订单"视图中的表示
type ClientOrder struct {
	ID              uint              `json:"id"`
	CreatedAt       time.Time         `json:"createdAt"`
	Status          string            `json:"status"`
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerAddress *string           `json:"customer_address"`
	Items           []ClientOrderItem `json:"items"`
	Total           int64             `json:"total"`
}

// AdminOrderItem 订单明细在管理后台中的表示（配货清单行）
type AdminOrderItem struct {
	ItemID   uint   `json:"itemId"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Checked  bool   `json:"checked"`
}

// AdminOrder 订单在管理后台列表中的表示
type AdminOrder struct {
	ID        uint             `json:"id"`
	CreatedAt time.Time        `json:"createdAt"`
	Total     int64            `json:"total"`
	Status    string           `json:"status"`
	Name      string           `json:"name"`
	Phone     string           `json:"phone"`
	Address   *string          `json:"address"`
	Items     []AdminOrderItem `json:"items"`
}

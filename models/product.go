package models

import "time"

// Product represents a sellable catalog item. Price is stored in the minor
// currency unit and is floored to a non-negative integer on every write.
// Rating is not a column: listings compute it as the count of distinct
// orders that contain the product.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       int64     `gorm:"not null" json:"price"`
	Image       string    `gorm:"type:varchar(255);not null" json:"image"`
	CategoryID  uint      `gorm:"index;not null" json:"category_id"`
	Category    *Category `gorm:"foreignKey:CategoryID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CatalogItem 商品在公开目录中的表示，rating 为动态统计值
type CatalogItem struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Rating      int64  `json:"rating"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

// AdminProductRow 商品在管理后台列表中的表示
type AdminProductRow struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	Price        int64  `json:"price"`
	Image        string `json:"image"`
	CategorySlug string `json:"category_slug"`
	CategoryName string `json:"category_name"`
}

// CoercePrice clamps a submitted price to a non-negative integer amount
// of the minor currency unit
func CoercePrice(price float64) int64 {
	if price < 0 {
		return 0
	}
	return int64(price)
}

package models

// Category represents a catalog category. Exactly one category may be the
// default one; the invariant is enforced by a unique index over the nullable
// is_default column (NULL for ordinary rows, true for the default row), which
// behaves the same on MySQL and SQLite.
type Category struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Slug        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	DefaultFlag *bool  `gorm:"column:is_default;uniqueIndex:idx_categories_single_default" json:"-"`
}

// IsDefault reports whether this category is the default one
func (c *Category) IsDefault() bool {
	return c.DefaultFlag != nil && *c.DefaultFlag
}

// CategoryResponse 分类的对外表示
type CategoryResponse struct {
	ID        uint   `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

// ToResponse 转换为对外表示
func (c *Category) ToResponse() CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Slug:      c.Slug,
		Name:      c.Name,
		IsDefault: c.IsDefault(),
	}
}

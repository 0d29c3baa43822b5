package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"shop-http-service/config"
	"shop-http-service/models"
)

// InterfaceProductService 定义商品服务接口
type InterfaceProductService interface {
	GetProductByID(id uint) (*models.Product, error)
	CreateProduct(name, description string, price float64, categoryID uint) (*models.AdminProductRow, error)
	UpdateProduct(id uint, updates map[string]interface{}) (*models.Product, error)
	DeleteProduct(id uint) error
	SearchProducts(query, categorySlug string) ([]models.AdminProductRow, error)
	ListGroupedByCategory() ([]models.AdminProductRow, error)
}

// ProductService 提供商品相关的服务
type ProductService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewProductService 创建一个新的商品服务
func NewProductService(db *gorm.DB, cfg *config.Config) InterfaceProductService {
	return &ProductService{
		DB:     db,
		Config: cfg,
	}
}

// 1. GetProductByID 根据ID获取商品
func (s *ProductService) GetProductByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.DB.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// 2. CreateProduct 创建新商品。分类必须存在；价格向下取整并截断到非负；
// 初始图片为按分类 slug 生成的占位图，上传真实图片后才会替换。
func (s *ProductService) CreateProduct(name, description string, price float64, categoryID uint) (*models.AdminProductRow, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(description) == "" {
		return nil, ErrValidation
	}

	var category models.Category
	if err := s.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnknownCategory
		}
		return nil, err
	}

	product := models.Product{
		Name:        name,
		Description: description,
		Price:       models.CoercePrice(price),
		Image:       "/products/" + category.Slug + ".svg",
		CategoryID:  categoryID,
	}
	if err := s.DB.Create(&product).Error; err != nil {
		return nil, err
	}

	return &models.AdminProductRow{
		ID:           product.ID,
		Name:         product.Name,
		Description:  product.Description,
		Price:        product.Price,
		Image:        product.Image,
		CategorySlug: category.Slug,
		CategoryName: category.Name,
	}, nil
}

// 3. UpdateProduct 更新商品，未出现的字段保持不变；价格出现时重新截断
func (s *ProductService) UpdateProduct(id uint, updates map[string]interface{}) (*models.Product, error) {
	product, err := s.GetProductByID(id)
	if err != nil {
		return nil, err
	}

	if price, ok := updates["price"].(float64); ok {
		updates["price"] = models.CoercePrice(price)
	}
	if categoryID, ok := updates["category_id"]; ok {
		var count int64
		if err := s.DB.Model(&models.Category{}).Where("id = ?", categoryID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrUnknownCategory
		}
	}

	if len(updates) > 0 {
		if err := s.DB.Model(product).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetProductByID(id)
}

// 4. DeleteProduct 无条件删除商品。历史订单明细保留商品ID与下单时的价格
// 快照，之后按现存商品行渲染，商品已删除时名称留空。
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.GetProductByID(id)
	if err != nil {
		return err
	}
	return s.DB.Delete(product).Error
}

// 5. SearchProducts 按空白切分查询串，每个词都必须命中名称或描述
// （词内 OR、词间 AND 的子串匹配）；空查询返回范围内的全部商品。
func (s *ProductService) SearchProducts(query, categorySlug string) ([]models.AdminProductRow, error) {
	q := s.DB.Model(&models.Product{}).
		Select("products.id, products.name, products.description, products.price, products.image, " +
			"categories.slug AS category_slug, categories.name AS category_name").
		Joins("JOIN categories ON categories.id = products.category_id")

	if categorySlug != "" {
		q = q.Where("categories.slug = ?", categorySlug)
	}
	for _, word := range strings.Fields(query) {
		like := "%" + word + "%"
		q = q.Where("(products.name LIKE ? OR products.description LIKE ?)", like, like)
	}

	var rows []models.AdminProductRow
	if err := q.Order("categories.name ASC, products.id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// 6. ListGroupedByCategory 管理后台商品列表：按分类名称排序，
// 组内新商品在前
func (s *ProductService) ListGroupedByCategory() ([]models.AdminProductRow, error) {
	return s.SearchProducts("", "")
}

package services

import (
	"fmt"

	"gorm.io/gorm"

	"shop-http-service/config"
	"shop-http-service/models"
)

// ShuffleModulus 取一个大于任何现实商品ID的素数，保证
// (id * seed) % ShuffleModulus 在固定 seed 下给出稳定的全序
const ShuffleModulus = 1000003

// FallbackSeed 客户端没有携带种子时使用的固定排列
const FallbackSeed = 123457

const (
	catalogDefaultLimit = 10
	catalogMaxLimit     = 50
)

// CatalogQuery 公开目录的查询参数
type CatalogQuery struct {
	Page     int
	Limit    int
	Category string
	Sort     string
	Seed     int64
}

// InterfaceCatalogService 定义公开商品目录服务接口
type InterfaceCatalogService interface {
	ListProducts(q CatalogQuery) (*models.PageResult, error)
}

// CatalogService 提供面向客户的商品目录。评分不落库，由订单明细
// 实时聚合，统计包含该商品的去重订单数。
type CatalogService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewCatalogService 创建一个新的目录服务
func NewCatalogService(db *gorm.DB, cfg *config.Config) InterfaceCatalogService {
	return &CatalogService{
		DB:     db,
		Config: cfg,
	}
}

// ratingSelect 把评分作为子查询列拼进结果集
const ratingSelect = "(SELECT COUNT(DISTINCT oi.order_id) FROM order_items oi WHERE oi.product_id = products.id) AS rating"

// 1. ListProducts 分页返回商品目录。
// 未指定 sort 时按访问种子做确定性洗牌，同一种子下翻页不重不漏；
// 未指定分类时默认分类的商品整体排在最前。
func (s *CatalogService) ListProducts(q CatalogQuery) (*models.PageResult, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit == 0 {
		limit = catalogDefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > catalogMaxLimit {
		limit = catalogMaxLimit
	}
	seed := q.Seed
	if seed <= 0 {
		seed = FallbackSeed
	}

	base := s.DB.Model(&models.Product{}).
		Joins("JOIN categories ON categories.id = products.category_id")
	if q.Category != "" {
		base = base.Where("categories.slug = ?", q.Category)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var orderExpr string
	switch q.Sort {
	case "":
		orderExpr = fmt.Sprintf("((products.id * %d) %% %d) ASC", seed, ShuffleModulus)
	case "price_desc":
		orderExpr = "products.price DESC"
	case "rating":
		orderExpr = "rating DESC"
	case "name":
		orderExpr = "products.name ASC"
	default:
		// price_asc 以及任何其他显式排序值都按价格升序处理
		orderExpr = "products.price ASC"
	}
	if q.Category == "" {
		orderExpr = "categories.is_default DESC, " + orderExpr
	}

	var items []models.CatalogItem
	err := base.Session(&gorm.Session{}).
		Select("products.id, products.name, products.description, products.price, products.image, " +
			"categories.slug AS category, " + ratingSelect).
		Order(orderExpr).
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}

	result := models.NewPageResult(items, total, page, limit, len(items))
	return &result, nil
}

package services

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"gorm.io/gorm"

	"shop-http-service/config"
	"shop-http-service/models"
)

// slug 只允许小写字母、数字和连字符
var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

const publicCategoriesCacheKey = "categories:public"

// InterfaceCategoryService 定义分类服务接口
type InterfaceCategoryService interface {
	GetAllCategories() ([]models.Category, error)
	GetPublicCategories() ([]models.CategoryResponse, error)
	GetCategoryByID(id uint) (*models.Category, error)
	CreateCategory(slug, name string) (*models.Category, error)
	UpdateCategory(id uint, slug, name *string) (*models.Category, error)
	SetDefaultCategory(id uint) error
	DeleteCategory(id uint) error
}

// CategoryService 提供分类相关的服务
type CategoryService struct {
	DB     *gorm.DB
	Config *config.Config
	Cache  InterfaceRedisService
}

// NewCategoryService 创建一个新的分类服务。cache 允许为 nil。
func NewCategoryService(db *gorm.DB, cfg *config.Config, cache InterfaceRedisService) InterfaceCategoryService {
	return &CategoryService{
		DB:     db,
		Config: cfg,
		Cache:  cache,
	}
}

// NormalizeSlug 规范化并校验 slug
func NormalizeSlug(slug string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(slug))
	if !slugPattern.MatchString(s) {
		return "", ErrInvalidSlug
	}
	return s, nil
}

// 1. GetAllCategories 获取所有分类列表（管理后台，按名称排序）
func (s *CategoryService) GetAllCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := s.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// 2. GetPublicCategories 获取公开分类列表，默认分类排在最前。
// 结果在 Redis 中缓存一分钟，分类发生变更时失效。
func (s *CategoryService) GetPublicCategories() ([]models.CategoryResponse, error) {
	if s.Cache != nil {
		var cached []models.CategoryResponse
		if err := s.Cache.Get(publicCategoriesCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	var categories []models.Category
	if err := s.DB.Order("is_default DESC, name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}

	result := make([]models.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		result = append(result, c.ToResponse())
	}

	if s.Cache != nil {
		_ = s.Cache.Set(publicCategoriesCacheKey, result, time.Minute)
	}
	return result, nil
}

// 3. GetCategoryByID 根据ID获取分类
func (s *CategoryService) GetCategoryByID(id uint) (*models.Category, error) {
	var category models.Category
	if err := s.DB.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// 4. CreateCategory 创建新分类。第一个分类自动成为默认分类，
// 保证"只要存在分类就恰好有一个默认分类"。
func (s *CategoryService) CreateCategory(slug, name string) (*models.Category, error) {
	normalized, err := NormalizeSlug(slug)
	if err != nil {
		return nil, err
	}

	category := models.Category{Slug: normalized, Name: strings.TrimSpace(name)}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("slug = ?", normalized).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrSlugTaken
		}

		if err := tx.Create(&category).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlugTaken
			}
			return err
		}

		var defaults int64
		if err := tx.Model(&models.Category{}).Where("is_default IS NOT NULL").Count(&defaults).Error; err != nil {
			return err
		}
		if defaults == 0 {
			if err := tx.Model(&models.Category{}).Where("id = ?", category.ID).
				Update("is_default", true).Error; err != nil {
				return err
			}
			category.DefaultFlag = boolPtr(true)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache()
	return &category, nil
}

// 5. UpdateCategory 更新分类，slug 和 name 均为可选字段
func (s *CategoryService) UpdateCategory(id uint, slug, name *string) (*models.Category, error) {
	category, err := s.GetCategoryByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if slug != nil {
		normalized, err := NormalizeSlug(*slug)
		if err != nil {
			return nil, err
		}
		if normalized != category.Slug {
			var count int64
			if err := s.DB.Model(&models.Category{}).
				Where("slug = ? AND id != ?", normalized, id).Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrSlugTaken
			}
		}
		updates["slug"] = normalized
	}
	if name != nil {
		updates["name"] = strings.TrimSpace(*name)
	}

	if len(updates) > 0 {
		if err := s.DB.Model(category).Updates(updates).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, ErrSlugTaken
			}
			return nil, err
		}
	}

	s.invalidateCache()
	return s.GetCategoryByID(id)
}

// 6. SetDefaultCategory 原子地把指定分类设为唯一默认分类：
// 先清空所有默认标记再设置目标，整体在一个事务内完成；
// 失败回滚后之前的默认分类保持不变。并发竞争由唯一索引裁决，
// 输掉的一方得到可重试的 ErrDefaultConflict。
func (s *CategoryService) SetDefaultCategory(id uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		if err := tx.Model(&models.Category{}).Where("is_default IS NOT NULL").
			Update("is_default", nil).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Category{}).Where("id = ?", id).
			Update("is_default", true).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDefaultConflict
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCache()
	return nil
}

// 7. DeleteCategory 删除分类。分类下还有商品时拒绝删除；
// 删除的是默认分类时，在同一事务内把幸存分类中 id 最小的提升为默认。
func (s *CategoryService) DeleteCategory(id uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCategoryNotFound
			}
			return err
		}

		var productCount int64
		if err := tx.Model(&models.Product{}).Where("category_id = ?", id).Count(&productCount).Error; err != nil {
			return err
		}
		if productCount > 0 {
			return ErrCategoryInUse
		}

		wasDefault := category.IsDefault()
		if err := tx.Delete(&category).Error; err != nil {
			return err
		}

		if wasDefault {
			var lowest models.Category
			err := tx.Order("id ASC").First(&lowest).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // 最后一个分类被删除，允许没有默认分类
			}
			if err != nil {
				return err
			}
			if err := tx.Model(&models.Category{}).Where("id = ?", lowest.ID).
				Update("is_default", true).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateCache()
	return nil
}

// invalidateCache 分类变更后使公开分类缓存失效
func (s *CategoryService) invalidateCache() {
	if s.Cache != nil {
		_ = s.Cache.Delete(publicCategoriesCacheKey)
	}
}

func boolPtr(b bool) *bool {
	return &b
}

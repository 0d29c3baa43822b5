package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"shop-http-service/models"
)

// SchemaMigration 迁移台账表的一行，记录已执行过的迁移名称
type SchemaMigration struct {
	Name      string    `gorm:"primaryKey;type:varchar(100)"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName 指定台账表名
func (SchemaMigration) TableName() string {
	return "schema_migrations"
}

// Migration 一个幂等的前向迁移步骤
type Migration struct {
	Name string
	Run  func(tx *gorm.DB) error
}

// Migrations 按执行顺序返回全部迁移步骤。每个步骤必须可以安全重复执行；
// 台账中已记录的步骤会被跳过。
func Migrations() []Migration {
	return []Migration{
		{Name: "create_core_tables", Run: createCoreTables},
		{Name: "categories_single_default", Run: backfillDefaultCategory},
		{Name: "normalize_remote_images", Run: normalizeRemoteImages},
	}
}

// RunMigrations 执行所有尚未记录在台账中的迁移
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("创建迁移台账表失败: %w", err)
	}

	for _, m := range Migrations() {
		var count int64
		if err := db.Model(&SchemaMigration{}).Where("name = ?", m.Name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		if err := db.Transaction(func(tx *gorm.DB) error {
			if err := m.Run(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{Name: m.Name, AppliedAt: time.Now()}).Error
		}); err != nil {
			return fmt.Errorf("迁移 %s 失败: %w", m.Name, err)
		}
	}

	return nil
}

// createCoreTables 建表。唯一索引（分类 slug、单默认分类、管理员邮箱）
// 由模型标签声明，随 AutoMigrate 一起创建。
func createCoreTables(tx *gorm.DB) error {
	return tx.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.Admin{},
	)
}

// backfillDefaultCategory 保证已有分类时恰好有一个默认分类：
// 没有默认分类则把 id 最小的分类设为默认。
func backfillDefaultCategory(tx *gorm.DB) error {
	var count int64
	if err := tx.Model(&models.Category{}).Where("is_default IS NOT NULL").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var lowest models.Category
	err := tx.Order("id ASC").First(&lowest).Error
	if err == gorm.ErrRecordNotFound {
		return nil // 没有分类，允许没有默认分类
	}
	if err != nil {
		return err
	}

	return tx.Model(&models.Category{}).Where("id = ?", lowest.ID).
		Update("is_default", true).Error
}

// normalizeRemoteImages 把历史遗留的远程图片地址改写为分类占位图
func normalizeRemoteImages(tx *gorm.DB) error {
	var products []models.Product
	if err := tx.Where("image LIKE ?", "http%").Find(&products).Error; err != nil {
		return err
	}

	for _, p := range products {
		var cat models.Category
		image := "/products/placeholder.svg"
		if err := tx.First(&cat, p.CategoryID).Error; err == nil {
			image = "/products/" + cat.Slug + ".svg"
		}
		if err := tx.Model(&models.Product{}).Where("id = ?", p.ID).
			Update("image", image).Error; err != nil {
			return err
		}
	}
	return nil
}

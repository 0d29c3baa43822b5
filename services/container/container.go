package container

import (
	"context"
	"log"
	"sync"
	"time"

	"shop-http-service/config"
	"shop-http-service/services"

	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	// 基础服务
	jwtService services.InterfaceJWTService

	// 数据存储服务
	redisService services.InterfaceRedisService

	// 业务服务
	adminService    services.InterfaceAdminService
	categoryService services.InterfaceCategoryService
	productService  services.InterfaceProductService
	catalogService  services.InterfaceCatalogService
	orderService    services.InterfaceOrderService
	imageService    services.InterfaceImageService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config)

	// 初始化Redis服务，未配置时降级为不缓存
	if redisService := services.NewRedisService(c.config); redisService != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisService.Client.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
		} else {
			c.redisService = redisService
		}
	}

	// 初始化业务服务
	c.adminService = services.NewAdminService(c.db, c.config)
	c.categoryService = services.NewCategoryService(c.db, c.config, c.redisService)
	c.productService = services.NewProductService(c.db, c.config)
	c.catalogService = services.NewCatalogService(c.db, c.config)
	c.orderService = services.NewOrderService(c.db, c.config)
	c.imageService = services.NewImageService(c.db, c.config)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "admin":
		return c.adminService
	case "category":
		return c.categoryService
	case "product":
		return c.productService
	case "catalog":
		return c.catalogService
	case "order":
		return c.orderService
	case "image":
		return c.imageService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

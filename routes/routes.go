package routes

import (
	"shop-http-service/config"
	"shop-http-service/controllers"
	"shop-http-service/middleware"
	"shop-http-service/services/container"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件，购物车cookie需要携带凭证
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)

	// 图片文件路由挂在根路径，和商品记录里保存的图片URL一致
	r.GET("/products/:filename", controllers.HandleCatalogFunc(container, "serveImage"))
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查
	healthController := controllers.NewHealthCheckController(container)
	api.GET("/ping", healthController.Ping)

	// 认证路由，登录接口限流防止暴力破解
	api.POST("/auth/login", middleware.IPRateLimiter(1, 5), controllers.HandleJWTFunc(container, "login"))

	// 公开目录路由
	api.GET("/products", controllers.HandleCatalogFunc(container, "getProducts"))
	api.GET("/categories", controllers.HandleCategoryFunc(container, "getPublicCategories"))

	// 客户订单路由，凭订单令牌cookie访问
	api.POST("/orders", middleware.IPRateLimiter(2, 10), controllers.HandleOrderFunc(container, "checkout"))
	api.GET("/orders/my", controllers.HandleOrderFunc(container, "getMyOrders"))
	api.DELETE("/orders/:id", controllers.HandleOrderFunc(container, "cancelMyOrder"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateAdmin())

	// 当前管理员
	auth.GET("/auth/me", controllers.HandleJWTFunc(container, "getCurrentAdmin"))

	// 分类管理路由
	auth.Group("/admin/categories").GET("", controllers.HandleCategoryFunc(container, "getCategories"))
	auth.Group("/admin/categories").POST("", controllers.HandleCategoryFunc(container, "createCategory"))
	auth.Group("/admin/categories").PUT("/:id", controllers.HandleCategoryFunc(container, "updateCategory"))
	auth.Group("/admin/categories").PATCH("/:id/default", controllers.HandleCategoryFunc(container, "setDefault"))
	auth.Group("/admin/categories").DELETE("/:id", controllers.HandleCategoryFunc(container, "deleteCategory"))

	// 商品管理路由
	auth.Group("/admin/products").GET("", controllers.HandleProductFunc(container, "getProducts"))
	auth.Group("/admin/products").POST("", controllers.HandleProductFunc(container, "createProduct"))
	auth.Group("/admin/products").PUT("/:id", controllers.HandleProductFunc(container, "updateProduct"))
	auth.Group("/admin/products").DELETE("/:id", controllers.HandleProductFunc(container, "deleteProduct"))
	auth.Group("/admin/products").POST("/:id/image", controllers.HandleProductFunc(container, "uploadImage"))

	// 订单管理路由
	auth.Group("/admin/orders").GET("", controllers.HandleOrderFunc(container, "getOrders"))
	auth.Group("/admin/orders").PATCH("/:id/status", controllers.HandleOrderFunc(container, "updateStatus"))
	auth.Group("/admin/orders").PATCH("/:id/items/:itemId", controllers.HandleOrderFunc(container, "setItemChecked"))
}

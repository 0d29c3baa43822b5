// @title           Shop HTTP Service API
// @version         1.0
// @description     Order and catalog backend for a small retail shop

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer: ` prefix
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"shop-http-service/config"
	"shop-http-service/internal/database"
	"shop-http-service/routes"
	"shop-http-service/services"
)

func main() {
	// 初始化日志配置
	if err := config.SetupLogger(); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}

	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		config.Warning("无法加载.env文件: %v", err)
		// 即使加载失败也继续执行，可能环境变量已经通过其他方式设置
	} else {
		config.Info("成功加载.env文件")
	}

	// 获取配置
	cfg := config.GetConfig()

	// 连接数据库
	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		config.Error("无法连接数据库: %v", err)
		os.Exit(1)
	}
	defer pool.Close()
	db := pool.GetDB()

	// 执行数据库迁移，已应用过的步骤自动跳过
	if err := database.RunMigrations(db); err != nil {
		config.Error("数据库迁移失败: %v", err)
		os.Exit(1)
	}

	// 确保系统中有管理员账号
	adminService := services.NewAdminService(db, cfg)
	if err := adminService.EnsureDefaultAdmin(); err != nil {
		config.Error("创建默认管理员失败: %v", err)
		os.Exit(1)
	}

	// 初始化路由
	r := routes.SetupRouter(db, cfg)

	// 启动服务器
	config.Info("服务器启动在: http://localhost:%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		config.Error("启动服务器失败: %v", err)
		os.Exit(1)
	}
}

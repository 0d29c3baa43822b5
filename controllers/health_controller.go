package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-http-service/services/container"
)

// HealthCheckController 健康检查控制器
type HealthCheckController struct {
	Container *container.ServiceContainer
}

// NewHealthCheckController 创建健康检查控制器实例
func NewHealthCheckController(container *container.ServiceContainer) *HealthCheckController {
	return &HealthCheckController{Container: container}
}

// Ping 健康检查端点，同时探测数据库连接
func (h *HealthCheckController) Ping(c *gin.Context) {
	status := "healthy"
	if sqlDB, err := h.Container.GetDB().DB(); err != nil || sqlDB.Ping() != nil {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
		"status":  status,
	})
}

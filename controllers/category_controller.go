package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-http-service/internal/error/response"
	"shop-http-service/services"
	"shop-http-service/services/container"
)

// InterfaceCategoryController 定义分类控制器接口
type InterfaceCategoryController interface {
	GetPublicCategories()
	GetCategories()
	CreateCategory()
	UpdateCategory()
	SetDefault()
	DeleteCategory()
}

// CategoryController 分类控制器
type CategoryController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewCategoryController 创建一个新的分类控制器
func NewCategoryController(ctx *gin.Context, container *container.ServiceContainer) *CategoryController {
	return &CategoryController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Slug string `json:"slug" binding:"required" example:"berries"`
	Name string `json:"name" binding:"required" example:"Ягоды"`
}

// UpdateCategoryRequest 更新分类请求，字段均为可选
type UpdateCategoryRequest struct {
	Slug      *string `json:"slug" example:"berries"`
	Name      *string `json:"name" example:"Ягоды"`
	IsDefault *bool   `json:"is_default" example:"true"`
}

// SetDefaultRequest 设置默认分类请求
type SetDefaultRequest struct {
	IsDefault bool `json:"is_default" example:"true"`
}

// HandleCategoryFunc 返回一个处理分类请求的Gin处理函数
func HandleCategoryFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewCategoryController(ctx, container)

		switch method {
		case "getPublicCategories":
			controller.GetPublicCategories()
		case "getCategories":
			controller.GetCategories()
		case "createCategory":
			controller.CreateCategory()
		case "updateCategory":
			controller.UpdateCategory()
		case "setDefault":
			controller.SetDefault()
		case "deleteCategory":
			controller.DeleteCategory()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

func (c *CategoryController) service() services.InterfaceCategoryService {
	return c.Container.GetService("category").(services.InterfaceCategoryService)
}

// 1. GetPublicCategories 获取公开分类列表
// @Summary      公开分类列表
// @Description  返回全部分类，默认分类排在最前
// @Tags         Catalog
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /categories [get]
func (c *CategoryController) GetPublicCategories() {
	categories, err := c.service().GetPublicCategories()
	if err != nil {
		failWithError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, categories)
}

// 2. GetCategories 获取分类列表（管理后台）
// @Summary      分类列表
// @Tags         AdminCategory
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /admin/categories [get]
// @Security     BearerAuth
func (c *CategoryController) GetCategories() {
	categories, err := c.service().GetAllCategories()
	if err != nil {
		failWithError(c.Ctx, err)
		return
	}

	result := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		result = append(result, gin.H{
			"id":         category.ID,
			"slug":       category.Slug,
			"name":       category.Name,
			"is_default": category.IsDefault(),
		})
	}
	response.Success(c.Ctx, result)
}

// 3. CreateCategory 创建分类
// @Summary      创建分类
// @Tags         AdminCategory
// @Accept       json
// @Produce      json
// @Param        request body CreateCategoryRequest true "分类参数"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/categories [post]
// @Security     BearerAuth
func (c *CategoryController) CreateCategory() {
	var req CreateCategoryRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数")
		return
	}

	category, err := c.service().CreateCategory(req.Slug, req.Name)
	if err != nil {
		failWithError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, category.ToResponse())
}

// 4. UpdateCategory 更新分类
// @Summary      更新分类
// @Tags         AdminCategory
// @Accept       json
// @Produce      json
// @Param        id path int true "分类ID"
// @Param        request body UpdateCategoryRequest true "分类参数"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/categories/{id} [put]
// @Security     BearerAuth
func (c *CategoryController) UpdateCategory() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数")
		return
	}

	category, err := c.service().UpdateCategory(id, req.Slug, req.Name)
	if err != nil {
		failWithError(c.Ctx, err)
		return
	}

	// is_default 只能置为 true，通过指定新的默认分类来替换旧的
	if req.IsDefault != nil && *req.IsDefault {
		if err := c.service().SetDefaultCategory(id); err != nil {
			failWithError(c.Ctx, err)
			return
		}
		category, err = c.service().GetCategoryByID(id)
		if err != nil {
			failWithError(c.Ctx, err)
			return
		}
	}
	response.Success(c.Ctx, category.ToResponse())
}

// 5. SetDefault 设置默认分类。请求体中 is_default 必须为 true，
// 默认分类只能通过指定新的默认分类来替换，不能直接取消。
// @Summary      设置默认分类
// @Tags         AdminCategory
// @Accept       json
// @Produce      json
// @Param        id path int true "分类ID"
// @Param        request body SetDefaultRequest true "默认标记"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/categories/{id}/default [patch]
// @Security     BearerAuth
func (c *CategoryController) SetDefault() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	var req SetDefaultRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil || !req.IsDefault {
		response.ParamError(c.Ctx, "is_default 必须为 true")
		return
	}

	if err := c.service().SetDefaultCategory(id); err != nil {
		failWithError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// 6. DeleteCategory 删除分类
// @Summary      删除分类
// @Description  分类下还有商品时拒绝删除；删除默认分类时自动提升ID最小的分类
// @Tags         AdminCategory
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/categories/{id} [delete]
// @Security     BearerAuth
func (c *CategoryController) DeleteCategory() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	if err := c.service().DeleteCategory(id); err != nil {
		failWithError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

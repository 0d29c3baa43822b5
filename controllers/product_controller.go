package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-http-service/internal/error/code"
	"shop-http-service/internal/error/response"
	"shop-http-service/services"
	"shop-http-service/services/container"
)

// InterfaceProductController 定义商品控制器接口
type InterfaceProductController interface {
	GetProducts()
	CreateProduct()
	UpdateProduct()
	DeleteProduct()
	UploadImage()
}

// ProductController 商品控制器（管理后台）
type ProductController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewProductController 创建一个新的商品控制器
func NewProductController(ctx *gin.Context, container *container.ServiceContainer) *ProductController {
	return &ProductController{
		Ctx:       ctx,
		Container: container,
	}
}

// CreateProductRequest 创建商品请求
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required" example:"Клубника"`
	Description string  `json:"description" binding:"required" example:"Свежая клубника"`
	Price       float64 `json:"price" binding:"required" example:"250"`
	CategoryID  uint    `json:"category_id" binding:"required" example:"1"`
}

// UpdateProductRequest 更新商品请求，字段均为可选
type UpdateProductRequest struct {
	Name        *string  `json:"name" example:"Клубника"`
	Description *string  `json:"description" example:"Свежая клубника"`
	Price       *float64 `json:"price" example:"250"`
	CategoryID  *uint    `json:"category_id" example:"1"`
}

// HandleProductFunc 返回一个处理商品请求的Gin处理函数
func HandleProductFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewProductController(ctx, container)

		switch method {
		case "getProducts":
			controller.GetProducts()
		case "createProduct":
			controller.CreateProduct()
		case "updateProduct":
			controller.UpdateProduct()
		case "deleteProduct":
			controller.DeleteProduct()
		case "uploadImage":
			controller.UploadImage()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

func (c *ProductController) service() services.InterfaceProductService {
	return c.Container.GetService("product").(services.InterfaceProductService)
}

// 1. GetProducts 获取商品列表（管理后台）
// @Summary      商品列表
// @Description  按分类名称分组排序；支持搜索关键词和分类过滤
// @Tags         AdminProduct
// @Produce      json
// @Param        q query string false "搜索关键词，按空白切分后逐词匹配名称或描述"
// @Param        category query string false "分类 slug"
// @Success      200  {object}  response.Response
// @Router       /admin/products [get]
// @Security     BearerAuth
func (c *ProductController) GetProducts() {
	query := c.Ctx.Query("q")
	category := c.Ctx.Query("category")

	rows, err := c.service().SearchProducts(query, category)
	if err != nil {
		failWithError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, rows)
}

// 2. CreateProduct 创建商品
// @Summary      创建商品
// @Tags         AdminProduct
// @Accept       json
// @Produce      json
// @Param        request body CreateProductRequest true "商品参数"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /admin/products [post]
// @Security     BearerAuth
func (c *ProductController) CreateProduct() {
	var req CreateProductRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数")
		return
	}

	row, err := c.service().CreateProduct(req.Name, req.Description, req.Price, req.CategoryID)
	if err != nil {
		failWithError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, row)
}

// 3. UpdateProduct 更新商品
// @Summary      更新商品
// @Tags         AdminProduct
// @Accept       json
// @Produce      json
// @Param        id path int true "商品ID"
// @Param        request body UpdateProductRequest true "商品参数"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/products/{id} [put]
// @Security     BearerAuth
func (c *ProductController) UpdateProduct() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}

	product, err := c.service().UpdateProduct(id, updates)
	if err != nil {
		failWithError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, product)
}

// 4. DeleteProduct 删除商品
// @Summary      删除商品
// @Description  历史订单明细保留商品ID与成交价格快照
// @Tags         AdminProduct
// @Produce      json
// @Param        id path int true "商品ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/products/{id} [delete]
// @Security     BearerAuth
func (c *ProductController) DeleteProduct() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	if err := c.service().DeleteProduct(id); err != nil {
		failWithError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// 5. UploadImage 上传商品图片
// @Summary      上传商品图片
// @Description  multipart 表单上传，字段名 image；返回新的图片URL
// @Tags         AdminProduct
// @Accept       multipart/form-data
// @Produce      json
// @Param        id path int true "商品ID"
// @Param        image formData file true "图片文件"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /admin/products/{id}/image [post]
// @Security     BearerAuth
func (c *ProductController) UploadImage() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	fileHeader, err := c.Ctx.FormFile("image")
	if err != nil {
		response.Fail(c.Ctx, code.ErrNoFile, nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Fail(c.Ctx, code.ErrNoFile, nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.Fail(c.Ctx, code.ErrImageStorage, nil)
		return
	}

	imageService := c.Container.GetService("image").(services.InterfaceImageService)
	imageURL, err := imageService.UploadProductImage(id, data, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		failWithError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{"image": imageURL})
}

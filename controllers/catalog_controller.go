package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shop-http-service/internal/error/response"
	"shop-http-service/services"
	"shop-http-service/services/container"
	"shop-http-service/utils"
)

// 访问种子cookie，同一访客在cookie有效期内看到同一个商品排列
const (
	visitSeedCookie = "visit_seed"
	visitSeedMaxAge = 30 * 24 * 3600
)

// InterfaceCatalogController 定义公开目录控制器接口
type InterfaceCatalogController interface {
	GetProducts()
	ServeImage()
}

// CatalogController 公开商品目录控制器
type CatalogController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewCatalogController 创建一个新的目录控制器
func NewCatalogController(ctx *gin.Context, container *container.ServiceContainer) *CatalogController {
	return &CatalogController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleCatalogFunc 返回一个处理公开目录请求的Gin处理函数
func HandleCatalogFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewCatalogController(ctx, container)

		switch method {
		case "getProducts":
			controller.GetProducts()
		case "serveImage":
			controller.ServeImage()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

// visitSeed 读取访问种子cookie，不存在或不合法时发放一个新种子
func (c *CatalogController) visitSeed() int64 {
	if raw, err := c.Ctx.Cookie(visitSeedCookie); err == nil {
		if seed, err := strconv.ParseInt(raw, 10, 64); err == nil && seed > 0 {
			return seed
		}
	}

	seed := utils.NewVisitorSeed()
	c.Ctx.SetCookie(visitSeedCookie, strconv.FormatInt(seed, 10), visitSeedMaxAge, "/", "", false, false)
	return seed
}

// 1. GetProducts 公开商品目录
// @Summary      商品目录
// @Description  分页返回商品。未指定 sort 时按访问种子做确定性洗牌，
// @Description  同一种子下翻页不重不漏；未指定分类时默认分类的商品排在最前
// @Tags         Catalog
// @Produce      json
// @Param        page query int false "页码，默认1"
// @Param        limit query int false "每页条数，1-50，默认10"
// @Param        category query string false "分类 slug"
// @Param        sort query string false "排序: price_asc, price_desc, rating, name"
// @Success      200  {object}  response.Response
// @Router       /products [get]
func (c *CatalogController) GetProducts() {
	page, _ := strconv.Atoi(c.Ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.Ctx.DefaultQuery("limit", "10"))

	catalogService := c.Container.GetService("catalog").(services.InterfaceCatalogService)
	result, err := catalogService.ListProducts(services.CatalogQuery{
		Page:     page,
		Limit:    limit,
		Category: c.Ctx.Query("category"),
		Sort:     c.Ctx.Query("sort"),
		Seed:     c.visitSeed(),
	})
	if err != nil {
		failWithError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, result)
}

// 2. ServeImage 按文件名返回商品图片文件。
// 路由挂在根路径 /products/{filename}，和数据库中保存的图片URL一致。
// @Summary      商品图片
// @Tags         Catalog
// @Produce      octet-stream
// @Param        filename path string true "图片文件名"
// @Success      200
// @Failure      404  {object}  ErrorResponse
// @Router       /products/{filename} [get]
func (c *CatalogController) ServeImage() {
	imageService := c.Container.GetService("image").(services.InterfaceImageService)
	path, err := imageService.ResolveFile(c.Ctx.Param("filename"))
	if err != nil {
		failWithError(c.Ctx, err)
		return
	}
	c.Ctx.Header("Cache-Control", "no-store")
	c.Ctx.File(path)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shop-http-service/internal/error/response"
	"shop-http-service/services"
	"shop-http-service/services/container"
	"shop-http-service/utils"
)

// 订单令牌cookie，匿名客户凭它访问自己的订单
const (
	orderTokenCookie = "order_token"
	orderTokenMaxAge = 30 * 24 * 3600
)

// InterfaceOrderController 定义订单控制器接口
type InterfaceOrderController interface {
	Checkout()
	GetMyOrders()
	CancelMyOrder()
	GetOrders()
	UpdateStatus()
	SetItemChecked()
}

// OrderController 订单控制器
type OrderController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewOrderController 创建一个新的订单控制器
func NewOrderController(ctx *gin.Context, container *container.ServiceContainer) *OrderController {
	return &OrderController{
		Ctx:       ctx,
		Container: container,
	}
}

// UpdateStatusRequest 更新订单状态请求
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" example:"processing"`
}

// SetCheckedRequest 勾选配货清单行请求
type SetCheckedRequest struct {
	Checked bool `json:"checked" example:"true"`
}

// HandleOrderFunc 返回一个处理订单请求的Gin处理函数
func HandleOrderFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewOrderController(ctx, container)

		switch method {
		case "checkout":
			controller.Checkout()
		case "getMyOrders":
			controller.GetMyOrders()
		case "cancelMyOrder":
			controller.CancelMyOrder()
		case "getOrders":
			controller.GetOrders()
		case "updateStatus":
			controller.UpdateStatus()
		case "setItemChecked":
			controller.SetItemChecked()
		default:
			ctx.JSON(http.StatusBadRequest, gin.H{
				"code":    400,
				"message": "无效的方法",
				"data":    nil,
			})
		}
	}
}

func (c *OrderController) service() services.InterfaceOrderService {
	return c.Container.GetService("order").(services.InterfaceOrderService)
}

// clientToken 读取订单令牌cookie；issue 为 true 且cookie不存在时发放新令牌
func (c *OrderController) clientToken(issue bool) string {
	if token, err := c.Ctx.Cookie(orderTokenCookie); err == nil && token != "" {
		return token
	}
	if !issue {
		return ""
	}

	token := utils.NewClientToken()
	c.Ctx.SetCookie(orderTokenCookie, token, orderTokenMaxAge, "/", "", false, true)
	return token
}

// 1. Checkout 购物车结算
// @Summary      下单
// @Description  按当前商品表逐行重新取价，不存在的商品静默丢弃，
// @Description  数量规范为 max(1, floor(qty))；过滤后为空时整单拒绝
// @Tags         Order
// @Accept       json
// @Produce      json
// @Param        request body services.CheckoutRequest true "购物车与联系信息"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Router       /orders [post]
func (c *OrderController) Checkout() {
	var req services.CheckoutRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数")
		return
	}

	token := c.clientToken(true)
	order, err := c.service().CreateOrder(req, token)
	if err != nil {
		failWithError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, gin.H{
		"id":          order.ID,
		"total_price": order.TotalPrice,
		"status":      order.Status,
		"created_at":  order.CreatedAt,
	})
}

// 2. GetMyOrders 当前客户的订单列表
// @Summary      我的订单
// @Description  按订单令牌cookie返回未过期的订单，按ID升序
// @Tags         Order
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /orders/my [get]
func (c *OrderController) GetMyOrders() {
	token := c.clientToken(false)
	if token == "" {
		response.Success(c.Ctx, []interface{}{})
		return
	}

	orders, err := c.service().ListClientOrders(token)
	if err != nil {
		failWithError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, orders)
}

// 3. CancelMyOrder 客户取消自己的订单
// @Summary      取消订单
// @Description  只能取消属于自己且仍为 pending 状态的订单
// @Tags         Order
// @Produce      json
// @Param        id path int true "订单ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /orders/{id} [delete]
func (c *OrderController) CancelMyOrder() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	token := c.clientToken(false)
	if err := c.service().DeleteClientOrder(id, token); err != nil {
		failWithError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

// 4. GetOrders 订单列表（管理后台）
// @Summary      订单列表
// @Description  新订单在前，明细作为配货清单行返回
// @Tags         AdminOrder
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /admin/orders [get]
// @Security     BearerAuth
func (c *OrderController) GetOrders() {
	orders, err := c.service().ListAllOrders()
	if err != nil {
		failWithError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, orders)
}

// 5. UpdateStatus 更新订单状态
// @Summary      更新订单状态
// @Tags         AdminOrder
// @Accept       json
// @Produce      json
// @Param        id path int true "订单ID"
// @Param        request body UpdateStatusRequest true "目标状态"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/orders/{id}/status [patch]
// @Security     BearerAuth
func (c *OrderController) UpdateStatus() {
	id, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数")
		return
	}

	order, err := c.service().UpdateOrderStatus(id, req.Status)
	if err != nil {
		failWithError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, gin.H{
		"id":     order.ID,
		"status": req.Status,
	})
}

// 6. SetItemChecked 勾选或取消勾选配货清单行
// @Summary      勾选配货清单行
// @Tags         AdminOrder
// @Accept       json
// @Produce      json
// @Param        id path int true "订单ID"
// @Param        itemId path int true "明细ID"
// @Param        request body SetCheckedRequest true "勾选标记"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  ErrorResponse
// @Router       /admin/orders/{id}/items/{itemId} [patch]
// @Security     BearerAuth
func (c *OrderController) SetItemChecked() {
	orderID, ok := parseIDParam(c.Ctx, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c.Ctx, "itemId")
	if !ok {
		return
	}

	var req SetCheckedRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "无效的请求参数")
		return
	}

	if err := c.service().SetItemChecked(orderID, itemID, req.Checked); err != nil {
		failWithError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, nil)
}

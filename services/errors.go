package services

import "errors"

// 服务层哨兵错误。控制器通过 errors.Is 把它们映射到错误码与 HTTP 状态，
// 服务内部不关心 HTTP。
var (
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = errors.New("category not found")
	// ErrInvalidSlug slug 不满足 [a-z0-9-]+
	ErrInvalidSlug = errors.New("invalid slug")
	// ErrSlugTaken slug 已被其他分类占用
	ErrSlugTaken = errors.New("slug already taken")
	// ErrCategoryInUse 分类下仍有商品引用
	ErrCategoryInUse = errors.New("category has products")
	// ErrDefaultConflict 并发设置默认分类时输掉了约束竞争，可重试
	ErrDefaultConflict = errors.New("default category conflict")

	// ErrProductNotFound 商品不存在
	ErrProductNotFound = errors.New("product not found")
	// ErrUnknownCategory 商品引用的分类不存在
	ErrUnknownCategory = errors.New("unknown category")

	// ErrOrderNotFound 订单不存在或不属于该客户
	ErrOrderNotFound = errors.New("order not found")
	// ErrEmptyOrder 过滤后购物车中没有任何有效商品行
	ErrEmptyOrder = errors.New("no valid items in order")
	// ErrInvalidStatus 请求的订单状态不在枚举集合内
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrOrderNotCancelable 订单已离开 pending 状态，客户不可取消
	ErrOrderNotCancelable = errors.New("order is no longer cancelable")
	// ErrOrderItemNotFound 订单明细不存在
	ErrOrderItemNotFound = errors.New("order item not found")

	// ErrValidation 请求字段缺失或不合法
	ErrValidation = errors.New("validation failed")

	// ErrImageStorage 图片落盘失败
	ErrImageStorage = errors.New("image storage failed")

	// ErrAdminNotFound 管理员不存在或凭证不匹配
	ErrAdminNotFound = errors.New("admin not found")
	// ErrPasswordIncorrect 密码不匹配
	ErrPasswordIncorrect = errors.New("password incorrect")
)

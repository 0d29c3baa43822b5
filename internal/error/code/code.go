package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 分类相关错误码 (101xxx).
const (
	// ErrCategoryNotFound - 404: 分类不存在.
	ErrCategoryNotFound int = iota + 101000
	// ErrInvalidSlug - 400: slug 格式不合法.
	ErrInvalidSlug
	// ErrSlugTaken - 400: slug 已存在.
	ErrSlugTaken
	// ErrCategoryInUse - 400: 分类下存在商品，无法删除.
	ErrCategoryInUse
	// ErrDefaultConflict - 400: 并发设置默认分类冲突，可重试.
	ErrDefaultConflict
)

// 商品相关错误码 (102xxx).
const (
	// ErrProductNotFound - 404: 商品不存在.
	ErrProductNotFound int = iota + 102000
	// ErrUnknownCategory - 400: 商品引用的分类不存在.
	ErrUnknownCategory
)

// 订单相关错误码 (103xxx).
const (
	// ErrOrderNotFound - 404: 订单不存在.
	ErrOrderNotFound int = iota + 103000
	// ErrEmptyOrder - 400: 购物车中没有有效商品.
	ErrEmptyOrder
	// ErrInvalidStatus - 400: 订单状态值不合法.
	ErrInvalidStatus
	// ErrOrderNotCancelable - 403: 订单已进入处理流程，客户不可再取消.
	ErrOrderNotCancelable
	// ErrOrderItemNotFound - 404: 订单明细不存在.
	ErrOrderItemNotFound
)

// 图片存储相关错误码 (104xxx).
const (
	// ErrNoFile - 400: 请求中没有文件.
	ErrNoFile int = iota + 104000
	// ErrImageStorage - 500: 图片写入失败.
	ErrImageStorage
)

// 管理员相关错误码 (105xxx).
const (
	// ErrAdminNotFound - 404: 管理员不存在.
	ErrAdminNotFound int = iota + 105000
	// ErrPasswordIncorrect - 401: 邮箱或密码错误.
	ErrPasswordIncorrect
)

// 数据库相关错误码 (106xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 106000
	// ErrMigrationFailed - 500: 迁移失败.
	ErrMigrationFailed
)

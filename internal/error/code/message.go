package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "成功",
	ErrUnknown:         "未知错误",
	ErrBind:            "请求参数绑定错误",
	ErrValidation:      "请求参数验证错误",
	ErrTokenInvalid:    "无效的认证令牌",
	ErrTooManyRequests: "请求频率过高",

	// 分类相关错误码
	ErrCategoryNotFound: "分类不存在",
	ErrInvalidSlug:      "slug 格式不合法，只允许小写字母、数字和连字符",
	ErrSlugTaken:        "slug 已存在",
	ErrCategoryInUse:    "分类下存在商品，请先删除或转移商品",
	ErrDefaultConflict:  "设置默认分类时发生并发冲突，请重试",

	// 商品相关错误码
	ErrProductNotFound: "商品不存在",
	ErrUnknownCategory: "商品引用的分类不存在",

	// 订单相关错误码
	ErrOrderNotFound:      "订单不存在",
	ErrEmptyOrder:         "购物车中没有有效商品",
	ErrInvalidStatus:      "订单状态值不合法",
	ErrOrderNotCancelable: "订单已进入处理流程，无法取消",
	ErrOrderItemNotFound:  "订单明细不存在",

	// 图片存储相关错误码
	ErrNoFile:       "请求中没有文件",
	ErrImageStorage: "图片写入失败",

	// 管理员相关错误码
	ErrAdminNotFound:     "管理员不存在",
	ErrPasswordIncorrect: "邮箱或密码错误",

	// 数据库相关错误码
	ErrDatabase:        "数据库错误",
	ErrMigrationFailed: "迁移失败",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	// 分类相关错误码
	ErrCategoryNotFound: StatusNotFound,
	ErrInvalidSlug:      StatusBadRequest,
	ErrSlugTaken:        StatusBadRequest,
	ErrCategoryInUse:    StatusBadRequest,
	ErrDefaultConflict:  StatusBadRequest,

	// 商品相关错误码
	ErrProductNotFound: StatusNotFound,
	ErrUnknownCategory: StatusBadRequest,

	// 订单相关错误码
	ErrOrderNotFound:      StatusNotFound,
	ErrEmptyOrder:         StatusBadRequest,
	ErrInvalidStatus:      StatusBadRequest,
	ErrOrderNotCancelable: StatusForbidden,
	ErrOrderItemNotFound:  StatusNotFound,

	// 图片存储相关错误码
	ErrNoFile:       StatusBadRequest,
	ErrImageStorage: StatusInternalServerError,

	// 管理员相关错误码
	ErrAdminNotFound:     StatusNotFound,
	ErrPasswordIncorrect: StatusUnauthorized,

	// 数据库相关错误码
	ErrDatabase:        StatusInternalServerError,
	ErrMigrationFailed: StatusInternalServerError,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}

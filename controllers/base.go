package controllers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"shop-http-service/internal/error/code"
	"shop-http-service/internal/error/response"
	"shop-http-service/services"
)

// serviceErrorCodes 服务层哨兵错误到错误码的映射
var serviceErrorCodes = []struct {
	err  error
	code int
}{
	{services.ErrCategoryNotFound, code.ErrCategoryNotFound},
	{services.ErrInvalidSlug, code.ErrInvalidSlug},
	{services.ErrSlugTaken, code.ErrSlugTaken},
	{services.ErrCategoryInUse, code.ErrCategoryInUse},
	{services.ErrDefaultConflict, code.ErrDefaultConflict},
	{services.ErrProductNotFound, code.ErrProductNotFound},
	{services.ErrUnknownCategory, code.ErrUnknownCategory},
	{services.ErrOrderNotFound, code.ErrOrderNotFound},
	{services.ErrEmptyOrder, code.ErrEmptyOrder},
	{services.ErrInvalidStatus, code.ErrInvalidStatus},
	{services.ErrOrderNotCancelable, code.ErrOrderNotCancelable},
	{services.ErrOrderItemNotFound, code.ErrOrderItemNotFound},
	{services.ErrValidation, code.ErrValidation},
	{services.ErrImageStorage, code.ErrImageStorage},
	{services.ErrAdminNotFound, code.ErrAdminNotFound},
	{services.ErrPasswordIncorrect, code.ErrPasswordIncorrect},
}

// failWithError 把服务层错误翻译成统一响应，未知错误按数据库错误处理
func failWithError(ctx *gin.Context, err error) {
	for _, m := range serviceErrorCodes {
		if errors.Is(err, m.err) {
			response.Fail(ctx, m.code, nil)
			return
		}
	}
	response.Fail(ctx, code.ErrDatabase, nil)
}

// parseIDParam 解析URL路径中的数字ID参数
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		response.ParamError(ctx, "无效的ID")
		return 0, false
	}
	return uint(id), true
}

package controller

import (
	"elearning_backend/internal/util"
	"errors"

	"github.com/gin-gonic/gin"
)

// respondError 把业务错误映射为 HTTP 状态码, 未知错误记录日志后返回 500
func respondError(ctx *gin.Context, err error) {
	var rejected *util.EnrollmentRejectedError
	var invalid *util.ValidationError

	switch {
	case errors.As(err, &rejected):
		util.Rejected(ctx, "Enrollment is not allowed for this course", rejected.Reason)
	case errors.As(err, &invalid):
		util.BadRequest(ctx, invalid.Error())
	case util.IsNotFound(err):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

// pathID 解析路径参数, 失败时已写入 400 响应
func pathID(ctx *gin.Context, name string) (uint, bool) {
	id, err := util.ParseID(ctx.Param(name))
	if err != nil {
		util.BadRequest(ctx, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

// currentUser 未登录时已写入 401 响应
func currentUser(ctx *gin.Context) (*util.Claims, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	return user, true
}

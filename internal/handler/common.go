package handler

import (
	"context"

	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/middleware"
	"AiBeiTongServer/pkg/errs"
	"AiBeiTongServer/pkg/logger"
	"AiBeiTongServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// failWithError 统一错误出口。
// 业务错误（code < 30000）原样透传，带自定义消息的（如限流剩余天数）一并带上；
// 服务端错误记日志后归一成内部错误。
func failWithError(c *gin.Context, ctx context.Context, scene string, err error) {
	code := errs.CodeOf(err)
	if consts.IsNonServerError(code) {
		if msg := errs.MessageOf(err); msg != "" {
			result.FailWithMessage(c, nil, msg, code)
			return
		}
		result.Fail(c, nil, code)
		return
	}

	logger.Error(ctx, scene+"服务内部错误", logger.ErrorField("error", err))
	result.Fail(c, nil, consts.CodeInternalError)
}

// currentUser 取当前登录用户 UUID，取不到直接回未认证。
// 返回 false 时 handler 应立即 return。
func currentUser(c *gin.Context) (string, bool) {
	userUUID, ok := middleware.GetUserUUID(c)
	if !ok || userUUID == "" {
		result.Fail(c, nil, consts.CodeUnauthorized)
		return "", false
	}
	return userUUID, true
}

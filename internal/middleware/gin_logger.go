package middleware

import (
	"context"
	"time"

	"AiBeiTongServer/pkg/logger"

	"github.com/gin-gonic/gin"
)

// NewContextWithGin 从 gin.Context 创建带 trace_id、user_uuid、device_id 的 context.Context，
// 把 Gin 上下文里的追踪字段透传给日志系统和下游。
func NewContextWithGin(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if traceId, exists := c.Get("trace_id"); exists {
		ctx = context.WithValue(ctx, "trace_id", traceId)
	}
	if userUUID, exists := c.Get("user_uuid"); exists {
		ctx = context.WithValue(ctx, "user_uuid", userUUID)
	}
	if deviceID, exists := c.Get("device_id"); exists {
		ctx = context.WithValue(ctx, "device_id", deviceID)
	}
	if clientIP, exists := c.Get("client_ip"); exists {
		ctx = context.WithValue(ctx, "client_ip", clientIP)
	}
	return ctx
}

// GinLogger 请求日志中间件。
// 正常请求只在入口记一条 Info，5xx 和慢请求（>2s）额外记 Warn。
func GinLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery
		ctx := NewContextWithGin(c)

		logger.Info(ctx, "请求开始",
			logger.String("method", c.Request.Method),
			logger.String("path", path),
			logger.String("query", query),
			logger.String("ip", GetClientIP(c)),
		)

		c.Next()

		cost := time.Since(start)
		status := c.Writer.Status()

		if status >= 500 || cost > 2*time.Second {
			logger.Warn(ctx, "慢请求或服务端错误",
				logger.Int("status", status),
				logger.String("method", c.Request.Method),
				logger.String("path", path),
				logger.String("query", query),
				logger.String("ip", GetClientIP(c)),
				logger.String("errors", c.Errors.ByType(gin.ErrorTypePrivate).String()),
				logger.Duration("cost", cost),
			)
		}
	}
}

package middleware

import (
	"fmt"
	"net"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"

	"AiBeiTongServer/consts"
	"AiBeiTongServer/pkg/logger"
	"AiBeiTongServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// GinRecovery panic 恢复中间件。
// broken pipe（客户端断连）只记日志不回包，其余 panic 返回统一错误响应。
func GinRecovery(stack bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				var brokenPipe bool
				if ne, ok := err.(*net.OpError); ok {
					if se, ok := ne.Err.(*os.SyscallError); ok {
						msg := strings.ToLower(se.Error())
						if strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer") {
							brokenPipe = true
						}
					}
				}

				ctx := NewContextWithGin(c)
				httpRequest, _ := httputil.DumpRequest(c.Request, false)
				if brokenPipe {
					logger.Error(ctx, "客户端断连",
						logger.Any("error", err),
						logger.String("request", string(httpRequest)),
					)
					// 连接已断，无法回包
					_ = c.Error(fmt.Errorf("broken pipe: %v", err))
					c.Abort()
					return
				}

				if stack {
					logger.Error(ctx, "panic 恢复",
						logger.Any("error", err),
						logger.String("request", string(httpRequest)),
						logger.String("stack", string(debug.Stack())),
					)
				} else {
					logger.Error(ctx, "panic 恢复",
						logger.Any("error", err),
						logger.String("request", string(httpRequest)),
					)
				}

				result.Fail(c, nil, consts.CodeInternalError)
				c.Abort()
			}
		}()
		c.Next()
	}
}

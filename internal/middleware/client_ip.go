package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	headerXRealIP       = "X-Real-IP"
	headerXForwardedFor = "X-Forwarded-For"
	headerXClientIP     = "X-Client-IP"
)

// GetClientIP 获取客户端真实 IP。
// 优先级：X-Real-IP > X-Forwarded-For > X-Client-IP > RemoteAddr
func GetClientIP(c *gin.Context) string {
	if ip := c.GetHeader(headerXRealIP); ip != "" {
		return strings.TrimSpace(ip)
	}

	if xff := c.GetHeader(headerXForwardedFor); xff != "" {
		// 代理链取第一个（原始客户端）
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if ip := c.GetHeader(headerXClientIP); ip != "" {
		if net.ParseIP(ip) != nil {
			return ip
		}
	}

	return c.ClientIP()
}

// ClientIPMiddleware 把客户端 IP 存入 Context，后续中间件和日志直接取。
func ClientIPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("client_ip", GetClientIP(c))
		c.Next()
	}
}

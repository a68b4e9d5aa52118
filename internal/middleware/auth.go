package middleware

import (
	"strings"

	"AiBeiTongServer/consts"
	"AiBeiTongServer/consts/redisKey"
	"AiBeiTongServer/pkg/jwtauth"
	"AiBeiTongServer/pkg/logger"
	"AiBeiTongServer/pkg/result"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// JWTAuthMiddleware JWT 认证中间件。
// 签名校验通过后再和 Redis 里存的 Token 比对，登出/互踢后旧 Token 立即失效。
// redisClient 为 nil 时跳过 Redis 比对（单测场景）。
func JWTAuthMiddleware(redisClient redis.UniversalClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. 取 Authorization 头
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			result.Fail(c, nil, consts.CodeUnauthorized)
			c.Abort()
			return
		}

		// 2. 校验格式: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			result.Fail(c, nil, consts.CodeUnauthorized)
			c.Abort()
			return
		}
		tokenString := parts[1]

		// 3. 解析并验证签名
		claims, err := jwtauth.ParseToken(tokenString)
		if err != nil {
			// Token 无效/过期属于正常业务流程，不记日志
			result.Fail(c, nil, consts.CodeInvalidToken)
			c.Abort()
			return
		}

		// 4. 和 Redis 里的 Token 比对（服务端可吊销）
		key := rediskey.AccessTokenKey(claims.UserUUID, claims.DeviceID)
		stored, err := redisClient.Get(c.Request.Context(), key).Result()
		if err == redis.Nil || (err == nil && stored != tokenString) {
			result.Fail(c, nil, consts.CodeTokenExpired)
			c.Abort()
			return
		}
		if err != nil && err != redis.Nil {
			// Redis 瞬断时降级放行，签名本身已校验过
			logger.Warn(NewContextWithGin(c), "Token 校验降级放行",
				logger.ErrorField("error", err))
		}

		// 5. 用户信息存入 Context
		c.Set("user_uuid", claims.UserUUID)
		c.Set("device_id", claims.DeviceID)

		c.Next()
	}
}

// GetUserUUID 从 Context 中获取当前登录用户的 UUID
func GetUserUUID(c *gin.Context) (string, bool) {
	userUUID, exists := c.Get("user_uuid")
	if !exists {
		return "", false
	}
	uuid, ok := userUUID.(string)
	return uuid, ok
}

// GetDeviceID 从 Context 中获取当前设备 ID
func GetDeviceID(c *gin.Context) (string, bool) {
	deviceID, exists := c.Get("device_id")
	if !exists {
		return "", false
	}
	id, ok := deviceID.(string)
	return id, ok
}

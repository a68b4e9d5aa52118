package middleware

import (
	"context"
	"errors"
	"sync"
	"time"

	"AiBeiTongServer/consts"
	"AiBeiTongServer/consts/redisKey"
	"AiBeiTongServer/pkg/logger"
	"AiBeiTongServer/pkg/result"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// ==================== Redis 令牌桶 Lua 脚本 ====================

// luaTokenBucket 原子性更新令牌桶并判断是否放行。
// KEYS[1]: 限流 key
// ARGV[1]: 当前时间戳(毫秒)
// ARGV[2]: 桶容量
// ARGV[3]: 每秒产生的令牌数
// ARGV[4]: 每次请求消耗的令牌数
// 返回 1 放行，0 限流。
const luaTokenBucket = `
local key = KEYS[1]
local now = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local rate = tonumber(ARGV[3])
local requested = tonumber(ARGV[4])

local info = redis.call('HMGET', key, 'tokens', 'last_time')
local current_tokens = tonumber(info[1])
local last_time = tonumber(info[2])

if current_tokens == nil then
    current_tokens = capacity
end
if last_time == nil then
    last_time = now
end

local time_diff = math.max(0, now - last_time)
local new_tokens = math.floor((time_diff * rate) / 1000)

if new_tokens > 0 then
    current_tokens = math.min(capacity, current_tokens + new_tokens)
    last_time = now
end

local allowed = 0
if current_tokens >= requested then
    current_tokens = current_tokens - requested
    allowed = 1
end

redis.call('HMSET', key, 'tokens', current_tokens, 'last_time', last_time)

local fill_time = math.ceil(capacity / rate)
local ttl = math.max(60, fill_time * 2)
redis.call('EXPIRE', key, ttl)

return allowed
`

// ==================== 限流器 ====================

// RateLimiter IP 级令牌桶限流器。
// 主路径走 Redis（多实例共享），Redis 不可用时降级到进程内 x/time 限流器，
// 保证单实例下限流语义不中断。
type RateLimiter struct {
	mu          sync.RWMutex
	redisClient redis.UniversalClient
	rateLimit   float64
	burst       int

	localMu sync.Mutex
	local   map[string]*rate.Limiter
}

// NewRateLimiter 创建限流器
// rateLimit: 每秒产生的令牌数; burst: 桶容量
func NewRateLimiter(rateLimit float64, burst int) *RateLimiter {
	return &RateLimiter{
		rateLimit: rateLimit,
		burst:     burst,
		local:     make(map[string]*rate.Limiter),
	}
}

// SetRedisClient 设置 Redis 客户端（延迟注入，避免初始化顺序问题）
func (r *RateLimiter) SetRedisClient(client redis.UniversalClient) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.redisClient = client
}

// Allow 检查 key 是否放行
func (r *RateLimiter) Allow(ctx context.Context, key string) bool {
	r.mu.RLock()
	client := r.redisClient
	r.mu.RUnlock()

	if client == nil {
		return r.allowLocal(key)
	}

	// Redis 操作加 50ms 短超时，不让限流检查拖慢请求
	redisCtx, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()

	now := time.Now().UnixMilli()
	cmd := client.Eval(redisCtx, luaTokenBucket, []string{key}, now, r.burst, r.rateLimit, 1)
	res, err := cmd.Result()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			logger.Warn(ctx, "Redis 限流检查超时，降级本地限流",
				logger.String("key", key), logger.ErrorField("error", err))
		} else {
			logger.Error(ctx, "Redis 限流检查失败，降级本地限流",
				logger.String("key", key), logger.ErrorField("error", err))
		}
		return r.allowLocal(key)
	}

	allowed, ok := res.(int64)
	if !ok {
		logger.Warn(ctx, "Redis 限流返回值类型错误，降级本地限流",
			logger.String("key", key), logger.Any("result", res))
		return r.allowLocal(key)
	}
	return allowed == 1
}

// allowLocal 进程内令牌桶兜底
func (r *RateLimiter) allowLocal(key string) bool {
	r.localMu.Lock()
	limiter, ok := r.local[key]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(r.rateLimit), r.burst)
		r.local[key] = limiter
	}
	r.localMu.Unlock()
	return limiter.Allow()
}

// ==================== 限流中间件 ====================

// IPRateLimitMiddleware IP 级限流中间件
func IPRateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := GetClientIP(c)
		key := rediskey.IPRateLimitKey(ip)

		if !limiter.Allow(NewContextWithGin(c), key) {
			result.Fail(c, nil, consts.CodeTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserRateLimitMiddleware 用户级限流中间件（挂在认证之后）
func UserRateLimitMiddleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		userUUID, ok := GetUserUUID(c)
		if !ok {
			c.Next()
			return
		}
		key := rediskey.UserRateLimitKey(userUUID)

		if !limiter.Allow(NewContextWithGin(c), key) {
			result.Fail(c, nil, consts.CodeTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}

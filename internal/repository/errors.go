package repository

import (
	"context"
	"errors"
	"fmt"

	"AiBeiTongServer/internal/mq"
	"AiBeiTongServer/pkg/logger"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ==================== Repository 层统一错误定义 ====================

var (
	// ErrRecordNotFound 记录不存在
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey 唯一键冲突
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrDatabase 数据库操作错误
	ErrDatabase = errors.New("database error")

	// ErrRedisNil Redis Key 不存在
	ErrRedisNil = errors.New("redis: key not found")

	// ErrRedis Redis 操作错误
	ErrRedis = errors.New("redis error")
)

// wrapError 按规则把底层驱动错误映射成本层错误。
// 未命中规则的包装 defaultErr，保留原始信息给日志。
func wrapError(err error, rules map[error]error, defaultErr error) error {
	if err == nil {
		return nil
	}

	for source, target := range rules {
		if errors.Is(err, source) {
			return target
		}
	}

	return fmt.Errorf("%w: %v", defaultErr, err)
}

var (
	dbErrorRules = map[error]error{
		gorm.ErrRecordNotFound: ErrRecordNotFound,
		gorm.ErrDuplicatedKey:  ErrDuplicateKey,
	}

	redisErrorRules = map[error]error{
		redis.Nil: ErrRedisNil,
	}
)

// WrapDBError 包装数据库错误
func WrapDBError(err error) error {
	return wrapError(err, dbErrorRules, ErrDatabase)
}

// WrapRedisError 包装 Redis 错误
func WrapRedisError(err error) error {
	return wrapError(err, redisErrorRules, ErrRedis)
}

// LogRedisError 记录可降级的 Redis 错误（不中断主流程）
func LogRedisError(ctx context.Context, err error) {
	logger.Error(ctx, "Redis 操作错误", logger.ErrorField("error", err))
}

// LogAndRetryRedisError 记录 Redis 错误并把补偿任务发到 Kafka 重试队列。
// task 由调用方构造（要重放的命令），这里补齐上下文和错误信息。
func LogAndRetryRedisError(ctx context.Context, task mq.RedisTask, err error) {
	logger.Warn(ctx, "Redis 操作失败，发送到重试队列",
		logger.ErrorField("error", err),
		logger.String("command", task.Command),
		logger.String("source", task.Source),
	)

	task = task.WithContext(ctx).WithError(err)

	if kafkaErr := mq.SendRedisTask(ctx, task); kafkaErr != nil {
		// Kafka 也失败了只能放弃，靠缓存 TTL 兜底自愈
		logger.Error(ctx, "发送 Redis 重试任务到 Kafka 失败，放弃处理",
			logger.ErrorField("kafka_error", kafkaErr),
			logger.ErrorField("original_error", err),
			logger.String("command", task.Command),
		)
	}
}

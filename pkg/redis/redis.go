package redis

import (
	"context"
	"fmt"

	"AiBeiTongServer/config"

	"github.com/redis/go-redis/v9"
)

var global *redis.Client

// Client 返回全局 Redis 客户端（未初始化时为 nil，调用方需降级处理）。
func Client() *redis.Client { return global }

// ReplaceGlobal 设置全局 Redis 客户端。
func ReplaceGlobal(c *redis.Client) { global = c }

// Build 基于配置创建 Redis 客户端并做一次连通性探测。
func Build(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return client, nil
}

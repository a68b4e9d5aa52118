package mq

import (
	"context"
	"time"
)

// ==================== Redis 任务定义 ====================
// Redis 写失败时，把要补偿的命令封装成任务发到 Kafka，由消费者异步重放，
// 保证缓存最终和数据库对齐（缓存修复，不承载业务写）。

type CommandType string

const (
	CmdSimple CommandType = "simple" // Set, Del, SAdd...
)

// RedisTask 存放在 Kafka 里的消息体
type RedisTask struct {
	Type CommandType `json:"type"`

	Command string        `json:"command,omitempty"` // e.g. "del", "sadd"
	Args    []interface{} `json:"args,omitempty"`    // e.g. ["user:relation:contact:u_1", "u_2"]

	// 元数据（用于追踪和重试控制）
	TraceID     string    `json:"trace_id,omitempty"`
	UserUUID    string    `json:"user_uuid,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	RetryCount  int       `json:"retry_count"`      // 已重试次数
	MaxRetries  int       `json:"max_retries"`      // 最大重试次数
	OriginalErr string    `json:"original_err"`     // 原始错误信息
	Source      string    `json:"source,omitempty"` // 操作来源
}

// ==================== 构造器函数 ====================

// BuildDelTask 构造一个 DEL 任务
func BuildDelTask(key string) RedisTask {
	return RedisTask{
		Type:       CmdSimple,
		Command:    "del",
		Args:       []interface{}{key},
		Timestamp:  time.Now(),
		MaxRetries: 3,
	}
}

// BuildSAddTask 构造一个 SADD 任务
func BuildSAddTask(key string, members ...interface{}) RedisTask {
	args := append([]interface{}{key}, members...)
	return RedisTask{
		Type:       CmdSimple,
		Command:    "sadd",
		Args:       args,
		Timestamp:  time.Now(),
		MaxRetries: 3,
	}
}

// BuildSRemTask 构造一个 SREM 任务
func BuildSRemTask(key string, members ...interface{}) RedisTask {
	args := append([]interface{}{key}, members...)
	return RedisTask{
		Type:       CmdSimple,
		Command:    "srem",
		Args:       args,
		Timestamp:  time.Now(),
		MaxRetries: 3,
	}
}

// WithContext 从 ctx 中提取追踪字段写入任务元数据。
func (t RedisTask) WithContext(ctx context.Context) RedisTask {
	if ctx == nil {
		return t
	}
	if traceId, ok := ctx.Value("trace_id").(string); ok {
		t.TraceID = traceId
	}
	if userUUID, ok := ctx.Value("user_uuid").(string); ok {
		t.UserUUID = userUUID
	}
	return t
}

// WithError 记录触发重试的原始错误。
func (t RedisTask) WithError(err error) RedisTask {
	if err != nil {
		t.OriginalErr = err.Error()
	}
	return t
}

// WithSource 标记任务来源（repo/service）。
func (t RedisTask) WithSource(source string) RedisTask {
	t.Source = source
	return t
}

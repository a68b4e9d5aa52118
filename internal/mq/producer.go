package mq

import (
	"context"
	"encoding/json"
	"errors"

	"AiBeiTongServer/pkg/kafka"
)

var globalProducer *kafka.Producer

// ErrProducerNotSet 表示 Kafka 生产者未初始化（Redis 不可用时可能根本没启动 Kafka）。
var ErrProducerNotSet = errors.New("kafka producer not set")

// SetGlobalProducer 设置全局生产者（main 初始化时调用）。
func SetGlobalProducer(p *kafka.Producer) {
	globalProducer = p
}

// SendRedisTask 把 Redis 补偿任务发送到重试队列。
// key 取任务的第一个参数（通常是缓存 key），保证同一 key 的任务落在同一分区、顺序消费。
func SendRedisTask(ctx context.Context, task RedisTask) error {
	if globalProducer == nil {
		return ErrProducerNotSet
	}

	payload, err := json.Marshal(task)
	if err != nil {
		return err
	}

	var key []byte
	if len(task.Args) > 0 {
		if s, ok := task.Args[0].(string); ok {
			key = []byte(s)
		}
	}

	return globalProducer.Publish(ctx, key, payload)
}

package mq

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"AiBeiTongServer/pkg/kafka"

	redisv9 "github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ==================== Redis 重试消费者 ====================
// 消费缓存补偿任务并在 Redis 上重放。执行失败时重新入队，
// 超过 MaxRetries 就记日志丢弃（缓存有 TTL 兜底，最终会自愈）。

type RedisRetryConsumer struct {
	reader   *kafkago.Reader
	rdb      redisv9.UniversalClient
	producer *kafka.Producer
	logger   *zap.Logger
}

func NewRedisRetryConsumer(brokers []string, topic, groupID string, rdb redisv9.UniversalClient, producer *kafka.Producer, logger *zap.Logger) *RedisRetryConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       1,
		MaxBytes:       1 << 20,
		CommitInterval: time.Second,
		ErrorLogger:    kafka.NewZapLoggerAdapter(logger),
	})
	return &RedisRetryConsumer{
		reader:   reader,
		rdb:      rdb,
		producer: producer,
		logger:   logger,
	}
}

// Start 阻塞消费，直到 ctx 取消。调用方放到独立 goroutine 里跑。
func (c *RedisRetryConsumer) Start(ctx context.Context) {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				return
			}
			c.logger.Warn("读取 Redis 重试消息失败", zap.Error(err))
			continue
		}

		var task RedisTask
		if err := json.Unmarshal(msg.Value, &task); err != nil {
			// 消息体损坏，无法重放，只能丢弃
			c.logger.Error("Redis 重试消息反序列化失败",
				zap.ByteString("value", msg.Value), zap.Error(err))
			continue
		}

		c.handle(ctx, task)
	}
}

func (c *RedisRetryConsumer) handle(ctx context.Context, task RedisTask) {
	err := c.execute(ctx, task)
	if err == nil {
		c.logger.Info("Redis 补偿任务执行成功",
			zap.String("command", task.Command),
			zap.String("trace_id", task.TraceID),
			zap.Int("retry_count", task.RetryCount))
		return
	}

	if task.RetryCount+1 >= task.MaxRetries {
		c.logger.Error("Redis 补偿任务超过最大重试次数，丢弃",
			zap.String("command", task.Command),
			zap.Any("args", task.Args),
			zap.String("trace_id", task.TraceID),
			zap.String("original_err", task.OriginalErr),
			zap.Error(err))
		return
	}

	task.RetryCount++
	payload, marshalErr := json.Marshal(task)
	if marshalErr != nil {
		c.logger.Error("Redis 补偿任务重新入队序列化失败", zap.Error(marshalErr))
		return
	}

	var key []byte
	if len(task.Args) > 0 {
		if s, ok := task.Args[0].(string); ok {
			key = []byte(s)
		}
	}
	if pubErr := c.producer.Publish(ctx, key, payload); pubErr != nil {
		c.logger.Error("Redis 补偿任务重新入队失败",
			zap.String("command", task.Command),
			zap.String("trace_id", task.TraceID),
			zap.Error(pubErr))
	}
}

// execute 在 Redis 上重放一条命令。
func (c *RedisRetryConsumer) execute(ctx context.Context, task RedisTask) error {
	if task.Type != CmdSimple || len(task.Args) == 0 {
		return errors.New("unsupported redis task")
	}

	key, ok := task.Args[0].(string)
	if !ok {
		return errors.New("redis task key is not a string")
	}

	switch task.Command {
	case "del":
		return c.rdb.Del(ctx, key).Err()
	case "sadd":
		return c.rdb.SAdd(ctx, key, task.Args[1:]...).Err()
	case "srem":
		return c.rdb.SRem(ctx, key, task.Args[1:]...).Err()
	default:
		return errors.New("unknown redis command: " + task.Command)
	}
}

// Close 关闭消费者。
func (c *RedisRetryConsumer) Close() error {
	return c.reader.Close()
}

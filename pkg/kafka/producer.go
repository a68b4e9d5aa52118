package kafka

import (
	"context"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Producer Kafka 生产者封装（单 topic）。
type Producer struct {
	writer *kafkago.Writer
}

// NewProducer 创建生产者。
// 使用 LeastBytes 均衡器 + 异步批量写，容忍短暂的 broker 抖动。
func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafkago.RequireOne,
		Async:        false,
	}
	return &Producer{writer: writer}
}

// Publish 发送一条消息。
func (p *Producer) Publish(ctx context.Context, key, value []byte) error {
	return p.writer.WriteMessages(ctx, kafkago.Message{
		Key:   key,
		Value: value,
	})
}

// Close 关闭生产者。
func (p *Producer) Close() error {
	return p.writer.Close()
}

// NewZapLoggerAdapter 把 zap Logger 适配成 kafka-go 的 Logger 接口。
func NewZapLoggerAdapter(l *zap.Logger) kafkago.LoggerFunc {
	return func(msg string, args ...interface{}) {
		if l != nil {
			l.Sugar().Debugf(msg, args...)
		}
	}
}

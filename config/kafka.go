package config

// KafkaConsumerConfig 消费者配置。
type KafkaConsumerConfig struct {
	GroupID string `json:"groupId" yaml:"groupId"` // 消费组 ID
}

// KafkaConfig Kafka 配置。
// 目前只承载 Redis 缓存修复重试队列。
type KafkaConfig struct {
	Brokers         []string            `json:"brokers" yaml:"brokers"`
	RedisRetryTopic string              `json:"redisRetryTopic" yaml:"redisRetryTopic"`
	ConsumerConfig  KafkaConsumerConfig `json:"consumerConfig" yaml:"consumerConfig"`
}

// DefaultKafkaConfig 返回本地开发的默认配置。
func DefaultKafkaConfig() KafkaConfig {
	return KafkaConfig{
		Brokers:         []string{envString("KAFKA_BROKER", "127.0.0.1:9092")},
		RedisRetryTopic: envString("KAFKA_REDIS_RETRY_TOPIC", "aibeitong.redis.retry"),
		ConsumerConfig: KafkaConsumerConfig{
			GroupID: envString("KAFKA_GROUP_ID", "aibeitong-redis-retry"),
		},
	}
}

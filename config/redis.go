package config

import "time"

// RedisConfig Redis 配置。
type RedisConfig struct {
	Addr         string        `json:"addr" yaml:"addr"`
	Password     string        `json:"password" yaml:"password"`
	DB           int           `json:"db" yaml:"db"`
	PoolSize     int           `json:"poolSize" yaml:"poolSize"`
	DialTimeout  time.Duration `json:"dialTimeout" yaml:"dialTimeout"`
	ReadTimeout  time.Duration `json:"readTimeout" yaml:"readTimeout"`
	WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
}

// DefaultRedisConfig 返回本地开发的默认配置。
func DefaultRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:         envString("REDIS_ADDR", "127.0.0.1:6379"),
		Password:     envString("REDIS_PASSWORD", ""),
		DB:           envInt("REDIS_DB", 0),
		PoolSize:     envInt("REDIS_POOL_SIZE", 64),
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	}
}

package config

import "time"

// ServerConfig HTTP 服务配置。
type ServerConfig struct {
	Addr            string        `json:"addr" yaml:"addr"`
	ReadTimeout     time.Duration `json:"readTimeout" yaml:"readTimeout"`
	WriteTimeout    time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"` // 优雅退出等待时间

	// 限流参数（令牌桶）
	RateLimitPerSec float64 `json:"rateLimitPerSec" yaml:"rateLimitPerSec"`
	RateLimitBurst  int     `json:"rateLimitBurst" yaml:"rateLimitBurst"`

	// 启动时写入演示账号与示例职位（仅开发/演示环境打开）
	SeedDemo bool `json:"seedDemo" yaml:"seedDemo"`
}

// DefaultServerConfig 返回本地开发的默认配置。
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:            envString("SERVER_ADDR", ":8080"),
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		RateLimitPerSec: 20,
		RateLimitBurst:  40,
		SeedDemo:        envBool("SEED_DEMO", false),
	}
}

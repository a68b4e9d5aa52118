package config

import "time"

// GeminiConfig 文本生成服务配置。
// APIKey 为空时所有调用直接走兜底文案，不发起外部请求。
type GeminiConfig struct {
	APIKey  string        `json:"apiKey" yaml:"apiKey"`
	Model   string        `json:"model" yaml:"model"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"` // 单次生成超时

	// 熔断参数
	BreakerMaxFailures uint32        `json:"breakerMaxFailures" yaml:"breakerMaxFailures"` // 连续失败多少次后熔断
	BreakerOpenTimeout time.Duration `json:"breakerOpenTimeout" yaml:"breakerOpenTimeout"` // 熔断后多久进入半开
}

// DefaultGeminiConfig 返回默认配置。
func DefaultGeminiConfig() GeminiConfig {
	return GeminiConfig{
		APIKey:             envString("GEMINI_API_KEY", ""),
		Model:              envString("GEMINI_MODEL", "gemini-2.5-flash"),
		Timeout:            envDuration("GEMINI_TIMEOUT", 30*time.Second),
		BreakerMaxFailures: 5,
		BreakerOpenTimeout: time.Minute,
	}
}

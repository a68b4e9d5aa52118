package config

import "time"

// JWTConfig 访问令牌配置。
type JWTConfig struct {
	Secret       string        `json:"secret" yaml:"secret"`
	Issuer       string        `json:"issuer" yaml:"issuer"`
	AccessExpire time.Duration `json:"accessExpire" yaml:"accessExpire"` // AccessToken 有效期
}

// DefaultJWTConfig 返回本地开发的默认配置。
// 生产环境必须通过 JWT_SECRET 覆盖。
func DefaultJWTConfig() JWTConfig {
	return JWTConfig{
		Secret:       envString("JWT_SECRET", "aibeitong-dev-secret"),
		Issuer:       "aibeitong",
		AccessExpire: envDuration("JWT_ACCESS_EXPIRE", 24*time.Hour),
	}
}

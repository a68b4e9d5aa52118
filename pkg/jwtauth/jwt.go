package jwtauth

import (
	"errors"
	"time"

	"AiBeiTongServer/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	cfg config.JWTConfig

	// ErrInvalidToken Token 无效或已过期
	ErrInvalidToken = errors.New("invalid token")
)

// Init 初始化 JWT 配置（进程启动时调用一次）。
func Init(c config.JWTConfig) { cfg = c }

// AccessExpire 返回 AccessToken 有效期（给登录响应的 expires_in 用）。
func AccessExpire() time.Duration { return cfg.AccessExpire }

// Claims 自定义载荷：用户 UUID + 设备 ID。
type Claims struct {
	UserUUID string `json:"user_uuid"`
	DeviceID string `json:"device_id"`
	jwt.RegisteredClaims
}

// GenerateToken 生成 AccessToken。
func GenerateToken(userUUID, deviceID string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserUUID: userUUID,
		DeviceID: deviceID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessExpire)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ParseToken 解析并校验 AccessToken。
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.Secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

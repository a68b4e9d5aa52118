package rediskey

import (
	"fmt"
	"time"
)

// ==================== TTL 常量 ====================

const (
	// UserInfoTTL 用户信息缓存 TTL
	UserInfoTTL = 1 * time.Hour
	// UserInfoEmptyTTL 用户信息空值缓存 TTL
	UserInfoEmptyTTL = 5 * time.Minute

	// ContactSetTTL 联系人集合缓存 TTL
	ContactSetTTL = 24 * time.Hour
	// ContactSetEmptyTTL 联系人空值缓存 TTL
	ContactSetEmptyTTL = 5 * time.Minute
)

// ==================== Key 构造函数 ====================

// AccessTokenKey 生成 AccessToken Key: auth:at:{user_uuid}:{device_id}
func AccessTokenKey(userUUID, deviceID string) string {
	return fmt.Sprintf("auth:at:%s:%s", userUUID, deviceID)
}

// UserInfoKey 生成用户信息缓存 Key: user:info:{uuid}
func UserInfoKey(uuid string) string {
	return fmt.Sprintf("user:info:%s", uuid)
}

// ContactSetKey 生成联系人集合 Key: user:relation:contact:{user_uuid}
func ContactSetKey(userUUID string) string {
	return fmt.Sprintf("user:relation:contact:%s", userUUID)
}

// BlockSetKey 生成黑名单集合 Key: user:relation:block:{user_uuid}
func BlockSetKey(userUUID string) string {
	return fmt.Sprintf("user:relation:block:%s", userUUID)
}

// IPRateLimitKey 生成 IP 限流 Key: rate:limit:ip:{ip}
func IPRateLimitKey(ip string) string {
	return fmt.Sprintf("rate:limit:ip:%s", ip)
}

// UserRateLimitKey 生成用户限流 Key: rate:limit:user:{user_uuid}
func UserRateLimitKey(userUUID string) string {
	return fmt.Sprintf("rate:limit:user:%s", userUUID)
}

package repository

import (
	"math/rand"
	"time"
)

// getRandomExpireTime 给缓存 TTL 加 ±10% 抖动，防止同批 key 同时过期。
func getRandomExpireTime(baseExpire time.Duration) time.Duration {
	jitterRange := float64(baseExpire) * 0.1
	jitter := time.Duration(rand.Float64()*jitterRange*2 - jitterRange)
	return baseExpire + jitter
}

package repository

import (
	"context"
	"errors"
	"time"

	"AiBeiTongServer/consts/redisKey"
	"AiBeiTongServer/model"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// authRepositoryImpl 认证数据访问层实现
type authRepositoryImpl struct {
	db          *gorm.DB
	redisClient redis.UniversalClient
}

// NewAuthRepository 创建认证仓储实例
func NewAuthRepository(db *gorm.DB, redisClient redis.UniversalClient) IAuthRepository {
	return &authRepositoryImpl{db: db, redisClient: redisClient}
}

// GetByUsername 根据登录名查询用户
// 登录走这里，不走缓存：密码比对必须用最新数据。
func (r *authRepositoryImpl) GetByUsername(ctx context.Context, username string) (*model.UserInfo, error) {
	var user model.UserInfo
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, WrapDBError(err)
	}
	return &user, nil
}

// ExistsByUsername 检查登录名是否已被占用
func (r *authRepositoryImpl) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserInfo{}).
		Where("username = ?", username).
		Count(&count).
		Error
	if err != nil {
		return false, WrapDBError(err)
	}
	return count > 0, nil
}

// Create 创建新用户
func (r *authRepositoryImpl) Create(ctx context.Context, user *model.UserInfo) (*model.UserInfo, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return user, nil
}

// StoreAccessToken 存储 AccessToken 到 Redis
func (r *authRepositoryImpl) StoreAccessToken(ctx context.Context, userUUID, deviceID, token string, expire time.Duration) error {
	key := rediskey.AccessTokenKey(userUUID, deviceID)
	if err := r.redisClient.Set(ctx, key, token, expire).Err(); err != nil {
		return WrapRedisError(err)
	}
	return nil
}

// GetAccessToken 查询 AccessToken
func (r *authRepositoryImpl) GetAccessToken(ctx context.Context, userUUID, deviceID string) (string, error) {
	key := rediskey.AccessTokenKey(userUUID, deviceID)
	token, err := r.redisClient.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", ErrRedisNil
		}
		return "", WrapRedisError(err)
	}
	return token, nil
}

// DeleteAccessToken 删除 AccessToken
func (r *authRepositoryImpl) DeleteAccessToken(ctx context.Context, userUUID, deviceID string) error {
	key := rediskey.AccessTokenKey(userUUID, deviceID)
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return WrapRedisError(err)
	}
	return nil
}

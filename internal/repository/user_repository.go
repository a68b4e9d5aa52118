package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"AiBeiTongServer/consts/redisKey"
	"AiBeiTongServer/internal/mq"
	"AiBeiTongServer/model"
	"AiBeiTongServer/pkg/async"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// userRepositoryImpl 用户信息数据访问层实现。
// 读路径三级：进程内 LRU -> Redis -> MySQL。写路径更新 DB 后删缓存。
type userRepositoryImpl struct {
	db          *gorm.DB
	redisClient redis.UniversalClient
	local       *lru.Cache[string, *model.UserInfo]
}

// NewUserRepository 创建用户信息仓储实例
func NewUserRepository(db *gorm.DB, redisClient redis.UniversalClient) IUserRepository {
	// LRU 容量 2048，够热点用户用。进程内缓存只存正值，短 TTL 依赖版本号不现实，
	// 简单起见写操作会同步逐出本地项。
	local, _ := lru.New[string, *model.UserInfo](2048)
	return &userRepositoryImpl{db: db, redisClient: redisClient, local: local}
}

// GetByUUID 根据UUID查询用户信息
func (r *userRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*model.UserInfo, error) {
	// ==================== 1. 进程内 LRU ====================
	if user, ok := r.local.Get(uuid); ok {
		return user, nil
	}

	// ==================== 2. Redis 缓存 ====================
	cacheKey := rediskey.UserInfoKey(uuid)
	cachedData, err := r.redisClient.Get(ctx, cacheKey).Result()
	if err == nil {
		// 空占位符表示用户不存在，不回源
		if cachedData == "{}" {
			return nil, nil
		}
		var user model.UserInfo
		if err := json.Unmarshal([]byte(cachedData), &user); err == nil {
			r.local.Add(uuid, &user)
			return &user, nil
		}
	}
	if err != nil && err != redis.Nil {
		LogRedisError(ctx, err) // 记录日志，降级走 DB
	}

	// ==================== 3. 回源 MySQL ====================
	var user model.UserInfo
	err = r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 写空占位防穿透，短过期
			async.RunSafe(ctx, func(runCtx context.Context) {
				if err := r.redisClient.Set(runCtx, cacheKey, "{}", getRandomExpireTime(rediskey.UserInfoEmptyTTL)).Err(); err != nil {
					LogRedisError(runCtx, err)
				}
			}, 0)
			return nil, nil
		}
		return nil, WrapDBError(err)
	}

	r.local.Add(uuid, &user)

	// ==================== 4. 异步回填 Redis ====================
	userJSON, jsonErr := json.Marshal(user)
	if jsonErr == nil {
		async.RunSafe(ctx, func(runCtx context.Context) {
			if err := r.redisClient.Set(runCtx, cacheKey, userJSON, getRandomExpireTime(rediskey.UserInfoTTL)).Err(); err != nil {
				LogRedisError(runCtx, err)
			}
		}, 0)
	}

	return &user, nil
}

// BatchGetByUUIDs 批量查询用户信息
// 返回结果按传入的 uuids 顺序排列，不存在的用户不包含在结果中
func (r *userRepositoryImpl) BatchGetByUUIDs(ctx context.Context, uuids []string) ([]*model.UserInfo, error) {
	if len(uuids) == 0 {
		return []*model.UserInfo{}, nil
	}

	// uuid -> *UserInfo（nil 表示确认不存在）
	userMap := make(map[string]*model.UserInfo, len(uuids))
	missUUIDs := make([]string, 0, len(uuids))

	// ==================== 1. 进程内 LRU ====================
	redisUUIDs := make([]string, 0, len(uuids))
	for _, uuid := range uuids {
		if user, ok := r.local.Get(uuid); ok {
			userMap[uuid] = user
		} else {
			redisUUIDs = append(redisUUIDs, uuid)
		}
	}

	// ==================== 2. 批量查询 Redis ====================
	if len(redisUUIDs) > 0 {
		keys := make([]string, 0, len(redisUUIDs))
		for _, uuid := range redisUUIDs {
			keys = append(keys, rediskey.UserInfoKey(uuid))
		}

		cachedValues, err := r.redisClient.MGet(ctx, keys...).Result()
		if err != nil && err != redis.Nil {
			LogRedisError(ctx, err)
			cachedValues = nil
		}

		if cachedValues != nil {
			for i, value := range cachedValues {
				uuid := redisUUIDs[i]

				if value == nil {
					missUUIDs = append(missUUIDs, uuid)
					continue
				}

				var raw string
				switch v := value.(type) {
				case string:
					raw = v
				case []byte:
					raw = string(v)
				default:
					missUUIDs = append(missUUIDs, uuid)
					continue
				}

				if raw == "" || raw == "{}" {
					userMap[uuid] = nil
					continue
				}

				var user model.UserInfo
				if err := json.Unmarshal([]byte(raw), &user); err != nil {
					missUUIDs = append(missUUIDs, uuid)
					continue
				}
				userMap[uuid] = &user
				r.local.Add(uuid, &user)
			}
		} else {
			missUUIDs = append(missUUIDs, redisUUIDs...)
		}
	}

	// ==================== 3. 未命中部分回源 MySQL ====================
	if len(missUUIDs) > 0 {
		var dbUsers []*model.UserInfo
		err := r.db.WithContext(ctx).
			Where("uuid IN ?", missUUIDs).
			Find(&dbUsers).
			Error
		if err != nil {
			return nil, WrapDBError(err)
		}

		foundUUIDs := make(map[string]struct{}, len(dbUsers))
		for _, user := range dbUsers {
			if user != nil && user.Uuid != "" {
				userMap[user.Uuid] = user
				foundUUIDs[user.Uuid] = struct{}{}
				r.local.Add(user.Uuid, user)
			}
		}
		for _, uuid := range missUUIDs {
			if _, ok := foundUUIDs[uuid]; !ok {
				userMap[uuid] = nil
			}
		}

		// 异步回填 Redis，不存在的写空占位防穿透
		async.RunSafe(ctx, func(runCtx context.Context) {
			pipe := r.redisClient.Pipeline()
			for _, user := range dbUsers {
				if user == nil || user.Uuid == "" {
					continue
				}
				userJSON, err := json.Marshal(user)
				if err != nil {
					continue
				}
				pipe.Set(runCtx, rediskey.UserInfoKey(user.Uuid), userJSON, getRandomExpireTime(rediskey.UserInfoTTL))
			}
			for _, uuid := range missUUIDs {
				if _, ok := foundUUIDs[uuid]; ok {
					continue
				}
				pipe.Set(runCtx, rediskey.UserInfoKey(uuid), "{}", getRandomExpireTime(rediskey.UserInfoEmptyTTL))
			}
			if _, err := pipe.Exec(runCtx); err != nil {
				LogRedisError(runCtx, err)
			}
		}, 0)
	}

	// ==================== 4. 按原始顺序组装结果 ====================
	result := make([]*model.UserInfo, 0, len(uuids))
	for _, uuid := range uuids {
		if user, ok := userMap[uuid]; ok && user != nil {
			result = append(result, user)
		}
	}

	return result, nil
}

// UpdateProfile 更新资料字段（只更新传入的键）
func (r *userRepositoryImpl) UpdateProfile(ctx context.Context, userUUID string, updates map[string]interface{}) error {
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	err := r.db.WithContext(ctx).
		Model(&model.UserInfo{}).
		Where("uuid = ?", userUUID).
		Updates(updates).
		Error
	if err != nil {
		return WrapDBError(err)
	}

	r.invalidate(ctx, userUUID, "UserRepository.UpdateProfile")
	return nil
}

// UpdateAvatar 更新用户头像
func (r *userRepositoryImpl) UpdateAvatar(ctx context.Context, userUUID, avatar string) error {
	err := r.db.WithContext(ctx).
		Model(&model.UserInfo{}).
		Where("uuid = ?", userUUID).
		Update("avatar", avatar).
		Error
	if err != nil {
		return WrapDBError(err)
	}

	r.invalidate(ctx, userUUID, "UserRepository.UpdateAvatar")
	return nil
}

// Search 按昵称/登录名前缀搜索用户
func (r *userRepositoryImpl) Search(ctx context.Context, keyword string, limit int) ([]*model.UserInfo, error) {
	if limit <= 0 {
		limit = 20
	}

	var users []*model.UserInfo
	err := r.db.WithContext(ctx).
		Where("(nickname LIKE ? OR username LIKE ?) AND visible_to_search = ?",
			keyword+"%", keyword+"%", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).
		Error
	if err != nil {
		return nil, WrapDBError(err)
	}

	return users, nil
}

// invalidate 逐出本地缓存并删 Redis 缓存，Redis 删失败走重试队列。
func (r *userRepositoryImpl) invalidate(ctx context.Context, userUUID, source string) {
	r.local.Remove(userUUID)

	cacheKey := rediskey.UserInfoKey(userUUID)
	if err := r.redisClient.Del(ctx, cacheKey).Err(); err != nil {
		task := mq.BuildDelTask(cacheKey).WithSource(source)
		LogAndRetryRedisError(ctx, task, err)
	}
}

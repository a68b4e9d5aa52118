package repository

import (
	"context"

	"AiBeiTongServer/consts/redisKey"
	"AiBeiTongServer/internal/mq"
	"AiBeiTongServer/model"
	"AiBeiTongServer/pkg/async"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// relationRepositoryImpl 好友关系与黑名单数据访问层实现。
// 好友关系对称双行；联系人/黑名单在 Redis Set 里做读缓存，
// 写路径 DB 成功后同步改 Set，失败发 Kafka 补偿。
type relationRepositoryImpl struct {
	db          *gorm.DB
	redisClient redis.UniversalClient
}

// NewRelationRepository 创建关系仓储实例
func NewRelationRepository(db *gorm.DB, redisClient redis.UniversalClient) IRelationRepository {
	return &relationRepositoryImpl{db: db, redisClient: redisClient}
}

// CreateFriendPair 建立好友关系，对称写两行。
// 幂等：双向申请各自被接受时，已存在的行直接跳过。
func (r *relationRepositoryImpl) CreateFriendPair(ctx context.Context, userUUID, peerUUID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows := []model.UserRelation{
			{UserUuid: userUUID, PeerUuid: peerUUID, Status: model.RelationStatusFriend},
			{UserUuid: peerUUID, PeerUuid: userUUID, Status: model.RelationStatusFriend},
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
	})
	if err != nil {
		return WrapDBError(err)
	}

	// 双方的联系人 Set 各加一个成员
	r.cacheSAdd(ctx, rediskey.ContactSetKey(userUUID), peerUUID, "RelationRepository.CreateFriendPair")
	r.cacheSAdd(ctx, rediskey.ContactSetKey(peerUUID), userUUID, "RelationRepository.CreateFriendPair")
	return nil
}

// DeleteFriendPair 解除好友关系，双向硬删
func (r *relationRepositoryImpl) DeleteFriendPair(ctx context.Context, userUUID, peerUUID string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Unscoped().
			Where("status = ? AND ((user_uuid = ? AND peer_uuid = ?) OR (user_uuid = ? AND peer_uuid = ?))",
				model.RelationStatusFriend, userUUID, peerUUID, peerUUID, userUUID).
			Delete(&model.UserRelation{}).
			Error
	})
	if err != nil {
		return WrapDBError(err)
	}

	r.cacheSRem(ctx, rediskey.ContactSetKey(userUUID), peerUUID, "RelationRepository.DeleteFriendPair")
	r.cacheSRem(ctx, rediskey.ContactSetKey(peerUUID), userUUID, "RelationRepository.DeleteFriendPair")
	return nil
}

// IsFriend 是否为好友
func (r *relationRepositoryImpl) IsFriend(ctx context.Context, userUUID, peerUUID string) (bool, error) {
	// 先问缓存 Set，命中即返回
	cacheKey := rediskey.ContactSetKey(userUUID)
	isMember, err := r.redisClient.SIsMember(ctx, cacheKey, peerUUID).Result()
	if err == nil && isMember {
		return true, nil
	}
	if err != nil {
		LogRedisError(ctx, err)
	}

	// Set 里没有不代表不是好友（缓存可能没建），回源 DB
	var count int64
	err = r.db.WithContext(ctx).
		Model(&model.UserRelation{}).
		Where("user_uuid = ? AND peer_uuid = ? AND status = ?", userUUID, peerUUID, model.RelationStatusFriend).
		Count(&count).
		Error
	if err != nil {
		return false, WrapDBError(err)
	}
	return count > 0, nil
}

// GetContactUUIDs 获取联系人 UUID 列表
func (r *relationRepositoryImpl) GetContactUUIDs(ctx context.Context, userUUID string) ([]string, error) {
	return r.getRelationSet(ctx, userUUID, model.RelationStatusFriend, rediskey.ContactSetKey(userUUID))
}

// Block 拉黑（单向行）
func (r *relationRepositoryImpl) Block(ctx context.Context, userUUID, peerUUID string) error {
	row := model.UserRelation{UserUuid: userUUID, PeerUuid: peerUUID, Status: model.RelationStatusBlocked}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return WrapDBError(err)
	}

	r.cacheSAdd(ctx, rediskey.BlockSetKey(userUUID), peerUUID, "RelationRepository.Block")
	return nil
}

// Unblock 取消拉黑
func (r *relationRepositoryImpl) Unblock(ctx context.Context, userUUID, peerUUID string) error {
	err := r.db.WithContext(ctx).Unscoped().
		Where("user_uuid = ? AND peer_uuid = ? AND status = ?", userUUID, peerUUID, model.RelationStatusBlocked).
		Delete(&model.UserRelation{}).
		Error
	if err != nil {
		return WrapDBError(err)
	}

	r.cacheSRem(ctx, rediskey.BlockSetKey(userUUID), peerUUID, "RelationRepository.Unblock")
	return nil
}

// IsBlocked userUUID 是否拉黑了 peerUUID
func (r *relationRepositoryImpl) IsBlocked(ctx context.Context, userUUID, peerUUID string) (bool, error) {
	cacheKey := rediskey.BlockSetKey(userUUID)
	isMember, err := r.redisClient.SIsMember(ctx, cacheKey, peerUUID).Result()
	if err == nil && isMember {
		return true, nil
	}
	if err != nil {
		LogRedisError(ctx, err)
	}

	var count int64
	err = r.db.WithContext(ctx).
		Model(&model.UserRelation{}).
		Where("user_uuid = ? AND peer_uuid = ? AND status = ?", userUUID, peerUUID, model.RelationStatusBlocked).
		Count(&count).
		Error
	if err != nil {
		return false, WrapDBError(err)
	}
	return count > 0, nil
}

// GetBlockedUUIDs 获取黑名单 UUID 列表
func (r *relationRepositoryImpl) GetBlockedUUIDs(ctx context.Context, userUUID string) ([]string, error) {
	return r.getRelationSet(ctx, userUUID, model.RelationStatusBlocked, rediskey.BlockSetKey(userUUID))
}

// getRelationSet 读某状态下的对端列表：优先 Redis Set，未建则回源 DB 并异步重建。
func (r *relationRepositoryImpl) getRelationSet(ctx context.Context, userUUID string, status int8, cacheKey string) ([]string, error) {
	members, err := r.redisClient.SMembers(ctx, cacheKey).Result()
	if err == nil && len(members) > 0 {
		// 空占位成员表示"确认为空集"
		if len(members) == 1 && members[0] == "__empty__" {
			return []string{}, nil
		}
		return members, nil
	}
	if err != nil {
		LogRedisError(ctx, err)
	}

	var peers []string
	err = r.db.WithContext(ctx).
		Model(&model.UserRelation{}).
		Where("user_uuid = ? AND status = ?", userUUID, status).
		Order("updated_at DESC").
		Pluck("peer_uuid", &peers).
		Error
	if err != nil {
		return nil, WrapDBError(err)
	}

	// 异步重建缓存。空集写占位成员，防穿透
	async.RunSafe(ctx, func(runCtx context.Context) {
		pipe := r.redisClient.Pipeline()
		if len(peers) == 0 {
			pipe.SAdd(runCtx, cacheKey, "__empty__")
			pipe.Expire(runCtx, cacheKey, getRandomExpireTime(rediskey.ContactSetEmptyTTL))
		} else {
			args := make([]interface{}, 0, len(peers))
			for _, p := range peers {
				args = append(args, p)
			}
			pipe.SAdd(runCtx, cacheKey, args...)
			pipe.Expire(runCtx, cacheKey, getRandomExpireTime(rediskey.ContactSetTTL))
		}
		if _, err := pipe.Exec(runCtx); err != nil {
			LogRedisError(runCtx, err)
		}
	}, 0)

	return peers, nil
}

// cacheSAdd 向关系 Set 加成员（key 不存在时跳过，等读路径重建），失败发补偿任务。
func (r *relationRepositoryImpl) cacheSAdd(ctx context.Context, cacheKey, member, source string) {
	exists, err := r.redisClient.Exists(ctx, cacheKey).Result()
	if err != nil {
		task := mq.BuildSAddTask(cacheKey, member).WithSource(source)
		LogAndRetryRedisError(ctx, task, err)
		return
	}
	if exists == 0 {
		return
	}

	pipe := r.redisClient.Pipeline()
	pipe.SAdd(ctx, cacheKey, member)
	pipe.SRem(ctx, cacheKey, "__empty__")
	if _, err := pipe.Exec(ctx); err != nil {
		task := mq.BuildSAddTask(cacheKey, member).WithSource(source)
		LogAndRetryRedisError(ctx, task, err)
	}
}

// cacheSRem 从关系 Set 删成员，失败发补偿任务。
func (r *relationRepositoryImpl) cacheSRem(ctx context.Context, cacheKey, member, source string) {
	if err := r.redisClient.SRem(ctx, cacheKey, member).Err(); err != nil {
		task := mq.BuildSRemTask(cacheKey, member).WithSource(source)
		LogAndRetryRedisError(ctx, task, err)
	}
}

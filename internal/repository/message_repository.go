package repository

import (
	"context"
	"errors"

	"AiBeiTongServer/model"

	"gorm.io/gorm"
)

// messageRepositoryImpl 单聊消息数据访问层实现
type messageRepositoryImpl struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息仓储实例
func NewMessageRepository(db *gorm.DB) IMessageRepository {
	return &messageRepositoryImpl{db: db}
}

// Create 落库一条消息
func (r *messageRepositoryImpl) Create(ctx context.Context, msg *model.Message) (*model.Message, error) {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return msg, nil
}

// GetByUUID 查询消息
func (r *messageRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*model.Message, error) {
	var msg model.Message
	err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, WrapDBError(err)
	}
	return &msg, nil
}

// ListBetween 查询两人之间的消息（时间正序）。
// 带 limit 时要的是最新的 N 条，先倒序截断再翻回正序。
func (r *messageRepositoryImpl) ListBetween(ctx context.Context, userUUID, peerUUID string, limit int) ([]*model.Message, error) {
	query := r.db.WithContext(ctx).
		Where("(from_uuid = ? AND to_uuid = ?) OR (from_uuid = ? AND to_uuid = ?)",
			userUUID, peerUUID, peerUUID, userUUID)
	if limit > 0 {
		query = query.Order("created_at DESC, id DESC").Limit(limit)
	} else {
		query = query.Order("created_at ASC, id ASC")
	}

	var msgs []*model.Message
	if err := query.Find(&msgs).Error; err != nil {
		return nil, WrapDBError(err)
	}
	if limit > 0 {
		for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
			msgs[i], msgs[j] = msgs[j], msgs[i]
		}
	}
	return msgs, nil
}

// ListLatestByPeer 每个会话对端的最新一条消息（按消息时间倒序）。
// 用 id 代替时间做分组上界，同表自增 id 与写入顺序一致。
func (r *messageRepositoryImpl) ListLatestByPeer(ctx context.Context, userUUID string) ([]*model.Message, error) {
	var msgs []*model.Message
	err := r.db.WithContext(ctx).Raw(`
		SELECT * FROM message WHERE id IN (
			SELECT MAX(id) FROM message
			WHERE from_uuid = ? OR to_uuid = ?
			GROUP BY IF(from_uuid = ?, to_uuid, from_uuid)
		) ORDER BY id DESC`,
		userUUID, userUUID, userUUID,
	).Scan(&msgs).Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return msgs, nil
}

// Recall 撤回：清空正文并把类型置为已撤回
func (r *messageRepositoryImpl) Recall(ctx context.Context, uuid string) error {
	err := r.db.WithContext(ctx).
		Model(&model.Message{}).
		Where("uuid = ?", uuid).
		Updates(map[string]interface{}{
			"content": "",
			"type":    model.MessageTypeRecalled,
		}).
		Error
	if err != nil {
		return WrapDBError(err)
	}
	return nil
}

// Delete 硬删一条消息
func (r *messageRepositoryImpl) Delete(ctx context.Context, uuid string) error {
	err := r.db.WithContext(ctx).
		Where("uuid = ?", uuid).
		Delete(&model.Message{}).
		Error
	if err != nil {
		return WrapDBError(err)
	}
	return nil
}

package repository

import (
	"context"
	"errors"

	"AiBeiTongServer/model"

	"gorm.io/gorm"
)

// friendRequestRepositoryImpl 好友申请数据访问层实现
type friendRequestRepositoryImpl struct {
	db *gorm.DB
}

// NewFriendRequestRepository 创建好友申请仓储实例
func NewFriendRequestRepository(db *gorm.DB) IFriendRequestRepository {
	return &friendRequestRepositoryImpl{db: db}
}

// Create 创建好友申请
func (r *friendRequestRepositoryImpl) Create(ctx context.Context, req *model.FriendRequest) (*model.FriendRequest, error) {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return req, nil
}

// GetByUUID 根据 UUID 查询申请
func (r *friendRequestRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*model.FriendRequest, error) {
	var req model.FriendRequest
	err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&req).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, WrapDBError(err)
	}
	return &req, nil
}

// GetPendingByTo 查询收到的待处理申请（时间倒序）
func (r *friendRequestRepositoryImpl) GetPendingByTo(ctx context.Context, toUUID string) ([]*model.FriendRequest, error) {
	var reqs []*model.FriendRequest
	err := r.db.WithContext(ctx).
		Where("to_uuid = ? AND status = ?", toUUID, model.RequestStatusPending).
		Order("created_at DESC").
		Find(&reqs).
		Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return reqs, nil
}

// GetPendingBetween 查询 from->to 方向的待处理申请
func (r *friendRequestRepositoryImpl) GetPendingBetween(ctx context.Context, fromUUID, toUUID string) (*model.FriendRequest, error) {
	var req model.FriendRequest
	err := r.db.WithContext(ctx).
		Where("from_uuid = ? AND to_uuid = ? AND status = ?", fromUUID, toUUID, model.RequestStatusPending).
		First(&req).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, WrapDBError(err)
	}
	return &req, nil
}

// UpdateStatus 更新申请状态
func (r *friendRequestRepositoryImpl) UpdateStatus(ctx context.Context, uuid string, status int8) error {
	err := r.db.WithContext(ctx).
		Model(&model.FriendRequest{}).
		Where("uuid = ?", uuid).
		Update("status", status).
		Error
	if err != nil {
		return WrapDBError(err)
	}
	return nil
}

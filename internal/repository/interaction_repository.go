package repository

import (
	"context"
	"errors"
	"time"

	"AiBeiTongServer/model"

	"gorm.io/gorm"
)

// interactionRepositoryImpl 收藏与置顶数据访问层实现
type interactionRepositoryImpl struct {
	db *gorm.DB
}

// NewInteractionRepository 创建互动仓储实例
func NewInteractionRepository(db *gorm.DB) IInteractionRepository {
	return &interactionRepositoryImpl{db: db}
}

// ToggleFavorite 收藏/取消收藏
func (r *interactionRepositoryImpl) ToggleFavorite(ctx context.Context, userUUID, itemUUID, itemType string) (bool, error) {
	var favorited bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.FavoriteItem
		err := tx.Where("user_uuid = ? AND item_uuid = ? AND item_type = ?", userUUID, itemUUID, itemType).
			First(&existing).Error
		switch {
		case err == nil:
			favorited = false
			return tx.Where("user_uuid = ? AND item_uuid = ? AND item_type = ?", userUUID, itemUUID, itemType).
				Delete(&model.FavoriteItem{}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			favorited = true
			row := model.FavoriteItem{UserUuid: userUUID, ItemUuid: itemUUID, ItemType: itemType}
			return tx.Create(&row).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, WrapDBError(err)
	}
	return favorited, nil
}

// ListFavorites 查询收藏列表（收藏时间倒序）
func (r *interactionRepositoryImpl) ListFavorites(ctx context.Context, userUUID string) ([]*model.FavoriteItem, error) {
	var items []*model.FavoriteItem
	err := r.db.WithContext(ctx).
		Where("user_uuid = ?", userUUID).
		Order("created_at DESC, id DESC").
		Find(&items).
		Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return items, nil
}

// TogglePin 置顶/取消置顶会话
func (r *interactionRepositoryImpl) TogglePin(ctx context.Context, userUUID, peerUUID string) (bool, error) {
	var pinned bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.PinnedChat
		err := tx.Where("user_uuid = ? AND peer_uuid = ?", userUUID, peerUUID).First(&existing).Error
		switch {
		case err == nil:
			pinned = false
			return tx.Where("user_uuid = ? AND peer_uuid = ?", userUUID, peerUUID).
				Delete(&model.PinnedChat{}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			pinned = true
			row := model.PinnedChat{UserUuid: userUUID, PeerUuid: peerUUID, PinnedAt: time.Now()}
			return tx.Create(&row).Error
		default:
			return err
		}
	})
	if err != nil {
		return false, WrapDBError(err)
	}
	return pinned, nil
}

// ListPins 查询置顶会话，新置顶在前
func (r *interactionRepositoryImpl) ListPins(ctx context.Context, userUUID string) ([]*model.PinnedChat, error) {
	var pins []*model.PinnedChat
	err := r.db.WithContext(ctx).
		Where("user_uuid = ?", userUUID).
		Order("pinned_at DESC, id DESC").
		Find(&pins).
		Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return pins, nil
}

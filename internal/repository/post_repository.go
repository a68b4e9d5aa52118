package repository

import (
	"context"
	"errors"

	"AiBeiTongServer/model"

	"gorm.io/gorm"
)

// postRepositoryImpl 帖子数据访问层实现。
// 点赞/评论计数是冗余列，所有变更都在同一事务里按明细表重算回填，
// 保证计数永远等于明细行数。
type postRepositoryImpl struct {
	db *gorm.DB
}

// NewPostRepository 创建帖子仓储实例
func NewPostRepository(db *gorm.DB) IPostRepository {
	return &postRepositoryImpl{db: db}
}

// Create 创建帖子
func (r *postRepositoryImpl) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return post, nil
}

// GetByUUID 查询帖子
func (r *postRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, WrapDBError(err)
	}
	return &post, nil
}

// List 按创建时间倒序拉取帖子流
func (r *postRepositoryImpl) List(ctx context.Context, limit, offset int) ([]*model.Post, error) {
	if limit <= 0 {
		limit = 20
	}

	var posts []*model.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).
		Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return posts, nil
}

// ListByUser 查询某用户的帖子（时间倒序）
func (r *postRepositoryImpl) ListByUser(ctx context.Context, userUUID string, limit int) ([]*model.Post, error) {
	query := r.db.WithContext(ctx).
		Where("user_uuid = ?", userUUID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var posts []*model.Post
	if err := query.Find(&posts).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return posts, nil
}

// Delete 删除帖子并级联删除评论与点赞（硬删）
func (r *postRepositoryImpl) Delete(ctx context.Context, uuid string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_uuid = ?", uuid).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_uuid = ?", uuid).Delete(&model.PostLike{}).Error; err != nil {
			return err
		}
		return tx.Where("uuid = ?", uuid).Delete(&model.Post{}).Error
	})
	if err != nil {
		return WrapDBError(err)
	}
	return nil
}

// AddComment 添加评论并重算帖子评论数
func (r *postRepositoryImpl) AddComment(ctx context.Context, comment *model.Comment) (*model.Comment, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return r.recountComments(tx, comment.PostUuid)
	})
	if err != nil {
		return nil, WrapDBError(err)
	}
	return comment, nil
}

// GetComment 查询评论
func (r *postRepositoryImpl) GetComment(ctx context.Context, uuid string) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, WrapDBError(err)
	}
	return &comment, nil
}

// DeleteComment 删除评论并重算帖子评论数
func (r *postRepositoryImpl) DeleteComment(ctx context.Context, uuid string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment model.Comment
		if err := tx.Where("uuid = ?", uuid).First(&comment).Error; err != nil {
			return err
		}
		if err := tx.Where("uuid = ?", uuid).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return r.recountComments(tx, comment.PostUuid)
	})
	if err != nil {
		return WrapDBError(err)
	}
	return nil
}

// ListComments 查询帖子评论（时间正序）
func (r *postRepositoryImpl) ListComments(ctx context.Context, postUUID string) ([]*model.Comment, error) {
	var comments []*model.Comment
	err := r.db.WithContext(ctx).
		Where("post_uuid = ?", postUUID).
		Order("created_at ASC, id ASC").
		Find(&comments).
		Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return comments, nil
}

// ToggleLike 点赞/取消点赞
func (r *postRepositoryImpl) ToggleLike(ctx context.Context, postUUID, userUUID string) (bool, int, error) {
	var liked bool
	var likeCount int

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.PostLike
		err := tx.Where("post_uuid = ? AND user_uuid = ?", postUUID, userUUID).First(&existing).Error
		switch {
		case err == nil:
			// 已赞，取消
			if err := tx.Where("post_uuid = ? AND user_uuid = ?", postUUID, userUUID).
				Delete(&model.PostLike{}).Error; err != nil {
				return err
			}
			liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			row := model.PostLike{PostUuid: postUUID, UserUuid: userUUID}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}

		if err := r.recountLikes(tx, postUUID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.PostLike{}).Where("post_uuid = ?", postUUID).Count(&count).Error; err != nil {
			return err
		}
		likeCount = int(count)
		return nil
	})
	if err != nil {
		return false, 0, WrapDBError(err)
	}
	return liked, likeCount, nil
}

// ListLikeUserUUIDs 查询点赞用户列表
func (r *postRepositoryImpl) ListLikeUserUUIDs(ctx context.Context, postUUID string) ([]string, error) {
	var uuids []string
	err := r.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_uuid = ?", postUUID).
		Order("created_at ASC").
		Pluck("user_uuid", &uuids).
		Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return uuids, nil
}

// recountComments 按评论明细重算帖子评论数
func (r *postRepositoryImpl) recountComments(tx *gorm.DB, postUUID string) error {
	return tx.Model(&model.Post{}).
		Where("uuid = ?", postUUID).
		Update("comment_count",
			tx.Model(&model.Comment{}).Select("COUNT(*)").Where("post_uuid = ?", postUUID),
		).Error
}

// recountLikes 按点赞明细重算帖子点赞数
func (r *postRepositoryImpl) recountLikes(tx *gorm.DB, postUUID string) error {
	return tx.Model(&model.Post{}).
		Where("uuid = ?", postUUID).
		Update("like_count",
			tx.Model(&model.PostLike{}).Select("COUNT(*)").Where("post_uuid = ?", postUUID),
		).Error
}

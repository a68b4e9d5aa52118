package repository

import (
	"context"
	"errors"

	"AiBeiTongServer/model"

	"gorm.io/gorm"
)

// jobRepositoryImpl 职位数据访问层实现
type jobRepositoryImpl struct {
	db *gorm.DB
}

// NewJobRepository 创建职位仓储实例
func NewJobRepository(db *gorm.DB) IJobRepository {
	return &jobRepositoryImpl{db: db}
}

// Create 发布职位
func (r *jobRepositoryImpl) Create(ctx context.Context, job *model.Job) (*model.Job, error) {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return job, nil
}

// GetByUUID 查询职位
func (r *jobRepositoryImpl) GetByUUID(ctx context.Context, uuid string) (*model.Job, error) {
	var job model.Job
	err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&job).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, WrapDBError(err)
	}
	return &job, nil
}

// List 按发布时间倒序拉取职位
// keyword 匹配职位名称/公司/标签，location 匹配工作地点，均为可选。
func (r *jobRepositoryImpl) List(ctx context.Context, keyword, location string, limit, offset int) ([]*model.Job, error) {
	if limit <= 0 {
		limit = 20
	}

	query := r.db.WithContext(ctx).Model(&model.Job{})
	if keyword != "" {
		pattern := "%" + keyword + "%"
		query = query.Where("title LIKE ? OR company LIKE ? OR tags LIKE ?", pattern, pattern, pattern)
	}
	if location != "" {
		query = query.Where("location LIKE ?", "%"+location+"%")
	}

	var jobs []*model.Job
	err := query.
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&jobs).
		Error
	if err != nil {
		return nil, WrapDBError(err)
	}
	return jobs, nil
}

// CreateApplication 创建投递记录
func (r *jobRepositoryImpl) CreateApplication(ctx context.Context, app *model.JobApplication) (*model.JobApplication, error) {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		return nil, WrapDBError(err)
	}
	return app, nil
}

// HasApplied 是否已投递
func (r *jobRepositoryImpl) HasApplied(ctx context.Context, jobUUID, userUUID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.JobApplication{}).
		Where("job_uuid = ? AND user_uuid = ?", jobUUID, userUUID).
		Count(&count).
		Error
	if err != nil {
		return false, WrapDBError(err)
	}
	return count > 0, nil
}

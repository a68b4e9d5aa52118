package service

import (
	"context"
	"errors"

	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/converter"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/repository"
	"AiBeiTongServer/pkg/errs"
	"AiBeiTongServer/pkg/logger"
)

// interactionServiceImpl 互动服务实现
type interactionServiceImpl struct {
	interactionRepo repository.IInteractionRepository
	userRepo        repository.IUserRepository
	postRepo        repository.IPostRepository
	jobRepo         repository.IJobRepository
}

// NewInteractionService 创建互动服务实例
func NewInteractionService(
	interactionRepo repository.IInteractionRepository,
	userRepo repository.IUserRepository,
	postRepo repository.IPostRepository,
	jobRepo repository.IJobRepository,
) InteractionService {
	return &interactionServiceImpl{
		interactionRepo: interactionRepo,
		userRepo:        userRepo,
		postRepo:        postRepo,
		jobRepo:         jobRepo,
	}
}

// ToggleFavorite 收藏/取消收藏
func (s *interactionServiceImpl) ToggleFavorite(ctx context.Context, userUUID string, req *dto.ToggleFavoriteRequest) (*dto.ToggleFavoriteResponse, error) {
	favorited, err := s.interactionRepo.ToggleFavorite(ctx, userUUID, req.ItemUUID, req.ItemType)
	if err != nil {
		logger.Error(ctx, "收藏切换失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}

	logger.Info(ctx, "收藏切换",
		logger.String("user", userUUID),
		logger.String("item", req.ItemUUID),
		logger.String("type", req.ItemType),
		logger.Bool("favorited", favorited),
	)
	return &dto.ToggleFavoriteResponse{Favorited: favorited}, nil
}

// GetFavorites 查询收藏列表
// 按条目类型回填帖子/职位详情，已删除的条目直接跳过。
func (s *interactionServiceImpl) GetFavorites(ctx context.Context, userUUID string) ([]*dto.FavoriteView, error) {
	items, err := s.interactionRepo.ListFavorites(ctx, userUUID)
	if err != nil {
		logger.Error(ctx, "查询收藏失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}

	views := make([]*dto.FavoriteView, 0, len(items))
	for _, item := range items {
		view := converter.FavoriteToView(item)
		switch item.ItemType {
		case "post":
			post, err := s.postRepo.GetByUUID(ctx, item.ItemUuid)
			if err != nil {
				if errors.Is(err, repository.ErrRecordNotFound) {
					continue
				}
				logger.Error(ctx, "查询收藏帖子失败", logger.ErrorField("error", err))
				return nil, errs.New(consts.CodeInternalError)
			}
			author, err := s.userRepo.GetByUUID(ctx, post.UserUuid)
			if err != nil {
				logger.Warn(ctx, "查询帖子作者失败", logger.ErrorField("error", err))
			}
			view.Post = converter.PostToView(post, author, false)
		case "job":
			job, err := s.jobRepo.GetByUUID(ctx, item.ItemUuid)
			if err != nil {
				if errors.Is(err, repository.ErrRecordNotFound) {
					continue
				}
				logger.Error(ctx, "查询收藏职位失败", logger.ErrorField("error", err))
				return nil, errs.New(consts.CodeInternalError)
			}
			publisher, err := s.userRepo.GetByUUID(ctx, job.UserUuid)
			if err != nil {
				logger.Warn(ctx, "查询职位发布人失败", logger.ErrorField("error", err))
			}
			view.Job = converter.JobToView(job, publisher)
		}
		views = append(views, view)
	}
	return views, nil
}

// TogglePin 置顶/取消置顶会话
func (s *interactionServiceImpl) TogglePin(ctx context.Context, userUUID string, req *dto.TogglePinRequest) (*dto.TogglePinResponse, error) {
	peer, err := s.userRepo.GetByUUID(ctx, req.PeerUUID)
	if err != nil {
		logger.Error(ctx, "查询用户失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	if peer == nil {
		return nil, errs.New(consts.CodeUserNotFound)
	}

	pinned, err := s.interactionRepo.TogglePin(ctx, userUUID, req.PeerUUID)
	if err != nil {
		logger.Error(ctx, "置顶切换失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	return &dto.TogglePinResponse{Pinned: pinned}, nil
}

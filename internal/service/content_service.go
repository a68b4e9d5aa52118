package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/converter"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/repository"
	"AiBeiTongServer/model"
	"AiBeiTongServer/pkg/errs"
	"AiBeiTongServer/pkg/logger"
	"AiBeiTongServer/pkg/util"
)

// 陌生人可见的动态条数上限
const strangerVisiblePosts = 10

// 运营公告。后台化之前先静态配置，发布时间取进程启动时刻
var newsItems = []*dto.NewsView{
	{
		UUID:      "n_1",
		Title:     "爱贝通(AiBeiTong) 正式上线公告",
		Source:    "官方团队",
		Image:     "https://images.unsplash.com/photo-1516321318423-f06f85e504b3?auto=format&fit=crop&w=200&q=80",
		Category:  "公告",
		CreatedAt: time.Now().UnixMilli(),
	},
}

// contentServiceImpl 内容服务实现
type contentServiceImpl struct {
	postRepo     repository.IPostRepository
	userRepo     repository.IUserRepository
	relationRepo repository.IRelationRepository
}

// NewContentService 创建内容服务实例
func NewContentService(
	postRepo repository.IPostRepository,
	userRepo repository.IUserRepository,
	relationRepo repository.IRelationRepository,
) ContentService {
	return &contentServiceImpl{
		postRepo:     postRepo,
		userRepo:     userRepo,
		relationRepo: relationRepo,
	}
}

// CreatePost 发布帖子
func (s *contentServiceImpl) CreatePost(ctx context.Context, userUUID string, req *dto.CreatePostRequest) (*dto.PostView, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errs.New(consts.CodePostContentEmpty)
	}

	// 分类由附件决定：有图为 image，无图为 text；显式 job 例外
	category := "text"
	if req.Image != "" {
		category = "image"
	}
	if req.Category == "job" {
		category = "job"
	}

	post := &model.Post{
		Uuid:     util.GenPrefixedID("p"),
		UserUuid: userUUID,
		Content:  content,
		Image:    req.Image,
		Category: category,
	}
	created, err := s.postRepo.Create(ctx, post)
	if err != nil {
		logger.Error(ctx, "创建帖子失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}

	author, err := s.userRepo.GetByUUID(ctx, userUUID)
	if err != nil {
		logger.Warn(ctx, "查询作者失败", logger.ErrorField("error", err))
	}

	logger.Info(ctx, "发布帖子",
		logger.String("post", created.Uuid),
		logger.String("user", userUUID),
		logger.String("category", category),
	)
	return converter.PostToView(created, author, false), nil
}

// GetPost 查询帖子详情（带评论与点赞状态）
func (s *contentServiceImpl) GetPost(ctx context.Context, selfUUID, postUUID string) (*dto.PostView, error) {
	post, err := s.loadPost(ctx, postUUID)
	if err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByUUID(ctx, post.UserUuid)
	if err != nil {
		logger.Warn(ctx, "查询作者失败", logger.ErrorField("error", err))
	}

	liked, err := s.hasLiked(ctx, postUUID, selfUUID)
	if err != nil {
		return nil, err
	}
	view := converter.PostToView(post, author, liked)

	// 评论与评论人
	comments, err := s.postRepo.ListComments(ctx, postUUID)
	if err != nil {
		logger.Error(ctx, "查询评论失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	commenterUUIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		commenterUUIDs = append(commenterUUIDs, c.UserUuid)
	}
	commenters, err := s.userRepo.BatchGetByUUIDs(ctx, commenterUUIDs)
	if err != nil {
		logger.Error(ctx, "批量查询用户失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	commenterMap := make(map[string]*model.UserInfo, len(commenters))
	for _, u := range commenters {
		commenterMap[u.Uuid] = u
	}
	views := make([]*dto.CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, converter.CommentToView(c, commenterMap[c.UserUuid]))
	}
	view.Comments = views

	return view, nil
}

// ListPosts 帖子流
func (s *contentServiceImpl) ListPosts(ctx context.Context, selfUUID string, limit, offset int) ([]*dto.PostView, error) {
	posts, err := s.postRepo.List(ctx, limit, offset)
	if err != nil {
		logger.Error(ctx, "查询帖子流失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	return s.buildPostViews(ctx, selfUUID, posts)
}

// ListUserPosts 某用户的帖子
// 陌生人访问时：允许看 10 条，关闭开关则拒绝。
func (s *contentServiceImpl) ListUserPosts(ctx context.Context, selfUUID, targetUUID string) ([]*dto.PostView, error) {
	limit := 0 // 0 表示不限

	if selfUUID != targetUUID {
		target, err := s.userRepo.GetByUUID(ctx, targetUUID)
		if err != nil {
			logger.Error(ctx, "查询用户失败", logger.ErrorField("error", err))
			return nil, errs.New(consts.CodeInternalError)
		}
		if target == nil {
			return nil, errs.New(consts.CodeUserNotFound)
		}

		isFriend, err := s.relationRepo.IsFriend(ctx, selfUUID, targetUUID)
		if err != nil {
			logger.Error(ctx, "查询好友关系失败", logger.ErrorField("error", err))
			return nil, errs.New(consts.CodeInternalError)
		}
		if !isFriend {
			if !target.AllowStrangerView10 {
				return nil, errs.New(consts.CodePermissionDeny)
			}
			limit = strangerVisiblePosts
		}
	}

	posts, err := s.postRepo.ListByUser(ctx, targetUUID, limit)
	if err != nil {
		logger.Error(ctx, "查询用户帖子失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	return s.buildPostViews(ctx, selfUUID, posts)
}

// DeletePost 删除帖子（仅作者），评论与点赞级联删除
func (s *contentServiceImpl) DeletePost(ctx context.Context, userUUID, postUUID string) error {
	post, err := s.loadPost(ctx, postUUID)
	if err != nil {
		return err
	}
	if post.UserUuid != userUUID {
		return errs.New(consts.CodePostNotOwned)
	}

	if err := s.postRepo.Delete(ctx, postUUID); err != nil {
		logger.Error(ctx, "删除帖子失败", logger.ErrorField("error", err))
		return errs.New(consts.CodeInternalError)
	}
	logger.Info(ctx, "删除帖子",
		logger.String("post", postUUID), logger.String("user", userUUID))
	return nil
}

// AddComment 添加评论
func (s *contentServiceImpl) AddComment(ctx context.Context, userUUID, postUUID string, req *dto.AddCommentRequest) (*dto.CommentView, error) {
	if _, err := s.loadPost(ctx, postUUID); err != nil {
		return nil, err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, errs.New(consts.CodePostContentEmpty)
	}

	comment := &model.Comment{
		Uuid:        util.GenPrefixedID("c"),
		PostUuid:    postUUID,
		UserUuid:    userUUID,
		Content:     content,
		ReplyToUuid: req.ReplyToUUID,
		ReplyToName: req.ReplyToName,
	}
	created, err := s.postRepo.AddComment(ctx, comment)
	if err != nil {
		logger.Error(ctx, "添加评论失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}

	author, err := s.userRepo.GetByUUID(ctx, userUUID)
	if err != nil {
		logger.Warn(ctx, "查询评论人失败", logger.ErrorField("error", err))
	}
	return converter.CommentToView(created, author), nil
}

// DeleteComment 删除评论（仅评论作者）
func (s *contentServiceImpl) DeleteComment(ctx context.Context, userUUID, commentUUID string) error {
	comment, err := s.postRepo.GetComment(ctx, commentUUID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return errs.New(consts.CodeCommentNotFound)
		}
		logger.Error(ctx, "查询评论失败", logger.ErrorField("error", err))
		return errs.New(consts.CodeInternalError)
	}

	if comment.UserUuid != userUUID {
		return errs.New(consts.CodeCommentNotOwned)
	}

	if err := s.postRepo.DeleteComment(ctx, commentUUID); err != nil {
		logger.Error(ctx, "删除评论失败", logger.ErrorField("error", err))
		return errs.New(consts.CodeInternalError)
	}
	return nil
}

// ToggleLike 点赞/取消点赞
func (s *contentServiceImpl) ToggleLike(ctx context.Context, userUUID, postUUID string) (*dto.ToggleLikeResponse, error) {
	if _, err := s.loadPost(ctx, postUUID); err != nil {
		return nil, err
	}

	liked, likeCount, err := s.postRepo.ToggleLike(ctx, postUUID, userUUID)
	if err != nil {
		logger.Error(ctx, "点赞切换失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	return &dto.ToggleLikeResponse{Liked: liked, LikeCount: likeCount}, nil
}

// ListNews 运营公告列表
func (s *contentServiceImpl) ListNews(_ context.Context) []*dto.NewsView {
	out := make([]*dto.NewsView, len(newsItems))
	copy(out, newsItems)
	return out
}

func (s *contentServiceImpl) loadPost(ctx context.Context, postUUID string) (*model.Post, error) {
	post, err := s.postRepo.GetByUUID(ctx, postUUID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, errs.New(consts.CodePostNotFound)
		}
		logger.Error(ctx, "查询帖子失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	return post, nil
}

func (s *contentServiceImpl) hasLiked(ctx context.Context, postUUID, userUUID string) (bool, error) {
	if userUUID == "" {
		return false, nil
	}
	likeUUIDs, err := s.postRepo.ListLikeUserUUIDs(ctx, postUUID)
	if err != nil {
		logger.Error(ctx, "查询点赞列表失败", logger.ErrorField("error", err))
		return false, errs.New(consts.CodeInternalError)
	}
	for _, uuid := range likeUUIDs {
		if uuid == userUUID {
			return true, nil
		}
	}
	return false, nil
}

// buildPostViews 批量组装帖子视图（作者 + 点赞状态）
func (s *contentServiceImpl) buildPostViews(ctx context.Context, selfUUID string, posts []*model.Post) ([]*dto.PostView, error) {
	authorUUIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		authorUUIDs = append(authorUUIDs, p.UserUuid)
	}
	authors, err := s.userRepo.BatchGetByUUIDs(ctx, authorUUIDs)
	if err != nil {
		logger.Error(ctx, "批量查询作者失败", logger.ErrorField("error", err))
		return nil, errs.New(consts.CodeInternalError)
	}
	authorMap := make(map[string]*model.UserInfo, len(authors))
	for _, u := range authors {
		authorMap[u.Uuid] = u
	}

	views := make([]*dto.PostView, 0, len(posts))
	for _, p := range posts {
		liked, err := s.hasLiked(ctx, p.Uuid, selfUUID)
		if err != nil {
			return nil, err
		}
		views = append(views, converter.PostToView(p, authorMap[p.UserUuid], liked))
	}
	return views, nil
}

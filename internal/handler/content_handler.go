package handler

import (
	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/middleware"
	"AiBeiTongServer/internal/service"
	"AiBeiTongServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// ContentHandler 帖子与评论处理器
type ContentHandler struct {
	contentService service.ContentService
}

// NewContentHandler 创建帖子与评论处理器
func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// CreatePost 发布帖子接口
// @Summary 发布帖子
// @Tags 内容接口
// @Accept json
// @Produce json
// @Param request body dto.CreatePostRequest true "发帖请求"
// @Success 200 {object} dto.PostView
// @Router /api/v1/auth/post [post]
func (h *ContentHandler) CreatePost(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	view, err := h.contentService.CreatePost(ctx, userUUID, &req)
	if err != nil {
		failWithError(c, ctx, "发布帖子", err)
		return
	}
	result.Success(c, view)
}

// ListPosts 帖子流
func (h *ContentHandler) ListPosts(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}
	if page.Limit == 0 {
		page.Limit = 20
	}

	views, err := h.contentService.ListPosts(ctx, userUUID, page.Limit, page.Offset)
	if err != nil {
		failWithError(c, ctx, "获取帖子流", err)
		return
	}
	result.Success(c, views)
}

// GetPost 帖子详情（带评论与点赞状态）
func (h *ContentHandler) GetPost(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	postUUID := c.Param("uuid")
	if postUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	view, err := h.contentService.GetPost(ctx, userUUID, postUUID)
	if err != nil {
		failWithError(c, ctx, "获取帖子详情", err)
		return
	}
	result.Success(c, view)
}

// ListUserPosts 某用户的帖子列表（陌生人受隐私设置限制）
func (h *ContentHandler) ListUserPosts(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	targetUUID := c.Param("uuid")
	if targetUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	views, err := h.contentService.ListUserPosts(ctx, userUUID, targetUUID)
	if err != nil {
		failWithError(c, ctx, "获取用户帖子", err)
		return
	}
	result.Success(c, views)
}

// DeletePost 删除帖子（仅作者）
func (h *ContentHandler) DeletePost(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	postUUID := c.Param("uuid")
	if postUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	if err := h.contentService.DeletePost(ctx, userUUID, postUUID); err != nil {
		failWithError(c, ctx, "删除帖子", err)
		return
	}
	result.Success(c, nil)
}

// AddComment 添加评论
func (h *ContentHandler) AddComment(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	postUUID := c.Param("uuid")
	if postUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	view, err := h.contentService.AddComment(ctx, userUUID, postUUID, &req)
	if err != nil {
		failWithError(c, ctx, "添加评论", err)
		return
	}
	result.Success(c, view)
}

// DeleteComment 删除评论（仅评论作者）
func (h *ContentHandler) DeleteComment(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	commentUUID := c.Param("uuid")
	if commentUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	if err := h.contentService.DeleteComment(ctx, userUUID, commentUUID); err != nil {
		failWithError(c, ctx, "删除评论", err)
		return
	}
	result.Success(c, nil)
}

// ToggleLike 点赞/取消点赞
// @Summary 点赞或取消点赞
// @Tags 内容接口
// @Produce json
// @Param uuid path string true "帖子UUID"
// @Success 200 {object} dto.ToggleLikeResponse
// @Router /api/v1/auth/post/{uuid}/like [post]
func (h *ContentHandler) ToggleLike(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	postUUID := c.Param("uuid")
	if postUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	resp, err := h.contentService.ToggleLike(ctx, userUUID, postUUID)
	if err != nil {
		failWithError(c, ctx, "点赞", err)
		return
	}
	result.Success(c, resp)
}

// ListNews 运营公告列表
func (h *ContentHandler) ListNews(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)
	result.Success(c, h.contentService.ListNews(ctx))
}

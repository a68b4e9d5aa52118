package handler

import (
	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/middleware"
	"AiBeiTongServer/internal/service"
	"AiBeiTongServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// InteractionHandler 收藏与会话置顶处理器
type InteractionHandler struct {
	interactionService service.InteractionService
}

// NewInteractionHandler 创建互动处理器
func NewInteractionHandler(interactionService service.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactionService: interactionService}
}

// ToggleFavorite 收藏/取消收藏
// @Summary 收藏或取消收藏
// @Tags 互动接口
// @Accept json
// @Produce json
// @Param request body dto.ToggleFavoriteRequest true "收藏请求"
// @Success 200 {object} dto.ToggleFavoriteResponse
// @Router /api/v1/auth/favorite [post]
func (h *InteractionHandler) ToggleFavorite(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.ToggleFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	resp, err := h.interactionService.ToggleFavorite(ctx, userUUID, &req)
	if err != nil {
		failWithError(c, ctx, "收藏", err)
		return
	}
	result.Success(c, resp)
}

// GetFavorites 收藏列表
func (h *InteractionHandler) GetFavorites(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	views, err := h.interactionService.GetFavorites(ctx, userUUID)
	if err != nil {
		failWithError(c, ctx, "获取收藏列表", err)
		return
	}
	result.Success(c, views)
}

// TogglePin 置顶/取消置顶会话
func (h *InteractionHandler) TogglePin(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.TogglePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	resp, err := h.interactionService.TogglePin(ctx, userUUID, &req)
	if err != nil {
		failWithError(c, ctx, "置顶会话", err)
		return
	}
	result.Success(c, resp)
}

package handler

import (
	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/middleware"
	"AiBeiTongServer/internal/service"
	"AiBeiTongServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// MessageHandler 单聊消息处理器
type MessageHandler struct {
	messageService service.MessageService
}

// NewMessageHandler 创建消息处理器
func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

// SendMessage 发送消息接口
// @Summary 发送消息
// @Tags 消息接口
// @Accept json
// @Produce json
// @Param request body dto.SendMessageRequest true "发送消息请求"
// @Success 200 {object} dto.MessageView
// @Router /api/v1/auth/message [post]
func (h *MessageHandler) SendMessage(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	view, err := h.messageService.SendMessage(ctx, userUUID, &req)
	if err != nil {
		failWithError(c, ctx, "发送消息", err)
		return
	}
	result.Success(c, view)
}

// GetMessages 两人会话消息（时间正序）
func (h *MessageHandler) GetMessages(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	peerUUID := c.Param("peer")
	if peerUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	var page dto.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	views, err := h.messageService.GetMessages(ctx, userUUID, peerUUID, page.Limit)
	if err != nil {
		failWithError(c, ctx, "获取会话消息", err)
		return
	}
	result.Success(c, views)
}

// RecallMessage 撤回消息（仅发送方，2分钟内）
func (h *MessageHandler) RecallMessage(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	messageUUID := c.Param("uuid")
	if messageUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	if err := h.messageService.RecallMessage(ctx, userUUID, messageUUID); err != nil {
		failWithError(c, ctx, "撤回消息", err)
		return
	}
	result.Success(c, nil)
}

// DeleteMessage 删除消息（仅发送方，且须已撤回）
func (h *MessageHandler) DeleteMessage(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	messageUUID := c.Param("uuid")
	if messageUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	if err := h.messageService.DeleteMessage(ctx, userUUID, messageUUID); err != nil {
		failWithError(c, ctx, "删除消息", err)
		return
	}
	result.Success(c, nil)
}

// GetConversations 会话列表（置顶在前）
func (h *MessageHandler) GetConversations(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	views, err := h.messageService.GetConversations(ctx, userUUID)
	if err != nil {
		failWithError(c, ctx, "获取会话列表", err)
		return
	}
	result.Success(c, views)
}

package handler

import (
	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/middleware"
	"AiBeiTongServer/internal/service"
	"AiBeiTongServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// FriendHandler 社交关系处理器
type FriendHandler struct {
	friendService service.FriendService
}

// NewFriendHandler 创建社交关系处理器
func NewFriendHandler(friendService service.FriendService) *FriendHandler {
	return &FriendHandler{friendService: friendService}
}

// SendFriendRequest 发送好友申请接口
// @Summary 发送好友申请
// @Tags 好友接口
// @Accept json
// @Produce json
// @Param request body dto.SendFriendRequestRequest true "好友申请请求"
// @Success 200 {object} dto.FriendStatusResponse
// @Router /api/v1/auth/friend/request [post]
func (h *FriendHandler) SendFriendRequest(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SendFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	resp, err := h.friendService.SendFriendRequest(ctx, userUUID, &req)
	if err != nil {
		failWithError(c, ctx, "发送好友申请", err)
		return
	}
	result.Success(c, resp)
}

// AcceptFriendRequest 同意好友申请
func (h *FriendHandler) AcceptFriendRequest(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	requestUUID := c.Param("uuid")
	if requestUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	if err := h.friendService.AcceptFriendRequest(ctx, userUUID, requestUUID); err != nil {
		failWithError(c, ctx, "同意好友申请", err)
		return
	}
	result.Success(c, nil)
}

// RejectFriendRequest 拒绝好友申请
func (h *FriendHandler) RejectFriendRequest(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	requestUUID := c.Param("uuid")
	if requestUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	if err := h.friendService.RejectFriendRequest(ctx, userUUID, requestUUID); err != nil {
		failWithError(c, ctx, "拒绝好友申请", err)
		return
	}
	result.Success(c, nil)
}

// GetPendingRequests 获取待处理申请列表
func (h *FriendHandler) GetPendingRequests(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	views, err := h.friendService.GetPendingRequests(ctx, userUUID)
	if err != nil {
		failWithError(c, ctx, "获取好友申请列表", err)
		return
	}
	result.Success(c, views)
}

// GetContacts 获取联系人列表
func (h *FriendHandler) GetContacts(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	views, err := h.friendService.GetContacts(ctx, userUUID)
	if err != nil {
		failWithError(c, ctx, "获取联系人列表", err)
		return
	}
	result.Success(c, views)
}

// RemoveContact 删除好友
func (h *FriendHandler) RemoveContact(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	peerUUID := c.Param("uuid")
	if peerUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	if err := h.friendService.RemoveContact(ctx, userUUID, peerUUID); err != nil {
		failWithError(c, ctx, "删除好友", err)
		return
	}
	result.Success(c, nil)
}

// CheckFriendStatus 查询与某人的关系状态
func (h *FriendHandler) CheckFriendStatus(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	peerUUID := c.Param("uuid")
	if peerUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	resp, err := h.friendService.CheckFriendStatus(ctx, userUUID, peerUUID)
	if err != nil {
		failWithError(c, ctx, "查询好友状态", err)
		return
	}
	result.Success(c, resp)
}

// Block 拉黑用户
func (h *FriendHandler) Block(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	peerUUID := c.Param("uuid")
	if peerUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	if err := h.friendService.Block(ctx, userUUID, peerUUID); err != nil {
		failWithError(c, ctx, "拉黑用户", err)
		return
	}
	result.Success(c, nil)
}

// Unblock 取消拉黑
func (h *FriendHandler) Unblock(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	peerUUID := c.Param("uuid")
	if peerUUID == "" {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	if err := h.friendService.Unblock(ctx, userUUID, peerUUID); err != nil {
		failWithError(c, ctx, "取消拉黑", err)
		return
	}
	result.Success(c, nil)
}

// GetBlockedUsers 获取黑名单列表
func (h *FriendHandler) GetBlockedUsers(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	views, err := h.friendService.GetBlockedUsers(ctx, userUUID)
	if err != nil {
		failWithError(c, ctx, "获取黑名单", err)
		return
	}
	result.Success(c, views)
}

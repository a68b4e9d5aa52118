package handler

import (
	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/middleware"
	"AiBeiTongServer/internal/service"
	"AiBeiTongServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户资料处理器
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler 创建用户资料处理器
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe 获取自己的资料（带隐私设置与联系人）
func (h *UserHandler) GetMe(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	view, err := h.userService.GetUser(ctx, userUUID, userUUID)
	if err != nil {
		failWithError(c, ctx, "获取个人资料", err)
		return
	}
	result.Success(c, view)
}

// GetUser 获取指定用户的资料
// @Summary 获取用户资料
// @Tags 用户接口
// @Produce json
// @Param uuid path string true "用户UUID"
// @Success 200 {object} dto.UserView
// @Router /api/v1/auth/user/{uuid} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
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

	view, err := h.userService.GetUser(ctx, userUUID, targetUUID)
	if err != nil {
		failWithError(c, ctx, "获取用户资料", err)
		return
	}
	result.Success(c, view)
}

// UpdateProfile 更新资料
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	view, err := h.userService.UpdateProfile(ctx, userUUID, &req)
	if err != nil {
		failWithError(c, ctx, "更新资料", err)
		return
	}
	result.Success(c, view)
}

// UpdatePrivacy 更新隐私设置（逐键合并）
func (h *UserHandler) UpdatePrivacy(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdatePrivacyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	view, err := h.userService.UpdatePrivacy(ctx, userUUID, &req)
	if err != nil {
		failWithError(c, ctx, "更新隐私设置", err)
		return
	}
	result.Success(c, view)
}

// SearchUsers 搜索用户
// @Summary 搜索用户
// @Tags 用户接口
// @Produce json
// @Param keyword query string true "关键词"
// @Param limit query int false "返回条数(默认20)"
// @Success 200 {array} dto.UserView
// @Router /api/v1/auth/user/search [get]
func (h *UserHandler) SearchUsers(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.SearchUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}
	if req.Limit == 0 {
		req.Limit = 20
	}

	views, err := h.userService.SearchUsers(ctx, userUUID, req.Keyword, req.Limit)
	if err != nil {
		failWithError(c, ctx, "搜索用户", err)
		return
	}
	result.Success(c, views)
}

// UploadAvatar 上传头像（multipart 表单，字段名 avatar）
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}
	defer file.Close()

	resp, err := h.userService.UploadAvatar(ctx, userUUID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		failWithError(c, ctx, "上传头像", err)
		return
	}
	result.Success(c, resp)
}

// UploadBackground 上传主页背景图（multipart 表单，字段名 background）
func (h *UserHandler) UploadBackground(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("background")
	if err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}
	defer file.Close()

	resp, err := h.userService.UploadBackground(ctx, userUUID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		file,
	)
	if err != nil {
		failWithError(c, ctx, "上传背景图", err)
		return
	}
	result.Success(c, resp)
}

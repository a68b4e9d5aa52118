package handler

import (
	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/middleware"
	"AiBeiTongServer/internal/service"
	"AiBeiTongServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register 注册接口
// @Summary 用户注册
// @Tags 认证接口
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册请求"
// @Success 200 {object} dto.RegisterResponse
// @Router /api/v1/public/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// 参数错误由客户端输入导致,属于正常业务流程,不记录日志
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	resp, err := h.authService.Register(ctx, &req)
	if err != nil {
		failWithError(c, ctx, "注册", err)
		return
	}
	result.Success(c, resp)
}

// Login 登录接口
// @Summary 用户登录
// @Tags 认证接口
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录请求"
// @Success 200 {object} dto.LoginResponse
// @Router /api/v1/public/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	resp, err := h.authService.Login(ctx, &req)
	if err != nil {
		failWithError(c, ctx, "登录", err)
		return
	}
	result.Success(c, resp)
}

// Logout 登出接口
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	userUUID, ok := currentUser(c)
	if !ok {
		return
	}
	deviceID, _ := middleware.GetDeviceID(c)

	if err := h.authService.Logout(ctx, userUUID, deviceID); err != nil {
		failWithError(c, ctx, "登出", err)
		return
	}
	result.Success(c, nil)
}

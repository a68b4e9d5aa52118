package dto

// ==================== 认证相关 DTO ====================

// RegisterRequest 注册请求 DTO
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=32"` // 登录名（必填）
	Password string `json:"password" binding:"required,min=6,max=64"` // 密码（必填）
	Nickname string `json:"nickname" binding:"omitempty,max=64"`      // 昵称（可选，默认取登录名）
}

// RegisterResponse 注册响应 DTO
type RegisterResponse struct {
	User *UserView `json:"user"` // 新建用户
}

// LoginRequest 登录请求 DTO
type LoginRequest struct {
	Username string `json:"username" binding:"required"`         // 登录名
	Password string `json:"password" binding:"required"`         // 密码
	DeviceID string `json:"deviceId" binding:"omitempty,max=64"` // 设备标识（可选，缺省 web）
}

// LoginResponse 登录响应 DTO
type LoginResponse struct {
	AccessToken string    `json:"accessToken"` // 访问令牌
	TokenType   string    `json:"tokenType"`   // 令牌类型
	ExpiresIn   int64     `json:"expiresIn"`   // 过期时间(秒)
	User        *UserView `json:"user"`        // 用户信息
}

package dto

// ==================== 用户资料相关 DTO ====================

// UpdateProfileRequest 更新资料请求 DTO
// 指针字段区分"未传"和"传了空值"，只更新传入的键。
type UpdateProfileRequest struct {
	Username        *string `json:"username" binding:"omitempty,min=2,max=32"` // 登录名（30天限改一次）
	Nickname        *string `json:"nickname" binding:"omitempty,max=64"`       // 昵称
	Title           *string `json:"title" binding:"omitempty,max=64"`          // 头衔
	Bio             *string `json:"bio" binding:"omitempty,max=255"`           // 简介
	Location        *string `json:"location" binding:"omitempty,max=64"`       // 所在地
	Phone           *string `json:"phone" binding:"omitempty,max=32"`          // 电话
	BackgroundImage *string `json:"backgroundImage" binding:"omitempty,max=255"` // 背景图
}

// UpdatePrivacyRequest 更新隐私设置请求 DTO（逐键合并）
type UpdatePrivacyRequest struct {
	AllowStrangerView10 *bool `json:"allowStrangerView10"` // 允许陌生人查看10条动态
	RequireFriendVerify *bool `json:"requireFriendVerify"` // 加好友需要验证
	VisibleToSearch     *bool `json:"visibleToSearch"`     // 允许被搜索到
}

// SearchUsersRequest 搜索用户请求 DTO
type SearchUsersRequest struct {
	Keyword string `form:"keyword" binding:"required,min=1,max=64"` // 关键词（昵称/登录名前缀）
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=50"`  // 返回条数
}

// UploadAvatarResponse 上传头像响应 DTO
type UploadAvatarResponse struct {
	Avatar string `json:"avatar"` // 新头像URL
}

// UploadBackgroundResponse 上传主页背景图响应 DTO
type UploadBackgroundResponse struct {
	BackgroundImage string `json:"backgroundImage"` // 新背景图URL
}

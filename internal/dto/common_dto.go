package dto

// ==================== 通用 DTO 定义 ====================

// UserView 用户信息视图（对外）
type UserView struct {
	UUID            string        `json:"uuid"`            // 用户UUID
	Username        string        `json:"username"`        // 登录名
	Nickname        string        `json:"nickname"`        // 昵称
	Avatar          string        `json:"avatar"`          // 头像
	BackgroundImage string        `json:"backgroundImage"` // 主页背景图
	Title           string        `json:"title"`           // 头衔/职位
	Bio             string        `json:"bio"`             // 个人简介
	Location        string        `json:"location"`        // 所在地
	Phone           string        `json:"phone"`           // 电话
	Privacy         *PrivacyView  `json:"privacy,omitempty"` // 隐私设置（仅本人可见）
	Contacts        []string      `json:"contacts,omitempty"` // 联系人UUID列表（仅本人可见）
}

// PrivacyView 隐私设置视图
type PrivacyView struct {
	AllowStrangerView10 bool `json:"allowStrangerView10"` // 允许陌生人查看10条动态
	RequireFriendVerify bool `json:"requireFriendVerify"` // 加好友需要验证
	VisibleToSearch     bool `json:"visibleToSearch"`     // 允许被搜索到
}

// PageRequest 分页参数
type PageRequest struct {
	Limit  int `form:"limit" binding:"omitempty,min=1,max=100"` // 每页条数
	Offset int `form:"offset" binding:"omitempty,min=0"`        // 偏移量
}

package dto

// ==================== 社交关系相关 DTO ====================

// SendFriendRequestRequest 发送好友申请请求 DTO
type SendFriendRequestRequest struct {
	ToUUID  string `json:"toUuid" binding:"required"`           // 接收人UUID
	Message string `json:"message" binding:"omitempty,max=255"` // 验证消息
}

// FriendRequestView 好友申请视图
type FriendRequestView struct {
	UUID      string    `json:"uuid"`      // 申请UUID
	From      *UserView `json:"from"`      // 申请人
	Message   string    `json:"message"`   // 验证消息
	Status    string    `json:"status"`    // pending/accepted/rejected
	CreatedAt int64     `json:"createdAt"` // 申请时间(unix毫秒)
}

// FriendStatusResponse 好友关系状态
// friend: 已是好友; pending: 有待处理申请(任一方向); none: 无关系
type FriendStatusResponse struct {
	Status string `json:"status"`
}

const (
	FriendStatusFriend  = "friend"
	FriendStatusPending = "pending"
	FriendStatusNone    = "none"
)

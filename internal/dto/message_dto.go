package dto

// ==================== 消息相关 DTO ====================

// SendMessageRequest 发送消息请求 DTO
type SendMessageRequest struct {
	ToUUID  string `json:"toUuid" binding:"required"`            // 接收人UUID
	Content string `json:"content" binding:"required,max=5000"` // 正文
}

// MessageView 消息视图
type MessageView struct {
	UUID      string `json:"uuid"`      // 消息UUID
	FromUUID  string `json:"fromUuid"`  // 发送方
	ToUUID    string `json:"toUuid"`    // 接收方
	Content   string `json:"content"`   // 正文（已撤回为空）
	Type      string `json:"type"`      // text/recalled
	CreatedAt int64  `json:"createdAt"` // 发送时间(unix毫秒)
}

// ConversationView 会话视图，置顶在前
type ConversationView struct {
	Peer        *UserView    `json:"peer"`        // 会话对端
	LastMessage *MessageView `json:"lastMessage"` // 最新一条消息
	Pinned      bool         `json:"pinned"`      // 是否置顶
}

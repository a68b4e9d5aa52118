package dto

// ==================== 互动相关 DTO ====================

// ToggleFavoriteRequest 收藏切换请求 DTO
type ToggleFavoriteRequest struct {
	ItemUUID string `json:"itemUuid" binding:"required"`            // 条目UUID
	ItemType string `json:"itemType" binding:"required,oneof=post job"` // 条目类型
}

// ToggleFavoriteResponse 收藏切换响应 DTO
type ToggleFavoriteResponse struct {
	Favorited bool `json:"favorited"` // 切换后的状态
}

// FavoriteView 收藏条目视图，按类型回填详情
type FavoriteView struct {
	ItemUUID  string    `json:"itemUuid"`       // 条目UUID
	ItemType  string    `json:"itemType"`       // 条目类型
	Post      *PostView `json:"post,omitempty"` // 帖子详情（itemType=post）
	Job       *JobView  `json:"job,omitempty"`  // 职位详情（itemType=job）
	CreatedAt int64     `json:"createdAt"`      // 收藏时间(unix毫秒)
}

// TogglePinRequest 会话置顶切换请求 DTO
type TogglePinRequest struct {
	PeerUUID string `json:"peerUuid" binding:"required"` // 会话对端UUID
}

// TogglePinResponse 会话置顶切换响应 DTO
type TogglePinResponse struct {
	Pinned bool `json:"pinned"` // 切换后的状态
}

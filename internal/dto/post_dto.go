package dto

// ==================== 内容相关 DTO ====================

// CreatePostRequest 发布帖子请求 DTO
type CreatePostRequest struct {
	Content  string `json:"content" binding:"required,max=5000"`                       // 正文
	Image    string `json:"image" binding:"omitempty,max=255"`                         // 配图URL
	Category string `json:"category" binding:"omitempty,oneof=text image video job"` // 分类，job 以外由附件推导
}

// AddCommentRequest 添加评论请求 DTO
type AddCommentRequest struct {
	Content     string `json:"content" binding:"required,max=1024"`     // 评论内容
	ReplyToUUID string `json:"replyToUuid" binding:"omitempty,max=24"`  // 被回复评论UUID（仅展示）
	ReplyToName string `json:"replyToName" binding:"omitempty,max=64"`  // 被回复人昵称（仅展示）
}

// PostView 帖子视图
type PostView struct {
	UUID         string         `json:"uuid"`         // 帖子UUID
	Author       *UserView      `json:"author"`       // 作者
	Content      string         `json:"content"`      // 正文
	Image        string         `json:"image"`        // 配图
	Category     string         `json:"category"`     // 分类
	LikeCount    int            `json:"likeCount"`    // 点赞数
	CommentCount int            `json:"commentCount"` // 评论数
	Liked        bool           `json:"liked"`        // 当前用户是否已赞
	Comments     []*CommentView `json:"comments,omitempty"` // 评论（详情页带）
	CreatedAt    int64          `json:"createdAt"`    // 发布时间(unix毫秒)
}

// CommentView 评论视图
type CommentView struct {
	UUID        string    `json:"uuid"`        // 评论UUID
	Author      *UserView `json:"author"`      // 评论人
	Content     string    `json:"content"`     // 内容
	ReplyToUUID string    `json:"replyToUuid,omitempty"` // 被回复评论UUID
	ReplyToName string    `json:"replyToName,omitempty"` // 被回复人昵称
	CreatedAt   int64     `json:"createdAt"`   // 评论时间(unix毫秒)
}

// ToggleLikeResponse 点赞切换响应 DTO
type ToggleLikeResponse struct {
	Liked     bool `json:"liked"`     // 切换后的状态
	LikeCount int  `json:"likeCount"` // 最新点赞数
}

// NewsView 运营公告条目
type NewsView struct {
	UUID      string `json:"uuid"`      // 公告UUID
	Title     string `json:"title"`     // 标题
	Source    string `json:"source"`    // 来源
	Image     string `json:"image"`     // 配图
	Category  string `json:"category"`  // 分类
	CreatedAt int64  `json:"createdAt"` // 发布时间(unix毫秒)
}

package service

import (
	"context"
	"io"

	"AiBeiTongServer/internal/dto"
)

// ==================== 认证服务 ====================

// AuthService 注册/登录/登出
type AuthService interface {
	// Register 注册新用户，落默认资料与隐私设置
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)

	// Login 密码登录，签发 Token 并写入 Redis
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)

	// Logout 登出，吊销当前设备 Token
	Logout(ctx context.Context, userUUID, deviceID string) error
}

// ==================== 用户服务 ====================

// UserService 资料与隐私
type UserService interface {
	// GetUser 查询用户。selfUUID 与目标一致时带隐私设置与联系人列表
	GetUser(ctx context.Context, selfUUID, targetUUID string) (*dto.UserView, error)

	// UpdateProfile 更新资料，username 改名受 30 天限流
	UpdateProfile(ctx context.Context, userUUID string, req *dto.UpdateProfileRequest) (*dto.UserView, error)

	// UpdatePrivacy 逐键合并隐私设置
	UpdatePrivacy(ctx context.Context, userUUID string, req *dto.UpdatePrivacyRequest) (*dto.UserView, error)

	// SearchUsers 搜索用户，隐藏不可被搜索的用户
	SearchUsers(ctx context.Context, selfUUID, keyword string, limit int) ([]*dto.UserView, error)

	// UploadAvatar 上传头像到对象存储并更新资料
	UploadAvatar(ctx context.Context, userUUID, filename, contentType string, size int64, reader io.Reader) (*dto.UploadAvatarResponse, error)

	// UploadBackground 上传主页背景图到对象存储并更新资料
	UploadBackground(ctx context.Context, userUUID, filename, contentType string, size int64, reader io.Reader) (*dto.UploadBackgroundResponse, error)
}

// ==================== 社交关系服务 ====================

// FriendService 好友申请/关系/黑名单
type FriendService interface {
	// SendFriendRequest 发送好友申请，落 pending 等对方处理
	SendFriendRequest(ctx context.Context, fromUUID string, req *dto.SendFriendRequestRequest) (*dto.FriendStatusResponse, error)

	// AcceptFriendRequest 同意申请并建立双向好友关系
	AcceptFriendRequest(ctx context.Context, userUUID, requestUUID string) error

	// RejectFriendRequest 拒绝申请
	RejectFriendRequest(ctx context.Context, userUUID, requestUUID string) error

	// GetPendingRequests 查询收到的待处理申请
	GetPendingRequests(ctx context.Context, userUUID string) ([]*dto.FriendRequestView, error)

	// RemoveContact 删除好友（双向）
	RemoveContact(ctx context.Context, userUUID, peerUUID string) error

	// GetContacts 查询联系人列表
	GetContacts(ctx context.Context, userUUID string) ([]*dto.UserView, error)

	// CheckFriendStatus 查询与某人的关系状态。
	// 优先级: friend > pending(任一方向) > none
	CheckFriendStatus(ctx context.Context, userUUID, peerUUID string) (*dto.FriendStatusResponse, error)

	// Block 拉黑。若是好友先解除好友关系
	Block(ctx context.Context, userUUID, peerUUID string) error

	// Unblock 取消拉黑
	Unblock(ctx context.Context, userUUID, peerUUID string) error

	// GetBlockedUsers 查询黑名单
	GetBlockedUsers(ctx context.Context, userUUID string) ([]*dto.UserView, error)
}

// ==================== 内容服务 ====================

// ContentService 帖子与评论
type ContentService interface {
	// CreatePost 发布帖子。分类按附件推导为 text/image，显式 job 例外
	CreatePost(ctx context.Context, userUUID string, req *dto.CreatePostRequest) (*dto.PostView, error)

	// GetPost 查询帖子详情（带评论与点赞状态）
	GetPost(ctx context.Context, selfUUID, postUUID string) (*dto.PostView, error)

	// ListPosts 帖子流（时间倒序）
	ListPosts(ctx context.Context, selfUUID string, limit, offset int) ([]*dto.PostView, error)

	// ListUserPosts 某用户的帖子。陌生人访问受隐私设置限制
	ListUserPosts(ctx context.Context, selfUUID, targetUUID string) ([]*dto.PostView, error)

	// DeletePost 删除帖子（仅作者）
	DeletePost(ctx context.Context, userUUID, postUUID string) error

	// AddComment 添加评论
	AddComment(ctx context.Context, userUUID, postUUID string, req *dto.AddCommentRequest) (*dto.CommentView, error)

	// DeleteComment 删除评论（仅评论作者）
	DeleteComment(ctx context.Context, userUUID, commentUUID string) error

	// ToggleLike 点赞/取消点赞
	ToggleLike(ctx context.Context, userUUID, postUUID string) (*dto.ToggleLikeResponse, error)

	// ListNews 运营公告列表（静态配置）
	ListNews(ctx context.Context) []*dto.NewsView
}

// ==================== 互动服务 ====================

// InteractionService 收藏与会话置顶
type InteractionService interface {
	// ToggleFavorite 收藏/取消收藏
	ToggleFavorite(ctx context.Context, userUUID string, req *dto.ToggleFavoriteRequest) (*dto.ToggleFavoriteResponse, error)

	// GetFavorites 查询收藏列表
	GetFavorites(ctx context.Context, userUUID string) ([]*dto.FavoriteView, error)

	// TogglePin 置顶/取消置顶会话
	TogglePin(ctx context.Context, userUUID string, req *dto.TogglePinRequest) (*dto.TogglePinResponse, error)
}

// ==================== 消息服务 ====================

// MessageService 单聊消息与会话列表
type MessageService interface {
	// SendMessage 发送消息。被对方拉黑时静默落库但对方不可见（原型简化：直接拒绝）
	SendMessage(ctx context.Context, fromUUID string, req *dto.SendMessageRequest) (*dto.MessageView, error)

	// GetMessages 两人会话消息（时间正序）
	GetMessages(ctx context.Context, userUUID, peerUUID string, limit int) ([]*dto.MessageView, error)

	// RecallMessage 撤回（仅发送方，2 分钟内）
	RecallMessage(ctx context.Context, userUUID, messageUUID string) error

	// DeleteMessage 硬删（仅发送方）
	DeleteMessage(ctx context.Context, userUUID, messageUUID string) error

	// GetConversations 会话列表：对端只从消息推导；置顶在前（按置顶时间倒序），其余按最新消息倒序
	GetConversations(ctx context.Context, userUUID string) ([]*dto.ConversationView, error)
}

// ==================== 职位服务 ====================

// JobService 职位发布与投递
type JobService interface {
	// ListJobs 职位列表（发布时间倒序），支持关键词与地点筛选
	ListJobs(ctx context.Context, req *dto.ListJobsRequest) ([]*dto.JobView, error)

	// GetJob 职位详情
	GetJob(ctx context.Context, jobUUID string) (*dto.JobView, error)

	// CreateJob 发布职位
	CreateJob(ctx context.Context, userUUID string, req *dto.CreateJobRequest) (*dto.JobView, error)

	// ApplyJob 投递职位，成功后异步给发布方邮箱发通知
	ApplyJob(ctx context.Context, userUUID, jobUUID string, req *dto.ApplyJobRequest) (*dto.ApplyJobResponse, error)
}

// ==================== AI 服务 ====================

// AIService 文本生成边界。生成失败不报错，返回固定兜底文案。
type AIService interface {
	// GenerateBio 按关键词生成个人简介
	GenerateBio(ctx context.Context, req *dto.GenerateBioRequest) *dto.GenerateTextResponse

	// GenerateJobDescription 生成职位描述
	GenerateJobDescription(ctx context.Context, req *dto.GenerateJobDescriptionRequest) *dto.GenerateTextResponse

	// AnalyzeResume 分析简历，返回结构化建议
	AnalyzeResume(ctx context.Context, req *dto.AnalyzeResumeRequest) *dto.ResumeAnalysisResponse
}

package repository

import (
	"context"
	"time"

	"AiBeiTongServer/model"
)

// ==================== 认证相关 Repository ====================

// IAuthRepository 认证相关数据访问接口
type IAuthRepository interface {
	// GetByUsername 根据登录名查询用户
	GetByUsername(ctx context.Context, username string) (*model.UserInfo, error)

	// ExistsByUsername 检查登录名是否已被占用
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// Create 创建新用户
	Create(ctx context.Context, user *model.UserInfo) (*model.UserInfo, error)

	// StoreAccessToken 存储 AccessToken 到 Redis（带过期时间）
	StoreAccessToken(ctx context.Context, userUUID, deviceID, token string, expire time.Duration) error

	// GetAccessToken 查询 AccessToken（鉴权时比对）
	GetAccessToken(ctx context.Context, userUUID, deviceID string) (string, error)

	// DeleteAccessToken 删除 AccessToken（登出）
	DeleteAccessToken(ctx context.Context, userUUID, deviceID string) error
}

// ==================== 用户信息 Repository ====================

// IUserRepository 用户信息数据访问接口
type IUserRepository interface {
	// GetByUUID 根据 UUID 查询用户（L1 LRU + Redis + MySQL 三级）
	GetByUUID(ctx context.Context, uuid string) (*model.UserInfo, error)

	// BatchGetByUUIDs 批量查询用户，结果按传入顺序，不存在的跳过
	BatchGetByUUIDs(ctx context.Context, uuids []string) ([]*model.UserInfo, error)

	// UpdateProfile 更新资料字段（只更新传入的键）
	UpdateProfile(ctx context.Context, userUUID string, updates map[string]interface{}) error

	// UpdateAvatar 更新头像
	UpdateAvatar(ctx context.Context, userUUID, avatar string) error

	// Search 按昵称/登录名前缀搜索，隐藏 visible_to_search=false 的用户
	Search(ctx context.Context, keyword string, limit int) ([]*model.UserInfo, error)
}

// ==================== 社交关系 Repository ====================

// IRelationRepository 好友关系与黑名单数据访问接口
type IRelationRepository interface {
	// CreateFriendPair 建立好友关系（对称写 A->B 与 B->A 两行，同一事务）
	CreateFriendPair(ctx context.Context, userUUID, peerUUID string) error

	// DeleteFriendPair 解除好友关系（双向删除，同一事务）
	DeleteFriendPair(ctx context.Context, userUUID, peerUUID string) error

	// IsFriend 是否为好友
	IsFriend(ctx context.Context, userUUID, peerUUID string) (bool, error)

	// GetContactUUIDs 获取联系人 UUID 列表（Redis Set 缓存）
	GetContactUUIDs(ctx context.Context, userUUID string) ([]string, error)

	// Block 拉黑（单向）
	Block(ctx context.Context, userUUID, peerUUID string) error

	// Unblock 取消拉黑
	Unblock(ctx context.Context, userUUID, peerUUID string) error

	// IsBlocked userUUID 是否拉黑了 peerUUID
	IsBlocked(ctx context.Context, userUUID, peerUUID string) (bool, error)

	// GetBlockedUUIDs 获取黑名单 UUID 列表
	GetBlockedUUIDs(ctx context.Context, userUUID string) ([]string, error)
}

// IFriendRequestRepository 好友申请数据访问接口
type IFriendRequestRepository interface {
	// Create 创建好友申请
	Create(ctx context.Context, req *model.FriendRequest) (*model.FriendRequest, error)

	// GetByUUID 根据 UUID 查询申请
	GetByUUID(ctx context.Context, uuid string) (*model.FriendRequest, error)

	// GetPendingByTo 查询收到的待处理申请（按时间倒序）
	GetPendingByTo(ctx context.Context, toUUID string) ([]*model.FriendRequest, error)

	// GetPendingBetween 查询 from->to 方向的待处理申请
	GetPendingBetween(ctx context.Context, fromUUID, toUUID string) (*model.FriendRequest, error)

	// UpdateStatus 更新申请状态
	UpdateStatus(ctx context.Context, uuid string, status int8) error
}

// ==================== 内容 Repository ====================

// IPostRepository 帖子数据访问接口
type IPostRepository interface {
	// Create 创建帖子
	Create(ctx context.Context, post *model.Post) (*model.Post, error)

	// GetByUUID 查询帖子
	GetByUUID(ctx context.Context, uuid string) (*model.Post, error)

	// List 按创建时间倒序拉取帖子流
	List(ctx context.Context, limit, offset int) ([]*model.Post, error)

	// ListByUser 查询某用户的帖子（时间倒序）
	ListByUser(ctx context.Context, userUUID string, limit int) ([]*model.Post, error)

	// Delete 删除帖子并级联删除其评论与点赞（硬删，同一事务）
	Delete(ctx context.Context, uuid string) error

	// AddComment 添加评论并在同事务内重算帖子评论数
	AddComment(ctx context.Context, comment *model.Comment) (*model.Comment, error)

	// GetComment 查询评论
	GetComment(ctx context.Context, uuid string) (*model.Comment, error)

	// DeleteComment 删除评论并在同事务内重算帖子评论数
	DeleteComment(ctx context.Context, uuid string) error

	// ListComments 查询帖子评论（时间正序）
	ListComments(ctx context.Context, postUUID string) ([]*model.Comment, error)

	// ToggleLike 点赞/取消点赞，同事务内按明细重算点赞数。
	// 返回切换后的状态与最新计数。
	ToggleLike(ctx context.Context, postUUID, userUUID string) (liked bool, likeCount int, err error)

	// ListLikeUserUUIDs 查询点赞用户列表
	ListLikeUserUUIDs(ctx context.Context, postUUID string) ([]string, error)
}

// ==================== 互动 Repository ====================

// IInteractionRepository 收藏与置顶数据访问接口
type IInteractionRepository interface {
	// ToggleFavorite 收藏/取消收藏，返回切换后的状态
	ToggleFavorite(ctx context.Context, userUUID, itemUUID, itemType string) (favorited bool, err error)

	// ListFavorites 查询收藏列表（收藏时间倒序）
	ListFavorites(ctx context.Context, userUUID string) ([]*model.FavoriteItem, error)

	// TogglePin 置顶/取消置顶会话，返回切换后的状态
	TogglePin(ctx context.Context, userUUID, peerUUID string) (pinned bool, err error)

	// ListPins 查询置顶会话（置顶时间倒序，新置顶在前）
	ListPins(ctx context.Context, userUUID string) ([]*model.PinnedChat, error)
}

// ==================== 消息 Repository ====================

// IMessageRepository 单聊消息数据访问接口
type IMessageRepository interface {
	// Create 落库一条消息
	Create(ctx context.Context, msg *model.Message) (*model.Message, error)

	// GetByUUID 查询消息
	GetByUUID(ctx context.Context, uuid string) (*model.Message, error)

	// ListBetween 查询两人之间的消息（时间正序）。
	// limit > 0 时取最新的 N 条再翻回正序
	ListBetween(ctx context.Context, userUUID, peerUUID string, limit int) ([]*model.Message, error)

	// ListLatestByPeer 每个会话对端的最新一条消息（按消息时间倒序），用于会话列表
	ListLatestByPeer(ctx context.Context, userUUID string) ([]*model.Message, error)

	// Recall 撤回：清空正文并把类型置为已撤回
	Recall(ctx context.Context, uuid string) error

	// Delete 硬删一条消息
	Delete(ctx context.Context, uuid string) error
}

// ==================== 职位 Repository ====================

// IJobRepository 职位数据访问接口
type IJobRepository interface {
	// Create 发布职位
	Create(ctx context.Context, job *model.Job) (*model.Job, error)

	// GetByUUID 查询职位
	GetByUUID(ctx context.Context, uuid string) (*model.Job, error)

	// List 按发布时间倒序拉取职位，keyword 匹配名称/公司/标签，location 匹配地点
	List(ctx context.Context, keyword, location string, limit, offset int) ([]*model.Job, error)

	// CreateApplication 创建投递记录，(job, user) 重复投递返回 ErrDuplicateKey
	CreateApplication(ctx context.Context, app *model.JobApplication) (*model.JobApplication, error)

	// HasApplied 是否已投递
	HasApplied(ctx context.Context, jobUUID, userUUID string) (bool, error)
}

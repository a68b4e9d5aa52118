package model

import (
	"time"
)

// Post 动态/帖子表。
// 删除是硬删并级联删评论和点赞，所以不挂 gorm.DeletedAt。
// 计数列是冗余读模型，每次点赞/评论变更在同一事务里按明细重算回填。
type Post struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	Uuid     string `gorm:"column:uuid;type:char(24);not null;uniqueIndex;comment:帖子uuid"`
	UserUuid string `gorm:"column:user_uuid;type:char(20);not null;index:idx_user_created;comment:作者uuid"`

	Content  string `gorm:"column:content;type:text;not null;comment:正文"`
	Image    string `gorm:"column:image;type:varchar(255);comment:配图URL"`
	Category string `gorm:"column:category;type:varchar(32);not null;default:'text';index;comment:分类 text/image/video/job"`

	LikeCount    int `gorm:"column:like_count;not null;default:0;comment:点赞数(冗余)"`
	CommentCount int `gorm:"column:comment_count;not null;default:0;comment:评论数(冗余)"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index:idx_user_created;index"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Post) TableName() string { return "post" }

// Comment 帖子评论。回复人信息只做展示，不构成树结构。
type Comment struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	Uuid     string `gorm:"column:uuid;type:char(24);not null;uniqueIndex;comment:评论uuid"`
	PostUuid string `gorm:"column:post_uuid;type:char(24);not null;index:idx_post_created;comment:所属帖子uuid"`
	UserUuid string `gorm:"column:user_uuid;type:char(20);not null;index;comment:评论人uuid"`

	Content     string `gorm:"column:content;type:varchar(1024);not null;comment:评论内容"`
	ReplyToUuid string `gorm:"column:reply_to_uuid;type:char(24);comment:被回复的评论uuid(仅展示)"`
	ReplyToName string `gorm:"column:reply_to_name;type:varchar(64);comment:被回复人昵称(仅展示)"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index:idx_post_created"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Comment) TableName() string { return "comment" }

// PostLike 点赞明细，(post, user) 唯一。计数以这张表为准。
type PostLike struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	PostUuid string `gorm:"column:post_uuid;type:char(24);not null;uniqueIndex:uidx_post_user;comment:帖子uuid"`
	UserUuid string `gorm:"column:user_uuid;type:char(20);not null;uniqueIndex:uidx_post_user;index;comment:点赞人uuid"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PostLike) TableName() string { return "post_like" }

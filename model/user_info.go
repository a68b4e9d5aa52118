package model

import (
	"time"

	"gorm.io/gorm"
)

// UserInfo 用户主表。
// uuid 对外暴露（u_ 前缀 + 雪花号），自增 id 仅做主键，不出网。
type UserInfo struct {
	Id   int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	Uuid string `gorm:"column:uuid;type:char(20);not null;uniqueIndex;comment:用户uuid"`

	Username string `gorm:"column:username;type:varchar(32);not null;uniqueIndex;comment:登录名"`
	Password string `gorm:"column:password;type:varchar(64);not null;comment:bcrypt密码哈希"`

	// 资料字段
	Nickname        string `gorm:"column:nickname;type:varchar(64);not null;comment:昵称"`
	Avatar          string `gorm:"column:avatar;type:varchar(255);comment:头像URL"`
	BackgroundImage string `gorm:"column:background_image;type:varchar(255);comment:主页背景图URL"`
	Title           string `gorm:"column:title;type:varchar(64);comment:头衔/职位"`
	Bio             string `gorm:"column:bio;type:varchar(255);comment:个人简介"`
	Location        string `gorm:"column:location;type:varchar(64);comment:所在地"`
	Phone           string `gorm:"column:phone;type:varchar(32);comment:电话"`

	// 改名限流：30 天内只能改一次 username
	LastUsernameChange *time.Time `gorm:"column:last_username_change;comment:上次修改登录名时间"`

	// 隐私开关（逐键合并更新，不整体覆盖）
	AllowStrangerView10 bool `gorm:"column:allow_stranger_view10;not null;default:true;comment:允许陌生人查看10条动态"`
	RequireFriendVerify bool `gorm:"column:require_friend_verify;not null;default:true;comment:加好友需要验证"`
	VisibleToSearch     bool `gorm:"column:visible_to_search;not null;default:true;comment:允许被搜索到"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (UserInfo) TableName() string { return "user_info" }

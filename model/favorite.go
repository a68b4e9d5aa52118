package model

import (
	"time"
)

// FavoriteItem 收藏表，统一收帖子/职位等多类条目。
// (user, item, type) 唯一，重复收藏按 toggle 处理。
type FavoriteItem struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	UserUuid string `gorm:"column:user_uuid;type:char(20);not null;uniqueIndex:uidx_user_item;index:idx_user_created;comment:用户uuid"`
	ItemUuid string `gorm:"column:item_uuid;type:char(24);not null;uniqueIndex:uidx_user_item;comment:条目uuid"`
	ItemType string `gorm:"column:item_type;type:varchar(16);not null;uniqueIndex:uidx_user_item;comment:条目类型 post/job"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index:idx_user_created"`
}

func (FavoriteItem) TableName() string { return "favorite_item" }

const (
	// FavoriteTypePost 帖子收藏
	FavoriteTypePost = "post"
	// FavoriteTypeJob 职位收藏
	FavoriteTypeJob = "job"
)

package model

import (
	"time"
)

// PinnedChat 会话置顶表。pinned_at 倒序就是置顶展示顺序，
// 后置顶的排在前面。
type PinnedChat struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	UserUuid string `gorm:"column:user_uuid;type:char(20);not null;uniqueIndex:uidx_user_peer_pin;index;comment:用户uuid"`
	PeerUuid string `gorm:"column:peer_uuid;type:char(20);not null;uniqueIndex:uidx_user_peer_pin;comment:会话对端uuid"`

	PinnedAt  time.Time `gorm:"column:pinned_at;not null;index;comment:置顶时间"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PinnedChat) TableName() string { return "pinned_chat" }

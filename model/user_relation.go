package model

import (
	"time"

	"gorm.io/gorm"
)

// UserRelation 用户关系行。好友关系写对称双行（A->B 与 B->A），
// 拉黑是单向的，只写发起方一行。
// uniqueIndex:uidx_user_peer 保证同一对 (user, peer, 方向) 不重复。
type UserRelation struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	UserUuid string `gorm:"column:user_uuid;type:char(20);not null;uniqueIndex:uidx_user_peer;index:idx_user_status;comment:用户uuid"`
	PeerUuid string `gorm:"column:peer_uuid;type:char(20);not null;index;uniqueIndex:uidx_user_peer;comment:对端用户uuid"`
	Status   int8   `gorm:"column:status;not null;default:0;index:idx_user_status;comment:关系状态 0.好友 1.拉黑"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (UserRelation) TableName() string { return "user_relation" }

const (
	// RelationStatusFriend 好友
	RelationStatusFriend int8 = 0
	// RelationStatusBlocked 拉黑
	RelationStatusBlocked int8 = 1
)

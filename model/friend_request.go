package model

import (
	"time"

	"gorm.io/gorm"
)

// FriendRequest 好友申请表。
// 同一对用户同方向只保留一条 pending，处理后落状态不删行，方便审计。
type FriendRequest struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	Uuid     string `gorm:"column:uuid;type:char(24);not null;uniqueIndex;comment:申请uuid"`
	FromUuid string `gorm:"column:from_uuid;type:char(20);not null;index:idx_from_status;comment:申请人uuid"`
	ToUuid   string `gorm:"column:to_uuid;type:char(20);not null;index:idx_to_status;comment:接收人uuid"`
	Message  string `gorm:"column:message;type:varchar(255);comment:验证消息"`
	Status   int8   `gorm:"column:status;not null;default:0;index:idx_from_status;index:idx_to_status;comment:状态 0.待处理 1.已同意 2.已拒绝"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (FriendRequest) TableName() string { return "friend_request" }

const (
	// RequestStatusPending 待处理
	RequestStatusPending int8 = 0
	// RequestStatusAccepted 已同意
	RequestStatusAccepted int8 = 1
	// RequestStatusRejected 已拒绝
	RequestStatusRejected int8 = 2
)

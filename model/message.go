package model

import (
	"time"
)

// Message 单聊消息表。
// 撤回不删行：正文清空 + type 置为 recalled，客户端据此渲染占位。
// 删除（仅撤回后可删）是硬删。
type Message struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	Uuid     string `gorm:"column:uuid;type:char(24);not null;uniqueIndex;comment:消息uuid"`
	FromUuid string `gorm:"column:from_uuid;type:char(20);not null;index:idx_from_to_created;comment:发送方uuid"`
	ToUuid   string `gorm:"column:to_uuid;type:char(20);not null;index:idx_from_to_created;index;comment:接收方uuid"`

	Content string `gorm:"column:content;type:text;comment:消息正文(撤回后清空)"`
	Type    int8   `gorm:"column:type;not null;default:0;comment:类型 0.文本 1.已撤回"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime;index:idx_from_to_created"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Message) TableName() string { return "message" }

const (
	// MessageTypeText 文本消息
	MessageTypeText int8 = 0
	// MessageTypeRecalled 已撤回
	MessageTypeRecalled int8 = 1
)

// RecallWindow 撤回窗口，发出超过这个时长不允许撤回。
const RecallWindow = 2 * time.Minute

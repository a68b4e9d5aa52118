package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Job 职位表。要求与标签是变长列表，用 JSON 列存，
// 避免为纯展示数据建子表。
type Job struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	Uuid     string `gorm:"column:uuid;type:char(24);not null;uniqueIndex;comment:职位uuid"`
	UserUuid string `gorm:"column:user_uuid;type:char(20);not null;index;comment:发布人uuid"`

	Title        string         `gorm:"column:title;type:varchar(128);not null;comment:职位名称"`
	Company      string         `gorm:"column:company;type:varchar(128);not null;comment:公司名称"`
	Location     string         `gorm:"column:location;type:varchar(64);comment:工作地点"`
	Salary       string         `gorm:"column:salary;type:varchar(64);comment:薪资范围(展示串)"`
	Description  string         `gorm:"column:description;type:text;comment:职位描述"`
	Requirements datatypes.JSON `gorm:"column:requirements;comment:任职要求(JSON数组)"`
	Tags         datatypes.JSON `gorm:"column:tags;comment:标签(JSON数组)"`
	ContactEmail string         `gorm:"column:contact_email;type:varchar(128);comment:投递邮箱"`

	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime;index"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Job) TableName() string { return "job" }

// JobApplication 投递记录。(job, user) 唯一，重复投递直接拒。
type JobApplication struct {
	Id       int64  `gorm:"column:id;primaryKey;autoIncrement;comment:自增id"`
	Uuid     string `gorm:"column:uuid;type:char(24);not null;uniqueIndex;comment:投递uuid"`
	JobUuid  string `gorm:"column:job_uuid;type:char(24);not null;uniqueIndex:uidx_job_user;comment:职位uuid"`
	UserUuid string `gorm:"column:user_uuid;type:char(20);not null;uniqueIndex:uidx_job_user;index;comment:投递人uuid"`

	Resume  string `gorm:"column:resume;type:text;comment:简历文本"`
	Message string `gorm:"column:message;type:varchar(512);comment:附言"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (JobApplication) TableName() string { return "job_application" }

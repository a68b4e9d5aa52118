package dto

// ==================== 职位相关 DTO ====================

// CreateJobRequest 发布职位请求 DTO
type CreateJobRequest struct {
	Title        string   `json:"title" binding:"required,max=128"`         // 职位名称
	Company      string   `json:"company" binding:"required,max=128"`       // 公司名称
	Location     string   `json:"location" binding:"omitempty,max=64"`      // 工作地点
	Salary       string   `json:"salary" binding:"omitempty,max=64"`        // 薪资范围
	Description  string   `json:"description" binding:"omitempty,max=5000"` // 职位描述
	Requirements []string `json:"requirements" binding:"omitempty,max=20"`  // 任职要求
	Tags         []string `json:"tags" binding:"omitempty,max=10"`          // 标签
	ContactEmail string   `json:"contactEmail" binding:"omitempty,email"`   // 投递邮箱
}

// ListJobsRequest 职位列表请求 DTO
type ListJobsRequest struct {
	Keyword  string `form:"keyword" binding:"omitempty,max=64"`   // 关键词（名称/公司/标签）
	Location string `form:"location" binding:"omitempty,max=64"`  // 工作地点
	Limit    int    `form:"limit" binding:"omitempty,max=100"`    // 单页条数
	Offset   int    `form:"offset" binding:"omitempty,min=0"`     // 偏移量
}

// JobView 职位视图
type JobView struct {
	UUID         string    `json:"uuid"`         // 职位UUID
	Publisher    *UserView `json:"publisher"`    // 发布人
	Title        string    `json:"title"`        // 职位名称
	Company      string    `json:"company"`      // 公司名称
	Location     string    `json:"location"`     // 工作地点
	Salary       string    `json:"salary"`       // 薪资范围
	Description  string    `json:"description"`  // 职位描述
	Requirements []string  `json:"requirements"` // 任职要求
	Tags         []string  `json:"tags"`         // 标签
	ContactEmail string    `json:"contactEmail"` // 投递邮箱
	CreatedAt    int64     `json:"createdAt"`    // 发布时间(unix毫秒)
}

// ApplyJobRequest 投递职位请求 DTO
type ApplyJobRequest struct {
	Resume  string `json:"resume" binding:"omitempty,max=10000"` // 简历文本
	Message string `json:"message" binding:"omitempty,max=512"`  // 附言
}

// ApplyJobResponse 投递职位响应 DTO
type ApplyJobResponse struct {
	ApplicationUUID string `json:"applicationUuid"` // 投递UUID
}

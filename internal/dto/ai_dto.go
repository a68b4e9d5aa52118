package dto

// ==================== AI 相关 DTO ====================

// GenerateBioRequest 生成个人简介请求 DTO
type GenerateBioRequest struct {
	Keywords string `json:"keywords" binding:"required,max=255"` // 关键词（职业、技能、性格等）
}

// GenerateTextResponse 文本生成响应 DTO
type GenerateTextResponse struct {
	Text string `json:"text"` // 生成的文本
}

// GenerateJobDescriptionRequest 生成职位描述请求 DTO
type GenerateJobDescriptionRequest struct {
	Title    string `json:"title" binding:"required,max=128"`     // 职位名称
	Company  string `json:"company" binding:"omitempty,max=128"`  // 公司名称
	Keywords string `json:"keywords" binding:"omitempty,max=255"` // 补充关键词
}

// AnalyzeResumeRequest 简历分析请求 DTO
type AnalyzeResumeRequest struct {
	Resume string `json:"resume" binding:"required,max=10000"` // 简历文本
}

// ResumeAnalysisResponse 简历分析响应 DTO
type ResumeAnalysisResponse struct {
	Summary        string   `json:"summary"`        // 总结
	SuggestedRoles []string `json:"suggestedRoles"` // 建议岗位
	Advice         string   `json:"advice"`         // 求职建议
}

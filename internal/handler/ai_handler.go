package handler

import (
	"AiBeiTongServer/consts"
	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/internal/middleware"
	"AiBeiTongServer/internal/service"
	"AiBeiTongServer/pkg/result"

	"github.com/gin-gonic/gin"
)

// AIHandler AI 文本生成处理器。
// 生成失败由服务层兜底，这里永远成功返回。
type AIHandler struct {
	aiService service.AIService
}

// NewAIHandler 创建 AI 处理器
func NewAIHandler(aiService service.AIService) *AIHandler {
	return &AIHandler{aiService: aiService}
}

// GenerateBio 生成个人简介
// @Summary AI生成个人简介
// @Tags AI接口
// @Accept json
// @Produce json
// @Param request body dto.GenerateBioRequest true "生成请求"
// @Success 200 {object} dto.GenerateTextResponse
// @Router /api/v1/auth/ai/bio [post]
func (h *AIHandler) GenerateBio(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	var req dto.GenerateBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	result.Success(c, h.aiService.GenerateBio(ctx, &req))
}

// GenerateJobDescription 生成职位描述
func (h *AIHandler) GenerateJobDescription(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	var req dto.GenerateJobDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	result.Success(c, h.aiService.GenerateJobDescription(ctx, &req))
}

// AnalyzeResume 分析简历
func (h *AIHandler) AnalyzeResume(c *gin.Context) {
	ctx := middleware.NewContextWithGin(c)

	var req dto.AnalyzeResumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		result.Fail(c, nil, consts.CodeParamError)
		return
	}

	result.Success(c, h.aiService.AnalyzeResume(ctx, &req))
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"AiBeiTongServer/internal/dto"
	"AiBeiTongServer/pkg/gemini"
	"AiBeiTongServer/pkg/logger"
)

// 生成失败时的固定兜底文案。生成能力是增强项，失败不能打断用户操作。
const (
	fallbackBio            = "无法生成描述，请重试。"
	fallbackJobDescription = "生成职位描述时发生错误，请稍后重试或手动填写。"
	fallbackResumeSummary  = "无法分析简历。"
	fallbackResumeAdvice   = "请尝试提供更详细的信息。"
)

var fallbackSuggestedRoles = []string{"通用文员", "销售助理"}

// aiServiceImpl AI 文本生成服务实现。
// generator 可以为 nil（未配置 API Key），此时全部走兜底。
type aiServiceImpl struct {
	generator gemini.TextGenerator
}

// NewAIService 创建 AI 服务实例
func NewAIService(generator gemini.TextGenerator) AIService {
	return &aiServiceImpl{generator: generator}
}

// GenerateBio 按关键词生成个人简介
func (s *aiServiceImpl) GenerateBio(ctx context.Context, req *dto.GenerateBioRequest) *dto.GenerateTextResponse {
	if s.generator == nil {
		return &dto.GenerateTextResponse{Text: fallbackBio}
	}

	prompt := fmt.Sprintf(
		"请根据以下关键词，用中文写一段不超过 80 字的个人简介，语气自然、适合社交平台展示，不要使用第一人称以外的视角：%s",
		req.Keywords,
	)
	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		logger.Warn(ctx, "生成个人简介失败，返回兜底文案", logger.ErrorField("error", err))
		return &dto.GenerateTextResponse{Text: fallbackBio}
	}
	return &dto.GenerateTextResponse{Text: strings.TrimSpace(text)}
}

// GenerateJobDescription 生成职位描述
func (s *aiServiceImpl) GenerateJobDescription(ctx context.Context, req *dto.GenerateJobDescriptionRequest) *dto.GenerateTextResponse {
	if s.generator == nil {
		return &dto.GenerateTextResponse{Text: fallbackJobDescription}
	}

	var sb strings.Builder
	sb.WriteString("请用中文写一段职位描述，200 字以内，包含职责与要求两部分。")
	sb.WriteString("职位名称：" + req.Title + "。")
	if req.Company != "" {
		sb.WriteString("公司：" + req.Company + "。")
	}
	if req.Keywords != "" {
		sb.WriteString("补充信息：" + req.Keywords + "。")
	}

	text, err := s.generator.GenerateText(ctx, sb.String())
	if err != nil {
		logger.Warn(ctx, "生成职位描述失败，返回兜底文案", logger.ErrorField("error", err))
		return &dto.GenerateTextResponse{Text: fallbackJobDescription}
	}
	return &dto.GenerateTextResponse{Text: strings.TrimSpace(text)}
}

// AnalyzeResume 分析简历，返回结构化建议
func (s *aiServiceImpl) AnalyzeResume(ctx context.Context, req *dto.AnalyzeResumeRequest) *dto.ResumeAnalysisResponse {
	fallback := &dto.ResumeAnalysisResponse{
		Summary:        fallbackResumeSummary,
		SuggestedRoles: fallbackSuggestedRoles,
		Advice:         fallbackResumeAdvice,
	}
	if s.generator == nil {
		return fallback
	}

	prompt := fmt.Sprintf(
		`请分析以下简历文本，并以 JSON 返回，字段为：summary（一句话总结，中文）、suggestedRoles（适合的岗位名称数组，中文，最多 3 个）、advice（一条求职建议，中文）。只输出 JSON，不要额外说明。简历：
%s`,
		req.Resume,
	)
	raw, err := s.generator.GenerateJSON(ctx, prompt)
	if err != nil {
		logger.Warn(ctx, "简历分析失败，返回兜底结果", logger.ErrorField("error", err))
		return fallback
	}

	var analysis dto.ResumeAnalysisResponse
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		logger.Warn(ctx, "简历分析结果解析失败，返回兜底结果",
			logger.ErrorField("error", err),
			logger.String("raw", raw),
		)
		return fallback
	}
	if analysis.Summary == "" {
		analysis.Summary = fallbackResumeSummary
	}
	if len(analysis.SuggestedRoles) == 0 {
		analysis.SuggestedRoles = fallbackSuggestedRoles
	}
	if analysis.Advice == "" {
		analysis.Advice = fallbackResumeAdvice
	}
	return &analysis
}

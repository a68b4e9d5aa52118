package gemini

import (
	"context"
	"errors"
	"fmt"

	"AiBeiTongServer/config"

	"github.com/sony/gobreaker"
	"google.golang.org/genai"
)

// ErrDisabled 未配置 API Key，生成功能不可用。
var ErrDisabled = errors.New("gemini: not configured")

// TextGenerator 文本生成抽象。调用方拿到 error 时自行兜底，
// 不应把生成失败暴露给客户端。
type TextGenerator interface {
	// GenerateText 自由文本生成
	GenerateText(ctx context.Context, prompt string) (string, error)

	// GenerateJSON 约束输出为 JSON（response MIME 强制 application/json）
	GenerateJSON(ctx context.Context, prompt string) (string, error)
}

// client Gemini API 封装，外层套熔断器。
// 上游持续超时/报错时熔断打开，请求直接失败走兜底文案，不再拖慢接口。
type client struct {
	genai   *genai.Client
	model   string
	timeout config.GeminiConfig
	breaker *gobreaker.CircuitBreaker
}

// New 创建 Gemini 客户端。APIKey 为空返回 ErrDisabled。
func New(ctx context.Context, cfg config.GeminiConfig) (TextGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrDisabled
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	maxFailures := cfg.BreakerMaxFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "gemini",
		Timeout: cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	})

	return &client{
		genai:   gc,
		model:   cfg.Model,
		timeout: cfg,
		breaker: breaker,
	}, nil
}

// GenerateText 自由文本生成
func (c *client) GenerateText(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, nil)
}

// GenerateJSON 约束 JSON 输出
func (c *client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	}
	return c.generate(ctx, prompt, cfg)
}

func (c *client) generate(ctx context.Context, prompt string, genCfg *genai.GenerateContentConfig) (string, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		callCtx := ctx
		if c.timeout.Timeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, c.timeout.Timeout)
			defer cancel()
		}

		resp, err := c.genai.Models.GenerateContent(callCtx, c.model, genai.Text(prompt), genCfg)
		if err != nil {
			return nil, err
		}
		text := resp.Text()
		if text == "" {
			return nil, errors.New("gemini: empty response")
		}
		return text, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

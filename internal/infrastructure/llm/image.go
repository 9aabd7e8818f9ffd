package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"shopee-seller-ai-api/internal/config"
	"shopee-seller-ai-api/pkg/logger"
	"shopee-seller-ai-api/pkg/metrics"
)

const (
	imageProviderOpenAI      = "openai"
	imageProviderPlaceholder = "placeholder"
)

// ImageClient OpenAI 兼容的图片生成客户端；未配置 key 时返回占位图
type ImageClient struct {
	cfg    config.ImageConfig
	client *resty.Client
}

type imageRequest struct {
	Model  string `json:"model,omitempty"`
	Prompt string `json:"prompt"`
	N      int    `json:"n"`
	Size   string `json:"size,omitempty"`
}

type imageResponse struct {
	Data []struct {
		URL           string `json:"url"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	} `json:"data"`
}

type apiErrorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewImageClient 创建图片生成客户端
func NewImageClient(cfg *config.Config) *ImageClient {
	imgCfg := cfg.Image
	return &ImageClient{
		cfg:    imgCfg,
		client: buildImageHTTPClient(imgCfg),
	}
}

func buildImageHTTPClient(cfg config.ImageConfig) *resty.Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	if !IsMockKey(cfg.APIKey) {
		client.SetAuthToken(cfg.APIKey)
	}
	return client
}

// Placeholder 是否处于占位图模式
func (c *ImageClient) Placeholder() bool {
	return IsMockKey(c.cfg.APIKey)
}

// Generate 生成一张图片并返回 URL
func (c *ImageClient) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("image prompt is empty")
	}
	if c.Placeholder() {
		metrics.ImageGenerationTotal.WithLabelValues(imageProviderPlaceholder, "success").Inc()
		return c.placeholderURL(), nil
	}

	url, err := c.requestImage(ctx, prompt)
	if err != nil {
		metrics.ImageGenerationTotal.WithLabelValues(imageProviderOpenAI, "error").Inc()
		logger.Warn(ctx, "image generation failed", "error", err.Error())
		return "", err
	}
	metrics.ImageGenerationTotal.WithLabelValues(imageProviderOpenAI, "success").Inc()
	return url, nil
}

func (c *ImageClient) requestImage(ctx context.Context, prompt string) (string, error) {
	var out imageResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(imageRequest{
			Model:  c.cfg.Model,
			Prompt: prompt,
			N:      1,
			Size:   c.cfg.Size,
		}).
		SetResult(&out).
		SetError(&apiErrorEnvelope{}).
		Post("/images/generations")
	if err != nil {
		return "", fmt.Errorf("image request failed: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		if env, ok := resp.Error().(*apiErrorEnvelope); ok && env.Error.Message != "" {
			return "", fmt.Errorf("image api error: %s (status %d)", env.Error.Message, resp.StatusCode())
		}
		return "", fmt.Errorf("image api error (status %d)", resp.StatusCode())
	}
	for _, d := range out.Data {
		if strings.TrimSpace(d.URL) != "" {
			return d.URL, nil
		}
	}
	return "", errors.New("image api returned no url")
}

func (c *ImageClient) placeholderURL() string {
	seed := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	tpl := c.cfg.PlaceholderURL
	if !strings.Contains(tpl, "%s") {
		return tpl
	}
	return fmt.Sprintf(tpl, seed)
}

package chain

import (
	"context"
	"fmt"
	"strings"

	wfmodel "shopee-seller-ai-api/internal/workflow/model"
	workflowport "shopee-seller-ai-api/internal/workflow/port"
	workflowprompt "shopee-seller-ai-api/internal/workflow/prompt"
)

// ImageChain 渲染图片提示词并调用图片生成器（不经过 ChatModel）
type ImageChain struct {
	generator workflowport.ImageGenerator
	prompts   *workflowprompt.Registry
}

func NewImageChain(generator workflowport.ImageGenerator) *ImageChain {
	return &ImageChain{generator: generator, prompts: defaultPromptRegistry}
}

// Prompt 渲染图片提示词
func (c *ImageChain) Prompt(ctx context.Context, in *wfmodel.ImageInput) (string, error) {
	if in == nil || strings.TrimSpace(in.Name) == "" {
		return "", fmt.Errorf("product name is required")
	}
	return c.prompts.RenderText(ctx, workflowprompt.PromptImageV1, map[string]any{
		"name":        strings.TrimSpace(in.Name),
		"description": strings.TrimSpace(in.Description),
		"style":       strings.TrimSpace(in.Style),
	})
}

// Invoke 生成一张图片，返回 URL
func (c *ImageChain) Invoke(ctx context.Context, in *wfmodel.ImageInput) (string, error) {
	if c == nil || c.generator == nil {
		return "", fmt.Errorf("image generator not configured")
	}
	prompt, err := c.Prompt(ctx, in)
	if err != nil {
		return "", err
	}
	url, err := c.generator.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(url) == "" {
		return "", fmt.Errorf("empty image url")
	}
	return url, nil
}

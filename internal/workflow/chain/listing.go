package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	wfmodel "shopee-seller-ai-api/internal/workflow/model"
	workflowport "shopee-seller-ai-api/internal/workflow/port"
	workflowprompt "shopee-seller-ai-api/internal/workflow/prompt"
)

// CaptionChain 商品 caption（期望 JSON {"captions": [...]}）
type CaptionChain struct {
	base
}

func NewCaptionChain(factory workflowport.ChatModelFactory, router ProviderRouter) *CaptionChain {
	return &CaptionChain{base: newBase(factory, router)}
}

func (c *CaptionChain) Invoke(ctx context.Context, in *wfmodel.CaptionInput) (*schema.Message, error) {
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("product name is required")
	}
	vars := map[string]any{
		"name":         strings.TrimSpace(in.Name),
		"keywords":     joinList(in.Keywords),
		"style":        strings.TrimSpace(in.Style),
		"platform":     strings.TrimSpace(in.Platform),
		"content_type": strings.TrimSpace(in.ContentType),
		"length":       strings.TrimSpace(in.Length),
		"description":  strings.TrimSpace(in.Description),
	}
	return c.generate(ctx, WorkflowCaption, workflowprompt.PromptCaptionV1, vars, in.CallOptions)
}

// DescriptionChain Shopee SEO 商品描述
type DescriptionChain struct {
	base
}

func NewDescriptionChain(factory workflowport.ChatModelFactory, router ProviderRouter) *DescriptionChain {
	return &DescriptionChain{base: newBase(factory, router)}
}

func (c *DescriptionChain) Invoke(ctx context.Context, in *wfmodel.DescriptionInput) (*schema.Message, error) {
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("product name is required")
	}
	vars := map[string]any{
		"name":     strings.TrimSpace(in.Name),
		"features": joinList(in.Features),
	}
	return c.generate(ctx, WorkflowDescription, workflowprompt.PromptDescriptionV1, vars, in.CallOptions)
}

// ProductContentChain AI 商品经理：description / shortDescription / features
type ProductContentChain struct {
	base
}

func NewProductContentChain(factory workflowport.ChatModelFactory, router ProviderRouter) *ProductContentChain {
	return &ProductContentChain{base: newBase(factory, router)}
}

func (c *ProductContentChain) Invoke(ctx context.Context, in *wfmodel.ProductContentInput) (*schema.Message, error) {
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	if strings.TrimSpace(in.ProductName) == "" || strings.TrimSpace(in.Category) == "" {
		return nil, fmt.Errorf("product name and category are required")
	}

	var (
		workflow string
		id       workflowprompt.PromptID
	)
	switch in.Type {
	case wfmodel.ContentDescription:
		workflow, id = WorkflowProductDescription, workflowprompt.PromptProductDescriptionV1
	case wfmodel.ContentShortDescription:
		workflow, id = WorkflowProductShortDescription, workflowprompt.PromptProductShortDescriptionV1
	case wfmodel.ContentFeatures:
		workflow, id = WorkflowProductFeatures, workflowprompt.PromptProductFeaturesV1
	default:
		return nil, fmt.Errorf("invalid content type: %q", in.Type)
	}

	vars := map[string]any{
		"product_name": strings.TrimSpace(in.ProductName),
		"category":     strings.TrimSpace(in.Category),
		"keywords":     joinList(in.Keywords),
	}
	return c.generate(ctx, workflow, id, vars, in.CallOptions)
}

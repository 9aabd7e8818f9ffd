// Package chain 每种生成能力对应一条 chain：打标签 -> 取模型 -> 渲染提示词 -> 单次 Generate
package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	llmctx "shopee-seller-ai-api/internal/domain/service"
	wfmodel "shopee-seller-ai-api/internal/workflow/model"
	workflowport "shopee-seller-ai-api/internal/workflow/port"
	workflowprompt "shopee-seller-ai-api/internal/workflow/prompt"
)

// 工作流标签（用于 provider 路由、指标与 mock 响应）
const (
	WorkflowCaption                 = llmctx.WorkflowCaption
	WorkflowDescription             = llmctx.WorkflowDescription
	WorkflowProductDescription      = llmctx.WorkflowProductDescription
	WorkflowProductShortDescription = llmctx.WorkflowProductShortDescription
	WorkflowProductFeatures         = llmctx.WorkflowProductFeatures
	WorkflowCodeGenerate            = llmctx.WorkflowCodeGenerate
	WorkflowChat                    = llmctx.WorkflowChat
	WorkflowCodeChat                = llmctx.WorkflowCodeChat
	WorkflowExplainCode             = llmctx.WorkflowExplainCode
	WorkflowReviewCode              = llmctx.WorkflowReviewCode
)

// ProviderRouter 按工作流选择 provider（config.LLMConfig 实现该接口）
type ProviderRouter interface {
	ProviderFor(workflow string) string
}

var defaultPromptRegistry = workflowprompt.NewRegistry()

type base struct {
	factory workflowport.ChatModelFactory
	router  ProviderRouter
	prompts *workflowprompt.Registry
}

func newBase(factory workflowport.ChatModelFactory, router ProviderRouter) base {
	return base{factory: factory, router: router, prompts: defaultPromptRegistry}
}

func (b *base) generate(
	ctx context.Context,
	workflow string,
	id workflowprompt.PromptID,
	vars map[string]any,
	opts wfmodel.CallOptions,
) (*schema.Message, error) {
	if b == nil || b.factory == nil {
		return nil, fmt.Errorf("llm factory not configured")
	}

	provider := strings.TrimSpace(opts.Provider)
	if provider == "" && b.router != nil {
		provider = b.router.ProviderFor(workflow)
	}

	ctx = llmctx.WithWorkflowProvider(ctx, workflow, provider)
	chatModel, err := b.factory.Get(ctx, provider)
	if err != nil {
		return nil, err
	}

	msgs, err := b.prompts.Format(ctx, id, vars)
	if err != nil {
		return nil, err
	}

	outMsg, err := chatModel.Generate(ctx, msgs, buildModelOptions(opts)...)
	if err != nil {
		return nil, err
	}
	if outMsg == nil {
		return nil, fmt.Errorf("empty llm response")
	}
	return outMsg, nil
}

func buildModelOptions(in wfmodel.CallOptions) []model.Option {
	opts := make([]model.Option, 0, 3)
	if in.Temperature != nil {
		opts = append(opts, model.WithTemperature(*in.Temperature))
	}
	if in.MaxTokens != nil {
		opts = append(opts, model.WithMaxTokens(*in.MaxTokens))
	}
	if m := strings.TrimSpace(in.Model); m != "" {
		opts = append(opts, model.WithModel(m))
	}
	return opts
}

func joinList(items []string) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, ", ")
}

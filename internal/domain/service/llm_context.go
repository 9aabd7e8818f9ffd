// Package service 定义跨层共享的 LLM 调用上下文与用量契约
package service

import (
	"context"
	"strings"
)

// UnknownLabel 上下文中缺失标签时的取值（用于指标 label）
const UnknownLabel = "unknown"

type llmCtxKey string

const (
	llmCtxKeyWorkflow llmCtxKey = "llm_workflow"
	llmCtxKeyProvider llmCtxKey = "llm_provider"
)

// WithWorkflow 标记当前调用所属工作流（caption / description / code_generate ...）
func WithWorkflow(ctx context.Context, workflow string) context.Context {
	return withLabel(ctx, llmCtxKeyWorkflow, workflow)
}

// WithProvider 标记当前调用使用的 provider 名称
func WithProvider(ctx context.Context, provider string) context.Context {
	return withLabel(ctx, llmCtxKeyProvider, provider)
}

// WithWorkflowProvider 同时写入工作流与 provider
func WithWorkflowProvider(ctx context.Context, workflow, provider string) context.Context {
	return WithProvider(WithWorkflow(ctx, workflow), provider)
}

// WorkflowFromContext 读取工作流标签，缺失时返回 unknown
func WorkflowFromContext(ctx context.Context) string {
	return labelFrom(ctx, llmCtxKeyWorkflow)
}

// ProviderFromContext 读取 provider 标签，缺失时返回 unknown
func ProviderFromContext(ctx context.Context) string {
	return labelFrom(ctx, llmCtxKeyProvider)
}

func withLabel(ctx context.Context, key llmCtxKey, value string) context.Context {
	if ctx == nil {
		return nil
	}
	v := strings.TrimSpace(value)
	if v == "" {
		return ctx
	}
	return context.WithValue(ctx, key, v)
}

func labelFrom(ctx context.Context, key llmCtxKey) string {
	if ctx == nil {
		return UnknownLabel
	}
	s, ok := ctx.Value(key).(string)
	if !ok || strings.TrimSpace(s) == "" {
		return UnknownLabel
	}
	return strings.TrimSpace(s)
}

// 工作流标签
const (
	WorkflowCaption                 = "caption"
	WorkflowDescription             = "description"
	WorkflowProductDescription      = "product_description"
	WorkflowProductShortDescription = "product_short_description"
	WorkflowProductFeatures         = "product_features"
	WorkflowCodeGenerate            = "code_generate"
	WorkflowChat                    = "chat"
	WorkflowCodeChat                = "code_chat"
	WorkflowExplainCode             = "explain_code"
	WorkflowReviewCode              = "review_code"
)

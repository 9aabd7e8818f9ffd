package eino

import (
	"context"

	llmctx "shopee-seller-ai-api/internal/domain/service"
	"shopee-seller-ai-api/pkg/logger"
)

// LogUsageRecorder 将每次调用的 token 用量写入结构化日志
type LogUsageRecorder struct{}

var _ llmctx.LLMUsageRecorder = LogUsageRecorder{}

func NewLogUsageRecorder() LogUsageRecorder { return LogUsageRecorder{} }

func (LogUsageRecorder) Record(ctx context.Context, in llmctx.LLMUsageInput) error {
	logger.Info(ctx, "llm usage",
		"workflow", in.Workflow,
		"provider", in.Provider,
		"model", in.Model,
		"prompt_tokens", in.PromptTokens,
		"completion_tokens", in.CompletionTokens,
		"duration_ms", in.DurationMs,
	)
	return nil
}

package eino

import (
	"context"
	"errors"
	"sync"
	"testing"

	einocb "github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	llmctx "shopee-seller-ai-api/internal/domain/service"
	"shopee-seller-ai-api/pkg/metrics"
)

type captureRecorder struct {
	mu   sync.Mutex
	seen []llmctx.LLMUsageInput
}

func (r *captureRecorder) Record(_ context.Context, in llmctx.LLMUsageInput) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, in)
	return nil
}

func runInfo() *einocb.RunInfo {
	return &einocb.RunInfo{Type: "Mock", Component: components.ComponentOfChatModel}
}

func TestChatModelHandler_RecordsUsageOnEnd(t *testing.T) {
	rec := &captureRecorder{}
	h := newChatModelCallbackHandler(rec)

	ctx := llmctx.WithWorkflowProvider(context.Background(), "handler_test_end", "mock")
	before := testutil.ToFloat64(metrics.LLMCallTotal.WithLabelValues("handler_test_end", "mock", "mock-1", "success"))

	ctx = h.OnStart(ctx, runInfo(), &model.CallbackInput{
		Messages: []*schema.Message{schema.UserMessage("hi")},
		Config:   &model.Config{Model: "mock-1"},
	})
	h.OnEnd(ctx, runInfo(), &model.CallbackOutput{
		Message:    schema.AssistantMessage("ok", nil),
		Config:     &model.Config{Model: "mock-1"},
		TokenUsage: &model.TokenUsage{PromptTokens: 7, CompletionTokens: 3, TotalTokens: 10},
	})

	after := testutil.ToFloat64(metrics.LLMCallTotal.WithLabelValues("handler_test_end", "mock", "mock-1", "success"))
	assert.Equal(t, before+1, after)
	assert.Equal(t, float64(7), testutil.ToFloat64(metrics.LLMTokensUsed.WithLabelValues("handler_test_end", "mock", "mock-1", "prompt")))

	require.Len(t, rec.seen, 1)
	got := rec.seen[0]
	assert.Equal(t, "handler_test_end", got.Workflow)
	assert.Equal(t, "mock", got.Provider)
	assert.Equal(t, "mock-1", got.Model)
	assert.Equal(t, 7, got.PromptTokens)
	assert.Equal(t, 3, got.CompletionTokens)
}

func TestChatModelHandler_CountsErrors(t *testing.T) {
	rec := &captureRecorder{}
	h := newChatModelCallbackHandler(rec)

	ctx := llmctx.WithWorkflowProvider(context.Background(), "handler_test_err", "gemini")
	ctx = h.OnStart(ctx, runInfo(), &model.CallbackInput{Config: &model.Config{Model: "gemini-1.5-flash"}})
	h.OnError(ctx, runInfo(), errors.New("quota exceeded"))

	assert.Equal(t, float64(1), testutil.ToFloat64(
		metrics.LLMCallTotal.WithLabelValues("handler_test_err", "gemini", "gemini-1.5-flash", "error")))
	assert.Empty(t, rec.seen)
}

func TestLogUsageRecorder(t *testing.T) {
	assert.NoError(t, NewLogUsageRecorder().Record(context.Background(), llmctx.LLMUsageInput{Workflow: "caption"}))
}

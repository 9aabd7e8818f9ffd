package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	llmctx "shopee-seller-ai-api/internal/domain/service"
)

const mockModelName = "mock"

// MockChatModel 离线可复现的 ChatModel：未配置 API Key 时使用，按工作流标签返回示例文本
type MockChatModel struct {
	provider string
}

func NewMockChatModel(provider string) *MockChatModel {
	return &MockChatModel{provider: provider}
}

func (m *MockChatModel) GetType() string { return "Mock" }

func (m *MockChatModel) IsCallbacksEnabled() bool { return true }

func (m *MockChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	cfg := resolveConfig(mockModelName, 0, 0, opts...)
	return generateWithCallbacks(ctx, m.GetType(), input, cfg, func(ctx context.Context, _ *model.Config) (*schema.Message, error) {
		prompt := lastUserContent(input)
		text := mockReply(llmctx.WorkflowFromContext(ctx), prompt)

		out := schema.AssistantMessage(text, nil)
		promptTokens := approxTokens(prompt)
		completionTokens := approxTokens(text)
		out.ResponseMeta = &schema.ResponseMeta{
			FinishReason: "stop",
			Usage: &schema.TokenUsage{
				PromptTokens:     promptTokens,
				CompletionTokens: completionTokens,
				TotalTokens:      promptTokens + completionTokens,
			},
		}
		return out, nil
	})
}

func (m *MockChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return singleStream(m.Generate(ctx, input, opts...))
}

func mockReply(workflow, prompt string) string {
	name := promptField(prompt, "Tên sản phẩm:")
	if name == "" {
		name = quotedSubject(prompt)
	}
	if name == "" {
		name = "sản phẩm"
	}

	switch workflow {
	case llmctx.WorkflowCaption:
		return fmt.Sprintf("```json\n{\"captions\": [%q, %q, %q]}\n```",
			"[MOCK] "+name+" chính hãng, giá tốt hôm nay!",
			"[MOCK] Săn ngay "+name+", freeship toàn quốc.",
			"[MOCK] "+name+" - lựa chọn hoàn hảo cho bạn.")
	case llmctx.WorkflowDescription:
		return fmt.Sprintf("[MOCK] Mô tả sản phẩm %s với các tính năng: %s. Đây là mô tả mẫu được tạo trong môi trường development.",
			name, promptField(prompt, "Tính năng:"))
	case llmctx.WorkflowProductDescription:
		return fmt.Sprintf("[MOCK] %s is a great choice for everyday use. Order now!", name)
	case llmctx.WorkflowProductShortDescription:
		return fmt.Sprintf("[MOCK] %s: quality you can feel.", name)
	case llmctx.WorkflowProductFeatures:
		return "```json\n[\"[MOCK] Durable build\", \"[MOCK] Easy to use\", \"[MOCK] Great value\", \"[MOCK] Fast delivery\", \"[MOCK] Warranty included\"]\n```"
	case llmctx.WorkflowCodeGenerate:
		return "```ts\n// [MOCK] generated in development mode\nexport function mock(): string {\n  return \"mock\";\n}\n```"
	case llmctx.WorkflowCodeChat:
		return "[MOCK] Đây là câu trả lời mẫu cho câu hỏi lập trình của bạn.\n\n```ts\nconsole.log(\"mock\");\n```"
	case llmctx.WorkflowExplainCode:
		return "[MOCK] Giải thích mẫu: đoạn code khai báo và sử dụng các biến cơ bản."
	case llmctx.WorkflowReviewCode:
		return "[MOCK] Review mẫu: code chạy đúng, nên bổ sung xử lý lỗi."
	default:
		return "[MOCK] Đây là câu trả lời mẫu được tạo trong môi trường development."
	}
}

func lastUserContent(input []*schema.Message) string {
	for i := len(input) - 1; i >= 0; i-- {
		if input[i] != nil && input[i].Role == schema.User {
			return input[i].Content
		}
	}
	return ""
}

// promptField 读取提示词中 "label value" 形式的一行
func promptField(prompt, label string) string {
	for _, line := range strings.Split(prompt, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, label) {
			return strings.TrimSpace(strings.TrimPrefix(line, label))
		}
	}
	return ""
}

// quotedSubject 读取英文提示词中第一个双引号包裹的商品名
func quotedSubject(prompt string) string {
	start := strings.Index(prompt, `"`)
	if start < 0 {
		return ""
	}
	end := strings.Index(prompt[start+1:], `"`)
	if end <= 0 {
		return ""
	}
	return prompt[start+1 : start+1+end]
}

func approxTokens(s string) int {
	n := utf8.RuneCountInString(s) / 4
	if n == 0 && s != "" {
		n = 1
	}
	return n
}

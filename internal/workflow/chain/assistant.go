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

// AssistantChain 对话、编程对话、代码解释与代码审查
type AssistantChain struct {
	base
}

func NewAssistantChain(factory workflowport.ChatModelFactory, router ProviderRouter) *AssistantChain {
	return &AssistantChain{base: newBase(factory, router)}
}

func (c *AssistantChain) Chat(ctx context.Context, in *wfmodel.ChatInput) (*schema.Message, error) {
	if in == nil || len(in.Messages) == 0 {
		return nil, fmt.Errorf("messages are required")
	}
	history, current := splitConversation(in.Messages)
	vars := map[string]any{
		"context":                 strings.TrimSpace(in.Context),
		"message":                 current,
		workflowprompt.HistoryKey: history,
	}
	return c.generate(ctx, WorkflowChat, workflowprompt.PromptChatV1, vars, in.CallOptions)
}

func (c *AssistantChain) CodeChat(ctx context.Context, in *wfmodel.CodeChatInput) (*schema.Message, error) {
	if in == nil || len(in.Messages) == 0 {
		return nil, fmt.Errorf("messages are required")
	}
	history, current := splitConversation(in.Messages)
	cc := wfmodel.CodeContext{}
	if in.CodeContext != nil {
		cc = *in.CodeContext
	}
	vars := map[string]any{
		"language":                strings.TrimSpace(cc.Language),
		"framework":               strings.TrimSpace(cc.Framework),
		"project_type":            strings.TrimSpace(cc.ProjectType),
		"message":                 withContext(in.Context, current),
		workflowprompt.HistoryKey: history,
	}
	return c.generate(ctx, WorkflowCodeChat, workflowprompt.PromptCodeChatV1, vars, in.CallOptions)
}

func (c *AssistantChain) Explain(ctx context.Context, in *wfmodel.ExplainInput) (*schema.Message, error) {
	if in == nil || strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Language) == "" {
		return nil, fmt.Errorf("code and language are required")
	}
	vars := map[string]any{
		"code":     strings.TrimRight(in.Code, " \n\t"),
		"language": strings.TrimSpace(in.Language),
		"question": strings.TrimSpace(in.Question),
	}
	return c.generate(ctx, WorkflowExplainCode, workflowprompt.PromptExplainCodeV1, vars, in.CallOptions)
}

func (c *AssistantChain) Review(ctx context.Context, in *wfmodel.ReviewInput) (*schema.Message, error) {
	if in == nil || strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Language) == "" {
		return nil, fmt.Errorf("code and language are required")
	}
	vars := map[string]any{
		"code":     strings.TrimRight(in.Code, " \n\t"),
		"language": strings.TrimSpace(in.Language),
	}
	return c.generate(ctx, WorkflowReviewCode, workflowprompt.PromptReviewCodeV1, vars, in.CallOptions)
}

// splitConversation 最后一条消息作为本轮输入，之前的消息按角色转为历史
func splitConversation(msgs []wfmodel.ChatMessage) ([]*schema.Message, string) {
	last := msgs[len(msgs)-1]
	history := make([]*schema.Message, 0, len(msgs)-1)
	for _, m := range msgs[:len(msgs)-1] {
		switch m.Role {
		case wfmodel.RoleAssistant:
			history = append(history, schema.AssistantMessage(m.Content, nil))
		case wfmodel.RoleSystem:
			history = append(history, schema.SystemMessage(m.Content))
		default:
			history = append(history, schema.UserMessage(m.Content))
		}
	}
	return history, last.Content
}

func withContext(extra, message string) string {
	extra = strings.TrimSpace(extra)
	if extra == "" {
		return message
	}
	return "Context: " + extra + "\n\n" + message
}

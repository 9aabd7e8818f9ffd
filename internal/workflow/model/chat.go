package model

import "time"

// ChatRole 对话角色
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
	RoleSystem    ChatRole = "system"
)

// Valid 是否为允许的角色
func (r ChatRole) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

type ChatMessage struct {
	Role      ChatRole
	Content   string
	Timestamp time.Time
}

// ChatInput 通用对话
type ChatInput struct {
	Messages []ChatMessage
	Context  string

	CallOptions
}

// CodeContext 编程对话上下文
type CodeContext struct {
	Language    string
	Framework   string
	ProjectType string
}

// CodeChatInput 编程对话
type CodeChatInput struct {
	ChatInput
	CodeContext *CodeContext
}

// ExplainInput 代码解释
type ExplainInput struct {
	Code     string
	Language string
	Question string

	CallOptions
}

// ReviewInput 代码审查
type ReviewInput struct {
	Code     string
	Language string

	CallOptions
}

// TokenUsage 模型返回的 token 统计
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ChatReply 对话结果
type ChatReply struct {
	Message        ChatMessage
	Usage          *TokenUsage
	ConversationID string
}

// CodeSuggestion 从回复中提取的代码建议
type CodeSuggestion struct {
	Code        string
	Explanation string
}

// CodeChatReply 编程对话结果
type CodeChatReply struct {
	ChatReply
	Suggestions *CodeSuggestion
}

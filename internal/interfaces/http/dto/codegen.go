package dto

import (
	"time"

	wfmodel "shopee-seller-ai-api/internal/workflow/model"
)

// CodeGenerateRequest 代码生成请求
type CodeGenerateRequest struct {
	Template         string         `json:"template"`
	ComponentName    string         `json:"componentName,omitempty"`
	Props            string         `json:"props,omitempty"`
	AdditionalParams map[string]any `json:"additionalParams,omitempty"`
}

func (r *CodeGenerateRequest) ToInput() wfmodel.CodeGenerateInput {
	params := r.AdditionalParams
	if params == nil {
		params = map[string]any{}
	}
	return wfmodel.CodeGenerateInput{
		Template:         r.Template,
		ComponentName:    r.ComponentName,
		Props:            r.Props,
		AdditionalParams: params,
	}
}

// CodeBatchRequest 批量代码生成请求
type CodeBatchRequest struct {
	Requests []CodeGenerateRequest `json:"requests"`
}

func (r *CodeBatchRequest) ToInputs() []wfmodel.CodeGenerateInput {
	out := make([]wfmodel.CodeGenerateInput, 0, len(r.Requests))
	for i := range r.Requests {
		out = append(out, r.Requests[i].ToInput())
	}
	return out
}

// TemplatesResponse 模板列表响应
type TemplatesResponse struct {
	Success   bool                   `json:"success"`
	Templates []wfmodel.CodeTemplate `json:"templates"`
}

// CodeResultResponse 单次生成响应
type CodeResultResponse struct {
	Success     bool   `json:"success"`
	Code        string `json:"code"`
	Template    string `json:"template"`
	Language    string `json:"language"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

func ToCodeResultResponse(res *wfmodel.CodeResult, now time.Time) *CodeResultResponse {
	return &CodeResultResponse{
		Success:     true,
		Code:        res.Code,
		Template:    res.Template,
		Language:    res.Language,
		Description: res.Description,
		Timestamp:   Timestamp(now),
	}
}

// BatchItemResponse 批量生成单项；失败项只带 error 与 template
type BatchItemResponse struct {
	Index       int    `json:"index"`
	Success     bool   `json:"success"`
	Code        string `json:"code,omitempty"`
	Template    string `json:"template"`
	Language    string `json:"language,omitempty"`
	Description string `json:"description,omitempty"`
	Error       string `json:"error,omitempty"`
}

// BatchResponse 批量生成响应
type BatchResponse struct {
	Success   bool                 `json:"success"`
	Results   []*BatchItemResponse `json:"results"`
	Timestamp string               `json:"timestamp"`
}

func ToBatchResponse(items []wfmodel.BatchItemResult, now time.Time) *BatchResponse {
	results := make([]*BatchItemResponse, 0, len(items))
	for _, it := range items {
		item := &BatchItemResponse{
			Index:    it.Index,
			Success:  it.Success,
			Template: it.Template,
			Error:    it.Error,
		}
		if it.Result != nil {
			item.Code = it.Result.Code
			item.Template = it.Result.Template
			item.Language = it.Result.Language
			item.Description = it.Result.Description
		}
		if !it.Success && item.Error == "" {
			item.Error = "Generation failed"
		}
		results = append(results, item)
	}
	return &BatchResponse{
		Success:   true,
		Results:   results,
		Timestamp: Timestamp(now),
	}
}

// ChatMessageDTO 对话消息
type ChatMessageDTO struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ChatRequest 通用对话请求
type ChatRequest struct {
	Messages    []ChatMessageDTO `json:"messages"`
	Context     string           `json:"context,omitempty"`
	MaxTokens   *int             `json:"maxTokens,omitempty"`
	Temperature *float32         `json:"temperature,omitempty"`
}

func (r *ChatRequest) ToInput() *wfmodel.ChatInput {
	msgs := make([]wfmodel.ChatMessage, 0, len(r.Messages))
	for _, m := range r.Messages {
		msg := wfmodel.ChatMessage{
			Role:    wfmodel.ChatRole(m.Role),
			Content: m.Content,
		}
		if ts, err := time.Parse(time.RFC3339Nano, m.Timestamp); err == nil {
			msg.Timestamp = ts
		}
		msgs = append(msgs, msg)
	}
	return &wfmodel.ChatInput{
		Messages: msgs,
		Context:  r.Context,
		CallOptions: wfmodel.CallOptions{
			MaxTokens:   r.MaxTokens,
			Temperature: r.Temperature,
		},
	}
}

// CodeContextDTO 编程对话上下文
type CodeContextDTO struct {
	Language    string `json:"language"`
	Framework   string `json:"framework,omitempty"`
	ProjectType string `json:"projectType,omitempty"`
}

// CodeChatRequest 编程对话请求
type CodeChatRequest struct {
	ChatRequest
	CodeContext *CodeContextDTO `json:"codeContext,omitempty"`
}

func (r *CodeChatRequest) ToInput() *wfmodel.CodeChatInput {
	in := &wfmodel.CodeChatInput{ChatInput: *r.ChatRequest.ToInput()}
	if r.CodeContext != nil {
		in.CodeContext = &wfmodel.CodeContext{
			Language:    r.CodeContext.Language,
			Framework:   r.CodeContext.Framework,
			ProjectType: r.CodeContext.ProjectType,
		}
	}
	return in
}

// ExplainRequest 代码解释请求
type ExplainRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language" binding:"required"`
	Question string `json:"question,omitempty"`
}

func (r *ExplainRequest) ToInput() *wfmodel.ExplainInput {
	return &wfmodel.ExplainInput{Code: r.Code, Language: r.Language, Question: r.Question}
}

// ReviewRequest 代码审查请求
type ReviewRequest struct {
	Code     string `json:"code" binding:"required"`
	Language string `json:"language" binding:"required"`
}

func (r *ReviewRequest) ToInput() *wfmodel.ReviewInput {
	return &wfmodel.ReviewInput{Code: r.Code, Language: r.Language}
}

// TokenUsageDTO token 统计
type TokenUsageDTO struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// CodeSuggestionDTO 代码建议
type CodeSuggestionDTO struct {
	Code        string `json:"code,omitempty"`
	Explanation string `json:"explanation,omitempty"`
}

// ChatResponse 对话类接口的统一响应
type ChatResponse struct {
	Success        bool               `json:"success"`
	Message        ChatMessageDTO     `json:"message"`
	Usage          *TokenUsageDTO     `json:"usage,omitempty"`
	ConversationID string             `json:"conversationId,omitempty"`
	Suggestions    *CodeSuggestionDTO `json:"suggestions,omitempty"`
	Timestamp      string             `json:"timestamp"`
}

func ToChatResponse(reply *wfmodel.ChatReply, now time.Time) *ChatResponse {
	resp := &ChatResponse{
		Success: true,
		Message: ChatMessageDTO{
			Role:    string(reply.Message.Role),
			Content: reply.Message.Content,
		},
		ConversationID: reply.ConversationID,
		Timestamp:      Timestamp(now),
	}
	if !reply.Message.Timestamp.IsZero() {
		resp.Message.Timestamp = Timestamp(reply.Message.Timestamp)
	}
	if reply.Usage != nil {
		resp.Usage = &TokenUsageDTO{
			PromptTokens:     reply.Usage.PromptTokens,
			CompletionTokens: reply.Usage.CompletionTokens,
			TotalTokens:      reply.Usage.TotalTokens,
		}
	}
	return resp
}

func ToCodeChatResponse(reply *wfmodel.CodeChatReply, now time.Time) *ChatResponse {
	resp := ToChatResponse(&reply.ChatReply, now)
	if reply.Suggestions != nil {
		resp.Suggestions = &CodeSuggestionDTO{
			Code:        reply.Suggestions.Code,
			Explanation: reply.Suggestions.Explanation,
		}
	}
	return resp
}

// CodeGeneratorHealthResponse 代码生成模块健康检查响应
type CodeGeneratorHealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Timestamp string `json:"timestamp"`
}

// Package assistant 提供对话、编程对话、代码解释与代码审查
package assistant

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"shopee-seller-ai-api/internal/workflow/chain"
	wfmodel "shopee-seller-ai-api/internal/workflow/model"
	"shopee-seller-ai-api/internal/workflow/normalize"
	workflowport "shopee-seller-ai-api/internal/workflow/port"
	"shopee-seller-ai-api/pkg/errors"
	"shopee-seller-ai-api/pkg/logger"
)

// 调用失败提示
const (
	MsgChatFailed     = "Không thể xử lý tin nhắn chat"
	MsgCodeChatFailed = "Không thể xử lý tin nhắn code chat"
	MsgExplainFailed  = "Không thể giải thích code"
	MsgReviewFailed   = "Không thể review code"
)

const (
	MsgMissingMessages = "Missing or invalid 'messages' field. Must be a non-empty array"
	MsgMissingCode     = "Missing or invalid 'code' field. Must be a string"
	MsgMissingLanguage = "Missing or invalid 'language' field. Must be a string"
)

// 各场景的默认生成参数
type defaults struct {
	maxTokens   int
	temperature float32
}

var (
	chatDefaults     = defaults{maxTokens: 1000, temperature: 0.7}
	codeChatDefaults = defaults{maxTokens: 1500, temperature: 0.3}
	explainDefaults  = defaults{maxTokens: 1000, temperature: 0.3}
	reviewDefaults   = defaults{maxTokens: 1200, temperature: 0.2}
)

// Service AI 助手服务
type Service struct {
	chain *chain.AssistantChain
	now   func() time.Time
}

func NewService(factory workflowport.ChatModelFactory, router chain.ProviderRouter) *Service {
	return &Service{
		chain: chain.NewAssistantChain(factory, router),
		now:   time.Now,
	}
}

// ValidateMessages 校验消息列表：非空且角色合法
func ValidateMessages(msgs []wfmodel.ChatMessage) error {
	if len(msgs) == 0 {
		return errors.Invalid(MsgMissingMessages)
	}
	for i, m := range msgs {
		if m.Role == "" || strings.TrimSpace(m.Content) == "" {
			return errors.Invalid(fmt.Sprintf("Invalid message format at index %d. Must have 'role' and 'content' fields", i))
		}
		if !m.Role.Valid() {
			return errors.Invalid(fmt.Sprintf("Invalid role at index %d. Must be 'user', 'assistant', or 'system'", i))
		}
	}
	return nil
}

// Chat 通用对话
func (s *Service) Chat(ctx context.Context, in *wfmodel.ChatInput) (*wfmodel.ChatReply, error) {
	if in == nil {
		return nil, errors.Invalid(MsgMissingMessages)
	}
	if err := ValidateMessages(in.Messages); err != nil {
		return nil, err
	}

	req := *in
	req.CallOptions = withDefaults(in.CallOptions, chatDefaults)
	out, err := s.chain.Chat(ctx, &req)
	if err != nil {
		return nil, upstream(ctx, err, MsgChatFailed)
	}
	return s.reply(out), nil
}

// CodeChat 编程对话，并从回复中提取代码建议
func (s *Service) CodeChat(ctx context.Context, in *wfmodel.CodeChatInput) (*wfmodel.CodeChatReply, error) {
	if in == nil {
		return nil, errors.Invalid(MsgMissingMessages)
	}
	if err := ValidateMessages(in.Messages); err != nil {
		return nil, err
	}

	req := *in
	req.CallOptions = withDefaults(in.CallOptions, codeChatDefaults)
	out, err := s.chain.CodeChat(ctx, &req)
	if err != nil {
		return nil, upstream(ctx, err, MsgCodeChatFailed)
	}

	language := ""
	if in.CodeContext != nil {
		language = in.CodeContext.Language
	}
	return &wfmodel.CodeChatReply{
		ChatReply:   *s.reply(out),
		Suggestions: ExtractSuggestions(out.Content, language),
	}, nil
}

// Explain 解释代码
func (s *Service) Explain(ctx context.Context, in *wfmodel.ExplainInput) (*wfmodel.ChatReply, error) {
	if in == nil {
		return nil, errors.Invalid(MsgMissingCode)
	}
	if err := validateCode(in.Code, in.Language); err != nil {
		return nil, err
	}
	req := *in
	req.CallOptions = withDefaults(in.CallOptions, explainDefaults)
	out, err := s.chain.Explain(ctx, &req)
	if err != nil {
		return nil, upstream(ctx, err, MsgExplainFailed)
	}
	return s.reply(out), nil
}

// Review 审查代码
func (s *Service) Review(ctx context.Context, in *wfmodel.ReviewInput) (*wfmodel.ChatReply, error) {
	if in == nil {
		return nil, errors.Invalid(MsgMissingCode)
	}
	if err := validateCode(in.Code, in.Language); err != nil {
		return nil, err
	}
	req := *in
	req.CallOptions = withDefaults(in.CallOptions, reviewDefaults)
	out, err := s.chain.Review(ctx, &req)
	if err != nil {
		return nil, upstream(ctx, err, MsgReviewFailed)
	}
	return s.reply(out), nil
}

// ExtractSuggestions 代码取第一个指定语言的 fence（没有则任意语言），说明取第一个 fence 之前的文字
func ExtractSuggestions(text, language string) *wfmodel.CodeSuggestion {
	var sg wfmodel.CodeSuggestion

	blocks := normalize.FencedBlocks(text)
	language = strings.TrimSpace(language)
	for _, b := range blocks {
		if language != "" && strings.EqualFold(b.Language, language) {
			sg.Code = b.Code
			break
		}
	}
	if sg.Code == "" && len(blocks) > 0 {
		sg.Code = blocks[0].Code
	}
	sg.Explanation = normalize.LeadingText(text)

	if sg.Code == "" && sg.Explanation == "" {
		return nil
	}
	return &sg
}

func (s *Service) reply(out *schema.Message) *wfmodel.ChatReply {
	now := s.now()
	r := &wfmodel.ChatReply{
		Message: wfmodel.ChatMessage{
			Role:      wfmodel.RoleAssistant,
			Content:   out.Content,
			Timestamp: now.UTC(),
		},
		ConversationID: NewConversationID(now),
	}
	if out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
		u := out.ResponseMeta.Usage
		r.Usage = &wfmodel.TokenUsage{
			PromptTokens:     u.PromptTokens,
			CompletionTokens: u.CompletionTokens,
			TotalTokens:      u.TotalTokens,
		}
	}
	return r
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewConversationID 生成 conv_<毫秒时间戳>_<9 位 base36 随机串>
func NewConversationID(now time.Time) string {
	var suffix [9]byte
	for i := range suffix {
		suffix[i] = base36[rand.IntN(len(base36))]
	}
	return fmt.Sprintf("conv_%d_%s", now.UnixMilli(), suffix[:])
}

func withDefaults(in wfmodel.CallOptions, d defaults) wfmodel.CallOptions {
	out := in
	if out.MaxTokens == nil || *out.MaxTokens <= 0 {
		out.MaxTokens = wfmodel.Int(d.maxTokens)
	}
	if out.Temperature == nil || *out.Temperature <= 0 {
		out.Temperature = wfmodel.Float32(d.temperature)
	}
	return out
}

func validateCode(code, language string) error {
	if strings.TrimSpace(code) == "" {
		return errors.Invalid(MsgMissingCode)
	}
	if strings.TrimSpace(language) == "" {
		return errors.Invalid(MsgMissingLanguage)
	}
	return nil
}

func upstream(ctx context.Context, err error, msg string) error {
	logger.Error(ctx, "assistant call failed", err, "message", msg)
	return errors.Wrap(err, errors.CodeLLMCallFailed, msg)
}

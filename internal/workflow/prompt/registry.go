// Package prompt 管理内嵌的提示词模板
package prompt

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	einoprompt "github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed templates/*.txt
var templatesFS embed.FS

type PromptID string

const (
	PromptCaptionV1                 PromptID = "caption_v1"
	PromptDescriptionV1             PromptID = "description_v1"
	PromptProductDescriptionV1      PromptID = "product_description_v1"
	PromptProductShortDescriptionV1 PromptID = "product_short_description_v1"
	PromptProductFeaturesV1         PromptID = "product_features_v1"
	PromptImageV1                   PromptID = "image_v1"
	PromptCodeGenerateV1            PromptID = "code_generate_v1"
	PromptChatV1                    PromptID = "chat_v1"
	PromptCodeChatV1                PromptID = "code_chat_v1"
	PromptExplainCodeV1             PromptID = "explain_code_v1"
	PromptReviewCodeV1              PromptID = "review_code_v1"
)

// HistoryKey 多轮对话历史占位符对应的变量名
const HistoryKey = "history"

// 带历史占位符的提示词
var withHistory = map[PromptID]bool{
	PromptChatV1:     true,
	PromptCodeChatV1: true,
}

// Registry 缓存已解析的 ChatTemplate。
// 模板使用 Go template 语法，Format 时所有变量都必须提供（缺失键会报错）。
type Registry struct {
	mu    sync.RWMutex
	cache map[PromptID]einoprompt.ChatTemplate
}

func NewRegistry() *Registry {
	return &Registry{
		cache: make(map[PromptID]einoprompt.ChatTemplate),
	}
}

func (r *Registry) ChatTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	if r == nil {
		return nil, fmt.Errorf("prompt registry is nil")
	}

	r.mu.RLock()
	if tpl, ok := r.cache[id]; ok {
		r.mu.RUnlock()
		return tpl, nil
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if tpl, ok := r.cache[id]; ok {
		return tpl, nil
	}

	tpl, err := buildTemplate(id)
	if err != nil {
		return nil, err
	}
	r.cache[id] = tpl
	return tpl, nil
}

// Format 渲染消息列表
func (r *Registry) Format(ctx context.Context, id PromptID, vars map[string]any) ([]*schema.Message, error) {
	tpl, err := r.ChatTemplate(id)
	if err != nil {
		return nil, err
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return nil, fmt.Errorf("format prompt %s: %w", id, err)
	}
	return msgs, nil
}

// RenderText 渲染为单段文本（用于非对话模型，例如图片生成）
func (r *Registry) RenderText(ctx context.Context, id PromptID, vars map[string]any) (string, error) {
	msgs, err := r.Format(ctx, id, vars)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m == nil || strings.TrimSpace(m.Content) == "" {
			continue
		}
		parts = append(parts, strings.TrimSpace(m.Content))
	}
	return strings.Join(parts, "\n\n"), nil
}

func buildTemplate(id PromptID) (einoprompt.ChatTemplate, error) {
	base := "templates/" + string(id)
	user, err := readEmbeddedText(base + ".user.txt")
	if err != nil {
		return nil, fmt.Errorf("unknown prompt id: %s", id)
	}

	var templates []schema.MessagesTemplate
	system, err := readEmbeddedText(base + ".system.txt")
	switch {
	case err == nil:
		templates = append(templates, schema.SystemMessage(system))
	case !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}
	if withHistory[id] {
		templates = append(templates, schema.MessagesPlaceholder(HistoryKey, true))
	}
	templates = append(templates, schema.UserMessage(user))

	return einoprompt.FromMessages(schema.GoTemplate, templates...), nil
}

func readEmbeddedText(path string) (string, error) {
	b, err := templatesFS.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Package llm 提供 eino ChatModel 工厂与各 provider 适配器
package llm

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"shopee-seller-ai-api/internal/config"
	"shopee-seller-ai-api/pkg/logger"
)

// Provider 类型
const (
	KindOpenAI = "openai"
	KindGemini = "gemini"
	KindMock   = "mock"
)

// devPlaceholderKey 前端开发环境约定的占位 key，等同于未配置
const devPlaceholderKey = "test_key_for_development"

// EinoFactory 管理多个 Eino ChatModel 客户端实例
type EinoFactory struct {
	config *config.LLMConfig
	models map[string]model.BaseChatModel
	mu     sync.RWMutex
}

// NewEinoFactory 创建 Eino LLM 工厂
func NewEinoFactory(cfg *config.Config) *EinoFactory {
	return &EinoFactory{
		config: &cfg.LLM,
		models: make(map[string]model.BaseChatModel),
	}
}

// Get 获取指定名称的 ChatModel，如果未指定则返回默认客户端
func (f *EinoFactory) Get(ctx context.Context, name string) (model.BaseChatModel, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = f.config.DefaultProvider
	}

	f.mu.RLock()
	m, ok := f.models[name]
	f.mu.RUnlock()
	if ok {
		return m, nil
	}

	// 惰性加载
	f.mu.Lock()
	defer f.mu.Unlock()

	// 再次检查防止竞态
	if m, ok = f.models[name]; ok {
		return m, nil
	}

	providerCfg, ok := f.config.Providers[name]
	if !ok {
		return nil, fmt.Errorf("provider %s not found in LLM config", name)
	}

	chatModel, err := newChatModel(ctx, name, providerCfg)
	if err != nil {
		return nil, err
	}

	f.models[name] = chatModel
	return chatModel, nil
}

// Default 返回默认 ChatModel
func (f *EinoFactory) Default(ctx context.Context) (model.BaseChatModel, error) {
	return f.Get(ctx, "")
}

// Close 释放持有连接的客户端（Gemini）
func (f *EinoFactory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var firstErr error
	for name, m := range f.models {
		if c, ok := m.(io.Closer); ok {
			if err := c.Close(); err != nil && firstErr == nil {
				firstErr = fmt.Errorf("close provider %s: %w", name, err)
			}
		}
	}
	f.models = make(map[string]model.BaseChatModel)
	return firstErr
}

func newChatModel(ctx context.Context, name string, cfg config.ProviderConfig) (model.BaseChatModel, error) {
	kind := strings.ToLower(strings.TrimSpace(cfg.Kind))
	if kind == "" {
		kind = name
	}

	if kind != KindMock && IsMockKey(cfg.APIKey) {
		logger.Warn(ctx, "llm provider has no api key, falling back to mock model", "provider", name, "kind", kind)
		return NewMockChatModel(name), nil
	}

	switch kind {
	case KindMock:
		return NewMockChatModel(name), nil
	case KindGemini:
		return NewGeminiChatModel(ctx, cfg)
	case KindOpenAI:
		// 使用 Eino 的 OpenAI 适配器（兼容任意 OpenAI 协议的 base_url）
		chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			MaxTokens:   ptrInt(cfg.MaxTokens),
			Temperature: ptrFloat32(float32(cfg.Temperature)),
			Timeout:     cfg.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create eino chat model for %s: %w", name, err)
		}
		return chatModel, nil
	default:
		return nil, fmt.Errorf("provider %s has unsupported kind %q", name, cfg.Kind)
	}
}

// IsMockKey 未配置或为开发占位值时返回 true
func IsMockKey(key string) bool {
	k := strings.TrimSpace(key)
	return k == "" || k == devPlaceholderKey
}

func ptrInt(i int) *int {
	if i <= 0 {
		return nil
	}
	return &i
}

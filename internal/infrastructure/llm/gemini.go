package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"shopee-seller-ai-api/internal/config"
)

const geminiDefaultModel = "gemini-1.5-flash"

// ErrEmptyResponse 模型未返回任何文本
var ErrEmptyResponse = errors.New("llm returned empty response")

// GeminiChatModel 基于 generative-ai-go 的 eino BaseChatModel 适配器
type GeminiChatModel struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature float32
	timeout     time.Duration
}

// NewGeminiChatModel 创建 Gemini 客户端；调用方负责 Close
func NewGeminiChatModel(ctx context.Context, cfg config.ProviderConfig) (*GeminiChatModel, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if strings.TrimSpace(cfg.BaseURL) != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}
	cl, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	name := strings.TrimSpace(cfg.Model)
	if name == "" {
		name = geminiDefaultModel
	}
	return &GeminiChatModel{
		client:      cl,
		model:       name,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
		timeout:     cfg.Timeout,
	}, nil
}

func (g *GeminiChatModel) GetType() string { return "Gemini" }

// IsCallbacksEnabled 由适配器自行触发 callbacks
func (g *GeminiChatModel) IsCallbacksEnabled() bool { return true }

func (g *GeminiChatModel) Close() error {
	if g == nil || g.client == nil {
		return nil
	}
	return g.client.Close()
}

func (g *GeminiChatModel) Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	cfg := resolveConfig(g.model, g.maxTokens, g.temperature, opts...)
	return generateWithCallbacks(ctx, g.GetType(), input, cfg, g.generate(input))
}

func (g *GeminiChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return singleStream(g.Generate(ctx, input, opts...))
}

func (g *GeminiChatModel) generate(input []*schema.Message) generateFunc {
	return func(ctx context.Context, cfg *model.Config) (*schema.Message, error) {
		if len(input) == 0 {
			return nil, errors.New("gemini: no input messages")
		}
		if g.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}

		m := g.client.GenerativeModel(cfg.Model)
		m.GenerationConfig = genai.GenerationConfig{
			Temperature: ptrFloat32(cfg.Temperature),
		}
		if cfg.MaxTokens > 0 {
			m.GenerationConfig.MaxOutputTokens = ptrInt32(int32(cfg.MaxTokens))
		}

		system, history, last := toGeminiConversation(input)
		if system != "" {
			m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
		}

		cs := m.StartChat()
		cs.History = history
		resp, err := cs.SendMessage(ctx, genai.Text(last))
		if err != nil {
			return nil, fmt.Errorf("gemini generate: %w", err)
		}

		text := firstText(resp)
		if strings.TrimSpace(text) == "" {
			return nil, ErrEmptyResponse
		}

		out := schema.AssistantMessage(text, nil)
		if resp.UsageMetadata != nil {
			out.ResponseMeta = &schema.ResponseMeta{
				Usage: &schema.TokenUsage{
					PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
					CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
					TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
				},
			}
		}
		return out, nil
	}
}

// toGeminiConversation 拆分为 system instruction、历史轮次与最后一条用户输入
func toGeminiConversation(input []*schema.Message) (string, []*genai.Content, string) {
	var (
		system  []string
		history []*genai.Content
	)
	lastIdx := -1
	for i := len(input) - 1; i >= 0; i-- {
		if input[i] != nil && input[i].Role != schema.System {
			lastIdx = i
			break
		}
	}

	for i, msg := range input {
		if msg == nil || i == lastIdx {
			continue
		}
		switch msg.Role {
		case schema.System:
			system = append(system, msg.Content)
		case schema.Assistant:
			history = append(history, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(msg.Content)}})
		default:
			history = append(history, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(msg.Content)}})
		}
	}

	last := ""
	if lastIdx >= 0 {
		last = input[lastIdx].Content
	}
	return strings.Join(system, "\n\n"), history, last
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		var sb strings.Builder
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				sb.WriteString(string(t))
			}
		}
		if sb.Len() > 0 {
			return sb.String()
		}
	}
	return ""
}

func ptrFloat32(f float32) *float32 { return &f }
func ptrInt32(i int32) *int32       { return &i }

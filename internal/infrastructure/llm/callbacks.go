package llm

import (
	"context"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// generateFunc 实际的模型调用
type generateFunc func(ctx context.Context, cfg *model.Config) (*schema.Message, error)

// generateWithCallbacks 为自实现的 ChatModel 触发 eino callbacks（OnStart/OnEnd/OnError），
// 使全局观测 handler 与 eino-ext openai 模型看到一致的事件。
func generateWithCallbacks(
	ctx context.Context,
	typ string,
	input []*schema.Message,
	cfg *model.Config,
	fn generateFunc,
) (*schema.Message, error) {
	ctx = callbacks.EnsureRunInfo(ctx, typ, components.ComponentOfChatModel)
	ctx = callbacks.OnStart(ctx, &model.CallbackInput{
		Messages: input,
		Config:   cfg,
	})

	out, err := fn(ctx, cfg)
	if err != nil {
		callbacks.OnError(ctx, err)
		return nil, err
	}

	cbOut := &model.CallbackOutput{Message: out, Config: cfg}
	if out.ResponseMeta != nil && out.ResponseMeta.Usage != nil {
		u := out.ResponseMeta.Usage
		cbOut.TokenUsage = &model.TokenUsage{
			PromptTokens:     u.PromptTokens,
			CompletionTokens: u.CompletionTokens,
			TotalTokens:      u.TotalTokens,
		}
	}
	callbacks.OnEnd(ctx, cbOut)
	return out, nil
}

// resolveConfig 合并 provider 默认值与单次调用参数
func resolveConfig(defaultModel string, defaultMaxTokens int, defaultTemperature float32, opts ...model.Option) *model.Config {
	base := &model.Options{
		Model:       &defaultModel,
		MaxTokens:   &defaultMaxTokens,
		Temperature: &defaultTemperature,
	}
	o := model.GetCommonOptions(base, opts...)

	cfg := &model.Config{}
	if o.Model != nil {
		cfg.Model = *o.Model
	}
	if o.MaxTokens != nil {
		cfg.MaxTokens = *o.MaxTokens
	}
	if o.Temperature != nil {
		cfg.Temperature = *o.Temperature
	}
	return cfg
}

func singleStream(msg *schema.Message, err error) (*schema.StreamReader[*schema.Message], error) {
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

package model

import "time"

// CallOptions 单次模型调用参数；为空时使用 provider 配置的默认值
type CallOptions struct {
	Provider string
	Model    string

	Temperature *float32
	MaxTokens   *int
}

type LLMUsageMeta struct {
	Provider         string
	Model            string
	PromptTokens     int
	CompletionTokens int
	GeneratedAt      time.Time
}

// Float32 / Int 便于构造可选参数
func Float32(v float32) *float32 { return &v }
func Int(v int) *int             { return &v }

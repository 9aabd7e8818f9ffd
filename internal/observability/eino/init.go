// Package eino 注册 eino 全局回调，把模型调用接入 Prometheus、OpenTelemetry 与用量日志
package eino

import (
	"sync"

	einocallbacks "github.com/cloudwego/eino/callbacks"
	cbtemplate "github.com/cloudwego/eino/utils/callbacks"

	llmctx "shopee-seller-ai-api/internal/domain/service"
)

var initOnce sync.Once

// Init 注册 Eino 全局 callbacks（进程级一次）
func Init(recorder llmctx.LLMUsageRecorder) {
	initOnce.Do(func() {
		einocallbacks.AppendGlobalHandlers(newHandler(recorder))
	})
}

func newHandler(recorder llmctx.LLMUsageRecorder) einocallbacks.Handler {
	return cbtemplate.NewHandlerHelper().
		ChatModel(newChatModelCallbackHandler(recorder)).
		Handler()
}

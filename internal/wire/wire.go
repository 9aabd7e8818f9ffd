//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"shopee-seller-ai-api/internal/application/assistant"
	"shopee-seller-ai-api/internal/application/codegen"
	"shopee-seller-ai-api/internal/application/listing"
	"shopee-seller-ai-api/internal/config"
	"shopee-seller-ai-api/internal/infrastructure/llm"
	"shopee-seller-ai-api/internal/infrastructure/persistence/redis"
	"shopee-seller-ai-api/internal/interfaces/http/handler"
	"shopee-seller-ai-api/internal/interfaces/http/middleware"
	"shopee-seller-ai-api/internal/interfaces/http/router"
	workflowport "shopee-seller-ai-api/internal/workflow/port"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RedisSet,
		LLMSet,
		ServiceSet,
		RouterSet,
	)
	return nil, nil, nil
}

// RedisSet Redis 与限流提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClientOptional,
	ProvideRateLimiter,
	wire.Bind(new(middleware.RateLimiter), new(*redis.RateLimiter)),
)

// LLMSet 文本模型与图片生成提供者集合
var LLMSet = wire.NewSet(
	ProvideChatModelFactory,
	ProvideProviderRouter,
	llm.NewImageClient,
	wire.Bind(new(workflowport.ChatModelFactory), new(*llm.EinoFactory)),
	wire.Bind(new(workflowport.ImageGenerator), new(*llm.ImageClient)),
)

// ServiceSet 应用服务提供者集合
var ServiceSet = wire.NewSet(
	listing.NewService,
	codegen.NewService,
	assistant.NewService,
	ProvideCatalogService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	handler.NewHealthHandler,
	handler.NewProductHandler,
	handler.NewDescriptionHandler,
	handler.NewCaptionHandler,
	handler.NewImageHandler,
	handler.NewProductManagerHandler,
	handler.NewCodeGeneratorHandler,
	wire.Struct(new(handler.Handlers), "*"),
	router.New,
)

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"shopee-seller-ai-api/internal/application/catalog"
	"shopee-seller-ai-api/internal/config"
	"shopee-seller-ai-api/internal/infrastructure/llm"
	"shopee-seller-ai-api/internal/infrastructure/persistence/redis"
	"shopee-seller-ai-api/internal/infrastructure/shopee"
	"shopee-seller-ai-api/internal/workflow/chain"
	"shopee-seller-ai-api/pkg/logger"
)

// ProvideRedisClientOptional 提供可选的 Redis 客户端
// 未启用或不可达时返回 nil，限流退化为进程内存储
func ProvideRedisClientOptional(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		return nil, func() {}, nil
	}
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		logger.Warn(ctx, "redis not available, rate limiter falls back to memory", "error", err.Error())
		return nil, func() {}, nil
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideRateLimiter 提供限流器
func ProvideRateLimiter(ctx context.Context, cfg *config.Config, client *redis.Client) (*redis.RateLimiter, error) {
	limiter, err := redis.NewRateLimiter(cfg.Security.RateLimit, client)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "rate limiter ready",
		"backend", limiter.Backend(),
		"window", cfg.Security.RateLimit.Window().String(),
		"max_free", cfg.Security.RateLimit.MaxFree,
	)
	return limiter, nil
}

// ProvideChatModelFactory 提供 ChatModel 工厂，退出时释放 Gemini 连接
func ProvideChatModelFactory(ctx context.Context, cfg *config.Config) (*llm.EinoFactory, func()) {
	factory := llm.NewEinoFactory(cfg)
	cleanup := func() {
		if err := factory.Close(); err != nil {
			logger.Warn(ctx, "failed to close llm providers", "error", err.Error())
		}
	}
	return factory, cleanup
}

// ProvideProviderRouter 按配置的工作流映射选择 provider
func ProvideProviderRouter(cfg *config.Config) chain.ProviderRouter {
	return cfg.LLM
}

// ProvideCatalogService 组装商品列表服务：开放平台客户端与 mock 目录
func ProvideCatalogService(cfg *config.Config) *catalog.Service {
	return catalog.NewService(cfg, shopee.NewClient(cfg), shopee.NewMockCatalog())
}

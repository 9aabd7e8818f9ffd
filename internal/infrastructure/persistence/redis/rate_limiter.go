package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"go.opentelemetry.io/otel/attribute"

	"shopee-seller-ai-api/internal/config"
)

const memoryCleanUpInterval = time.Minute

// RateLimiter 固定窗口限流器（ulule/limiter），有 Redis 时多实例共享计数
type RateLimiter struct {
	limiter *limiter.Limiter
	backend string
}

// Quota 单次检查后的配额状态
type Quota struct {
	Limit     int64
	Remaining int64
	// Reset 窗口重置时间（Unix 秒）
	Reset   int64
	Reached bool
}

// NewRateLimiter 创建限流器；client 为 nil 时使用进程内存储
func NewRateLimiter(cfg config.RateLimitConfig, client *Client) (*RateLimiter, error) {
	opts := limiter.StoreOptions{
		Prefix:          storePrefix(cfg.KeyPrefix),
		MaxRetry:        3,
		CleanUpInterval: memoryCleanUpInterval,
	}

	var (
		store   limiter.Store
		backend = "memory"
	)
	if client != nil {
		s, err := sredis.NewStoreWithOptions(client.Redis(), opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
		}
		store = s
		backend = "redis"
	} else {
		store = memory.NewStoreWithOptions(opts)
	}

	rate := limiter.Rate{Period: cfg.Window(), Limit: cfg.MaxFree}
	if rate.Limit <= 0 {
		rate.Limit = 20
	}

	return &RateLimiter{
		limiter: limiter.New(store, rate),
		backend: backend,
	}, nil
}

// Backend 返回存储类型：redis / memory
func (l *RateLimiter) Backend() string {
	return l.backend
}

// Take 消耗一次配额
func (l *RateLimiter) Take(ctx context.Context, key string) (Quota, error) {
	ctx, span := tracer.Start(ctx, "ratelimit.Take")
	defer span.End()
	span.SetAttributes(
		attribute.String("ratelimit.key", key),
		attribute.String("ratelimit.backend", l.backend),
	)

	lc, err := l.limiter.Get(ctx, key)
	if err != nil {
		span.RecordError(err)
		return Quota{}, err
	}

	span.SetAttributes(
		attribute.Int64("ratelimit.remaining", lc.Remaining),
		attribute.Bool("ratelimit.allowed", !lc.Reached),
	)
	return Quota{
		Limit:     lc.Limit,
		Remaining: lc.Remaining,
		Reset:     lc.Reset,
		Reached:   lc.Reached,
	}, nil
}

// BuildRateLimitKey 构建限流键：登录用户按用户 ID，匿名按客户端 IP
func BuildRateLimitKey(userID, clientIP string) string {
	if userID != "" {
		return "user:" + userID
	}
	return "ip:" + clientIP
}

func storePrefix(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		p = "ratelimit"
	}
	return strings.TrimSuffix(p, ":")
}

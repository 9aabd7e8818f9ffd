// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shopee-seller-ai-api/internal/infrastructure/persistence/redis"
	"shopee-seller-ai-api/internal/interfaces/http/dto"
	"shopee-seller-ai-api/pkg/logger"
	"shopee-seller-ai-api/pkg/metrics"
)

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	// Enabled 是否启用限流
	Enabled bool
}

// RateLimiter 限流器接口
type RateLimiter interface {
	Take(ctx context.Context, key string) (redis.Quota, error)
}

// RateLimit 固定窗口限流中间件
// 登录用户按用户 ID 计数，匿名用户按客户端 IP 计数，并返回 RateLimit-* 标准响应头
func RateLimit(cfg RateLimitConfig, limiter RateLimiter) gin.HandlerFunc {
	// 如果未启用限流，返回空中间件
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		key := redis.BuildRateLimitKey(GetUserIDFromGin(c), c.ClientIP())

		quota, err := limiter.Take(c.Request.Context(), key)
		if err != nil {
			// 限流器故障时放行，避免影响业务
			logger.Warn(c.Request.Context(), "rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}

		setRateLimitHeaders(c, quota)

		if quota.Reached {
			metrics.RateLimitRejected.WithLabelValues(routePath(c)).Inc()
			dto.TooManyRequests(c)
			return
		}

		c.Next()
	}
}

// setRateLimitHeaders 写入 RateLimit-Limit / Remaining / Reset（距离重置的秒数）
func setRateLimitHeaders(c *gin.Context, q redis.Quota) {
	reset := q.Reset - time.Now().Unix()
	if reset < 0 {
		reset = 0
	}
	c.Header("RateLimit-Limit", strconv.FormatInt(q.Limit, 10))
	c.Header("RateLimit-Remaining", strconv.FormatInt(q.Remaining, 10))
	c.Header("RateLimit-Reset", strconv.FormatInt(reset, 10))
}

func routePath(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return "unknown"
}

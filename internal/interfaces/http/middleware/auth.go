// Package middleware 提供 HTTP 中间件
package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"

	"shopee-seller-ai-api/internal/interfaces/http/dto"
	"shopee-seller-ai-api/pkg/logger"
	"shopee-seller-ai-api/pkg/utils"
)

// gin.Context 中的用户信息键
const (
	ctxUserID = "user_id"
	ctxPlan   = "plan"
)

// AuthConfig 认证配置
type AuthConfig struct {
	// Secret JWT 密钥
	Secret string
	// Issuer JWT 签发者
	Issuer string
	// Required 为 false 时缺失或无效的 token 直接放行，按匿名用户处理
	Required bool
}

// Auth Bearer Token 认证中间件
func Auth(cfg AuthConfig) gin.HandlerFunc {
	jwtManager := utils.NewJWTManager(cfg.Secret, cfg.Issuer)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			if cfg.Required {
				dto.Unauthorized(c, "Missing auth token")
				return
			}
			c.Next()
			return
		}

		// 与前端保持一致：取空格后的部分，不校验 Bearer 前缀
		token := ""
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 {
			token = strings.TrimSpace(parts[1])
		}

		claims, err := jwtManager.ParseToken(token)
		if err != nil {
			if cfg.Required {
				dto.Unauthorized(c, "Invalid token")
				return
			}
			if stderrors.Is(err, utils.ErrExpiredToken) {
				logger.Debug(c.Request.Context(), "expired token ignored")
			}
			c.Next()
			return
		}

		// 注入用户信息到 Context
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxPlan, claims.Plan)
		ctx := logger.WithContext(c.Request.Context(), logger.UserIDKey, claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetUserIDFromGin 从 gin.Context 获取用户 ID；匿名请求返回空串
func GetUserIDFromGin(c *gin.Context) string {
	return c.GetString(ctxUserID)
}

// GetPlanFromGin 从 gin.Context 获取订阅计划
func GetPlanFromGin(c *gin.Context) string {
	return c.GetString(ctxPlan)
}

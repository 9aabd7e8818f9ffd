// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"

	"shopee-seller-ai-api/internal/interfaces/http/handler"
)

// RegisterAPIRoutes 注册 /api 路由；limited 作用于所有生成类接口
func RegisterAPIRoutes(api *gin.RouterGroup, h *handler.Handlers, limited gin.HandlerFunc) {
	// Shopee 商品
	api.GET("/products", h.Product.List)
	api.POST("/generate-description", h.Description.Generate)

	// caption
	api.POST("/caption", limited, h.Caption.Generate)

	// 商品图片
	image := api.Group("/image", limited)
	{
		image.POST("", h.Image.Generate)
		image.POST("/single", h.Image.Single)
	}

	// AI 商品经理
	pm := api.Group("/ai-product-manager", limited)
	{
		pm.POST("/content", h.ProductManager.Content)
		pm.POST("/all", h.ProductManager.All)
	}

	// 代码生成与编程助手
	cg := api.Group("/code-generator")
	{
		cg.GET("/templates", h.CodeGenerator.Templates)
		cg.GET("/health", h.CodeGenerator.Health)

		cg.POST("/generate", limited, h.CodeGenerator.Generate)
		cg.POST("/batch", limited, h.CodeGenerator.Batch)
		cg.POST("/chat", limited, h.CodeGenerator.Chat)
		cg.POST("/code-chat", limited, h.CodeGenerator.CodeChat)
		cg.POST("/explain-code", limited, h.CodeGenerator.ExplainCode)
		cg.POST("/review-code", limited, h.CodeGenerator.ReviewCode)
	}
}

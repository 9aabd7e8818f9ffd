// Package handler 提供 HTTP 请求处理器
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopee-seller-ai-api/internal/application/catalog"
	"shopee-seller-ai-api/internal/interfaces/http/dto"
)

// ProductHandler Shopee 商品列表处理器
type ProductHandler struct {
	svc *catalog.Service
}

func NewProductHandler(svc *catalog.Service) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List 获取店铺商品列表，响应透传开放平台格式
// @Summary 获取店铺商品列表
// @Tags Products
// @Produce json
// @Param shopId query int false "店铺 ID"
// @Param token query string false "店铺 access token"
// @Success 200 {object} entity.ProductList
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	q, err := dto.BindProductListQuery(c)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}

	list, err := h.svc.ListProducts(c.Request.Context(), q.ShopID, q.Token)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

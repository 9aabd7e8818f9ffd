package dto

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"shopee-seller-ai-api/pkg/errors"
)

// MsgInvalidShopID shopId 无法解析为整数
const MsgInvalidShopID = "Invalid 'shopId' query parameter"

// ProductListQuery GET /api/products 查询参数
type ProductListQuery struct {
	ShopID int64
	Token  string
}

// BindProductListQuery 从查询串读取 shopId 与 token；shopId 缺失时为 0
func BindProductListQuery(c *gin.Context) (ProductListQuery, error) {
	q := ProductListQuery{Token: strings.TrimSpace(c.Query("token"))}

	raw := strings.TrimSpace(c.Query("shopId"))
	if raw == "" {
		return q, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return q, errors.Invalid(MsgInvalidShopID).WithError(err)
	}
	q.ShopID = id
	return q, nil
}

package port

import (
	"context"

	"shopee-seller-ai-api/internal/domain/entity"
)

// ProductQuery 店铺商品查询条件
type ProductQuery struct {
	ShopID      int64
	AccessToken string
	Offset      int
	PageSize    int
}

// ProductCatalog 店铺商品来源（Shopee 开放平台或本地 mock）
type ProductCatalog interface {
	ListProducts(ctx context.Context, q ProductQuery) (*entity.ProductList, error)
}

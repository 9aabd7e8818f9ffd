package shopee

import (
	"context"

	"shopee-seller-ai-api/internal/domain/entity"
	"shopee-seller-ai-api/internal/workflow/port"
	"shopee-seller-ai-api/pkg/metrics"
)

// MockCatalog 开发环境使用的固定商品列表
type MockCatalog struct{}

var _ port.ProductCatalog = MockCatalog{}

func NewMockCatalog() MockCatalog { return MockCatalog{} }

// ListProducts 返回 3 个固定商品，忽略分页参数
func (MockCatalog) ListProducts(_ context.Context, _ port.ProductQuery) (*entity.ProductList, error) {
	items := []entity.Product{
		{ItemID: 1, ItemName: "Điện thoại iPhone 15 Pro Max", ItemStatus: entity.ProductStatusNormal, Price: 29990000, Stock: 50},
		{ItemID: 2, ItemName: "Laptop Dell XPS 13", ItemStatus: entity.ProductStatusNormal, Price: 25990000, Stock: 25},
		{ItemID: 3, ItemName: "Tai nghe AirPods Pro", ItemStatus: entity.ProductStatusNormal, Price: 5990000, Stock: 100},
	}
	metrics.ShopeeCallTotal.WithLabelValues(endpointItemList, "mock").Inc()
	return &entity.ProductList{
		Message: "Success",
		Response: entity.ProductPage{
			Item:       items,
			TotalCount: len(items),
		},
	}, nil
}

// Package catalog 提供 Shopee 店铺商品查询
package catalog

import (
	"context"
	"strings"

	"shopee-seller-ai-api/internal/config"
	"shopee-seller-ai-api/internal/domain/entity"
	workflowport "shopee-seller-ai-api/internal/workflow/port"
	"shopee-seller-ai-api/pkg/errors"
	"shopee-seller-ai-api/pkg/logger"
)

// Service 店铺商品服务：开发环境、未提供 token 或使用测试 token 时走 mock 数据源
type Service struct {
	live        workflowport.ProductCatalog
	mock        workflowport.ProductCatalog
	development bool
	mockToken   string
}

func NewService(cfg *config.Config, live, mock workflowport.ProductCatalog) *Service {
	return &Service{
		live:        live,
		mock:        mock,
		development: cfg.App.IsDevelopment(),
		mockToken:   strings.TrimSpace(cfg.Shopee.MockToken),
	}
}

// ListProducts 查询店铺商品列表
func (s *Service) ListProducts(ctx context.Context, shopID int64, token string) (*entity.ProductList, error) {
	q := workflowport.ProductQuery{ShopID: shopID, AccessToken: strings.TrimSpace(token)}

	src := s.live
	if s.useMock(q.AccessToken) {
		src = s.mock
	}

	out, err := src.ListProducts(ctx, q)
	if err != nil {
		logger.Error(ctx, "list shopee products failed", err, "shop_id", shopID)
		return nil, errors.ErrShopeeCallFailed.WithError(err)
	}
	return out, nil
}

func (s *Service) useMock(token string) bool {
	return s.development || token == "" || (s.mockToken != "" && token == s.mockToken)
}

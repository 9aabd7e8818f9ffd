// Package shopee 提供 Shopee 开放平台商品接口客户端与本地 mock 数据源
package shopee

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"

	"shopee-seller-ai-api/internal/config"
	"shopee-seller-ai-api/internal/domain/entity"
	"shopee-seller-ai-api/internal/workflow/port"
	"shopee-seller-ai-api/pkg/logger"
	"shopee-seller-ai-api/pkg/metrics"
)

const (
	itemListPath     = "/product/get_item_list"
	endpointItemList = "get_item_list"
	defaultPageSize  = 50
)

// Client Shopee partner API 客户端
type Client struct {
	client   *resty.Client
	pageSize int
}

var _ port.ProductCatalog = (*Client)(nil)

// NewClient 创建 Shopee 客户端
func NewClient(cfg *config.Config) *Client {
	sc := cfg.Shopee
	client := resty.New().
		SetBaseURL(strings.TrimRight(sc.BaseURL, "/")).
		SetHeader("Accept", "application/json")
	if sc.Timeout > 0 {
		client.SetTimeout(sc.Timeout)
	}

	pageSize := sc.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return &Client{client: client, pageSize: pageSize}
}

// ListProducts 调用 get_item_list，响应原样透传
func (c *Client) ListProducts(ctx context.Context, q port.ProductQuery) (*entity.ProductList, error) {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = c.pageSize
	}

	var out entity.ProductList
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(q.AccessToken).
		SetQueryParams(map[string]string{
			"shop_id":   strconv.FormatInt(q.ShopID, 10),
			"offset":    strconv.Itoa(q.Offset),
			"page_size": strconv.Itoa(pageSize),
		}).
		SetResult(&out).
		Get(itemListPath)
	if err != nil {
		metrics.ShopeeCallTotal.WithLabelValues(endpointItemList, "error").Inc()
		return nil, fmt.Errorf("shopee request failed: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		metrics.ShopeeCallTotal.WithLabelValues(endpointItemList, "error").Inc()
		logger.Warn(ctx, "shopee api returned error status",
			"status", resp.StatusCode(),
			"shop_id", q.ShopID,
			"body", truncate(resp.String(), 512),
		)
		return nil, fmt.Errorf("shopee api error (status %d)", resp.StatusCode())
	}

	metrics.ShopeeCallTotal.WithLabelValues(endpointItemList, "success").Inc()
	return &out, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

package entity

// ProductStatus Shopee 商品状态
type ProductStatus string

const (
	ProductStatusNormal   ProductStatus = "NORMAL"
	ProductStatusBanned   ProductStatus = "BANNED"
	ProductStatusUnlisted ProductStatus = "UNLIST"
)

// Product Shopee 店铺商品（字段名与开放平台一致）
type Product struct {
	ItemID     int64         `json:"item_id"`
	ItemName   string        `json:"item_name"`
	ItemStatus ProductStatus `json:"item_status"`
	Price      int64         `json:"price"`
	Stock      int           `json:"stock"`
}

// ProductPage 商品列表分页结果
type ProductPage struct {
	Item       []Product `json:"item"`
	TotalCount int       `json:"total_count"`
	HasNext    bool      `json:"has_next_page,omitempty"`
	NextOffset int       `json:"next_offset,omitempty"`
}

// ProductList 开放平台 get_item_list 响应
type ProductList struct {
	Error    *string     `json:"error"`
	Message  string      `json:"message"`
	Response ProductPage `json:"response"`
}

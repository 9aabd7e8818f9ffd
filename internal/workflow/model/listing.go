package model

// CaptionInput 商品 caption 生成
type CaptionInput struct {
	Name     string
	Keywords []string
	Style    string

	// 备用请求格式 {type, topic, tone, length, platform, description} 带来的附加上下文
	ContentType string
	Length      string
	Platform    string
	Description string

	CallOptions
}

// DescriptionInput Shopee 商品描述生成
type DescriptionInput struct {
	Name     string
	Features []string

	CallOptions
}

// ProductContentType AI 商品经理内容类型
type ProductContentType string

const (
	ContentDescription      ProductContentType = "description"
	ContentShortDescription ProductContentType = "shortDescription"
	ContentFeatures         ProductContentType = "features"
)

// Valid 是否为支持的内容类型
func (t ProductContentType) Valid() bool {
	switch t {
	case ContentDescription, ContentShortDescription, ContentFeatures:
		return true
	}
	return false
}

type ProductContentInput struct {
	ProductName string
	Category    string
	Keywords    []string
	Type        ProductContentType

	CallOptions
}

// ProductContent 单一类型的生成结果：features 使用 Items，其余使用 Text
type ProductContent struct {
	Type  ProductContentType
	Text  string
	Items []string
}

// AllProductContent 三种内容的合集
type AllProductContent struct {
	Description      string
	ShortDescription string
	Features         []string
}

// ImageInput 商品图片生成
type ImageInput struct {
	Name        string
	Description string
	Style       string
	Count       int
}

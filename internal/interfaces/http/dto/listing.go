package dto

import (
	"strings"

	wfmodel "shopee-seller-ai-api/internal/workflow/model"
)

// CaptionRequest caption 生成请求
// 同时兼容 {type, topic, tone, length, platform, description} 格式
type CaptionRequest struct {
	Name     string     `json:"name"`
	Keywords StringList `json:"keywords,omitempty"`
	Style    string     `json:"style,omitempty"`

	Type        string `json:"type,omitempty"`
	Topic       string `json:"topic,omitempty"`
	Tone        string `json:"tone,omitempty"`
	Length      string `json:"length,omitempty"`
	Platform    string `json:"platform,omitempty"`
	Description string `json:"description,omitempty"`
}

// ToInput 转换为工作流输入；name 缺失时使用 topic，style 缺失时使用 tone
func (r *CaptionRequest) ToInput() *wfmodel.CaptionInput {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		name = strings.TrimSpace(r.Topic)
	}
	style := r.Style
	if style == "" {
		style = r.Tone
	}
	return &wfmodel.CaptionInput{
		Name:        name,
		Keywords:    r.Keywords,
		Style:       style,
		ContentType: r.Type,
		Length:      r.Length,
		Platform:    r.Platform,
		Description: r.Description,
	}
}

// CaptionResponse caption 生成响应
type CaptionResponse struct {
	Captions []string `json:"captions"`
}

// DescriptionRequest 商品描述生成请求
type DescriptionRequest struct {
	Name     string     `json:"name" binding:"required"`
	Features StringList `json:"features,omitempty"`
}

func (r *DescriptionRequest) ToInput() *wfmodel.DescriptionInput {
	return &wfmodel.DescriptionInput{
		Name:     strings.TrimSpace(r.Name),
		Features: r.Features,
	}
}

// DescriptionResponse 商品描述生成响应
type DescriptionResponse struct {
	Description string `json:"description"`
}

// ImageRequest 商品图片生成请求
type ImageRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Style       string   `json:"style,omitempty"`
	Count       LooseInt `json:"count,omitempty"`
}

func (r *ImageRequest) ToInput() *wfmodel.ImageInput {
	return &wfmodel.ImageInput{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Style:       r.Style,
		Count:       int(r.Count),
	}
}

// ImagesResponse 多图生成响应
type ImagesResponse struct {
	Images      []string `json:"images"`
	Count       int      `json:"count"`
	ProductName string   `json:"productName"`
}

// SingleImageResponse 单图生成响应
type SingleImageResponse struct {
	Image       string `json:"image"`
	ProductName string `json:"productName"`
}

// ProductContentRequest AI 商品经理请求；/all 忽略 type
type ProductContentRequest struct {
	ProductName string     `json:"productName" binding:"required"`
	Category    string     `json:"category" binding:"required"`
	Keywords    StringList `json:"keywords,omitempty"`
	Type        string     `json:"type,omitempty"`
}

func (r *ProductContentRequest) ToInput() *wfmodel.ProductContentInput {
	return &wfmodel.ProductContentInput{
		ProductName: strings.TrimSpace(r.ProductName),
		Category:    strings.TrimSpace(r.Category),
		Keywords:    r.Keywords,
		Type:        wfmodel.ProductContentType(r.Type),
	}
}

// ProductContentResponse 单一类型内容响应；features 时 content 为数组
type ProductContentResponse struct {
	ProductName string `json:"productName"`
	Category    string `json:"category"`
	Type        string `json:"type"`
	Content     any    `json:"content"`
}

// ToProductContentResponse 构造单一类型内容响应
func ToProductContentResponse(in *wfmodel.ProductContentInput, out *wfmodel.ProductContent) *ProductContentResponse {
	resp := &ProductContentResponse{
		ProductName: in.ProductName,
		Category:    in.Category,
		Type:        string(out.Type),
		Content:     out.Text,
	}
	if out.Type == wfmodel.ContentFeatures {
		items := out.Items
		if items == nil {
			items = []string{}
		}
		resp.Content = items
	}
	return resp
}

// AllProductContentResponse 全部内容响应
type AllProductContentResponse struct {
	ProductName      string   `json:"productName"`
	Category         string   `json:"category"`
	Description      string   `json:"description"`
	ShortDescription string   `json:"shortDescription"`
	Features         []string `json:"features"`
}

func ToAllProductContentResponse(in *wfmodel.ProductContentInput, out *wfmodel.AllProductContent) *AllProductContentResponse {
	features := out.Features
	if features == nil {
		features = []string{}
	}
	return &AllProductContentResponse{
		ProductName:      in.ProductName,
		Category:         in.Category,
		Description:      out.Description,
		ShortDescription: out.ShortDescription,
		Features:         features,
	}
}

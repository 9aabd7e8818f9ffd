// Package handler 提供 HTTP 请求处理器
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shopee-seller-ai-api/internal/application/listing"
	"shopee-seller-ai-api/internal/interfaces/http/dto"
)

var (
	captionMessages     = dto.FieldMessages{"name": listing.MsgMissingName, "topic": listing.MsgMissingName}
	descriptionMessages = dto.FieldMessages{"name": listing.MsgMissingName}
	imageMessages       = dto.FieldMessages{
		"name":        listing.MsgMissingName,
		"description": listing.MsgMissingDescription,
	}
	productContentMessages = dto.FieldMessages{
		"productName": listing.MsgInvalidProductName,
		"category":    listing.MsgInvalidCategory,
		"type":        listing.MsgInvalidContentType,
	}
)

// CaptionHandler caption 生成处理器
type CaptionHandler struct {
	svc *listing.Service
}

func NewCaptionHandler(svc *listing.Service) *CaptionHandler {
	return &CaptionHandler{svc: svc}
}

// Generate 生成商品 caption
// @Summary 生成商品 caption
// @Tags Listing
// @Accept json
// @Produce json
// @Param body body dto.CaptionRequest true "商品信息"
// @Success 200 {object} dto.CaptionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/caption [post]
func (h *CaptionHandler) Generate(c *gin.Context) {
	var req dto.CaptionRequest
	if err := dto.BindJSON(c, &req, captionMessages); err != nil {
		dto.AbortWithError(c, err)
		return
	}

	captions, err := h.svc.Captions(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}
	if captions == nil {
		captions = []string{}
	}
	c.JSON(http.StatusOK, dto.CaptionResponse{Captions: captions})
}

// DescriptionHandler Shopee 商品描述处理器
type DescriptionHandler struct {
	svc *listing.Service
}

func NewDescriptionHandler(svc *listing.Service) *DescriptionHandler {
	return &DescriptionHandler{svc: svc}
}

// Generate 生成商品描述
// @Summary 生成 Shopee 商品描述
// @Tags Listing
// @Accept json
// @Produce json
// @Param body body dto.DescriptionRequest true "商品名称与卖点"
// @Success 200 {object} dto.DescriptionResponse
// @Router /api/generate-description [post]
func (h *DescriptionHandler) Generate(c *gin.Context) {
	var req dto.DescriptionRequest
	if err := dto.BindJSON(c, &req, descriptionMessages); err != nil {
		dto.AbortWithError(c, err)
		return
	}

	text, err := h.svc.Description(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.DescriptionResponse{Description: text})
}

// ImageHandler 商品图片处理器
type ImageHandler struct {
	svc *listing.Service
}

func NewImageHandler(svc *listing.Service) *ImageHandler {
	return &ImageHandler{svc: svc}
}

// Generate 生成 1..5 张图片
// @Summary 生成商品图片
// @Tags Image
// @Accept json
// @Produce json
// @Param body body dto.ImageRequest true "商品信息与数量"
// @Success 200 {object} dto.ImagesResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/image [post]
func (h *ImageHandler) Generate(c *gin.Context) {
	var req dto.ImageRequest
	if err := dto.BindJSON(c, &req, imageMessages); err != nil {
		dto.AbortWithError(c, err)
		return
	}

	images, err := h.svc.Images(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ImagesResponse{
		Images:      images,
		Count:       len(images),
		ProductName: req.Name,
	})
}

// Single 生成单张图片
// @Summary 生成单张商品图片
// @Tags Image
// @Accept json
// @Produce json
// @Param body body dto.ImageRequest true "商品信息"
// @Success 200 {object} dto.SingleImageResponse
// @Router /api/image/single [post]
func (h *ImageHandler) Single(c *gin.Context) {
	var req dto.ImageRequest
	if err := dto.BindJSON(c, &req, imageMessages); err != nil {
		dto.AbortWithError(c, err)
		return
	}

	image, err := h.svc.SingleImage(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SingleImageResponse{Image: image, ProductName: req.Name})
}

// ProductManagerHandler AI 商品经理处理器
type ProductManagerHandler struct {
	svc *listing.Service
}

func NewProductManagerHandler(svc *listing.Service) *ProductManagerHandler {
	return &ProductManagerHandler{svc: svc}
}

// Content 生成单一类型内容
// @Summary 生成商品内容
// @Tags ProductManager
// @Accept json
// @Produce json
// @Param body body dto.ProductContentRequest true "商品信息与内容类型"
// @Success 200 {object} dto.ProductContentResponse
// @Router /api/ai-product-manager/content [post]
func (h *ProductManagerHandler) Content(c *gin.Context) {
	var req dto.ProductContentRequest
	if err := dto.BindJSON(c, &req, productContentMessages); err != nil {
		dto.AbortWithError(c, err)
		return
	}

	in := req.ToInput()
	out, err := h.svc.ProductContent(c.Request.Context(), in)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToProductContentResponse(in, out))
}

// All 并发生成全部内容
// @Summary 生成全部商品内容
// @Tags ProductManager
// @Accept json
// @Produce json
// @Param body body dto.ProductContentRequest true "商品信息"
// @Success 200 {object} dto.AllProductContentResponse
// @Router /api/ai-product-manager/all [post]
func (h *ProductManagerHandler) All(c *gin.Context) {
	var req dto.ProductContentRequest
	if err := dto.BindJSON(c, &req, productContentMessages); err != nil {
		dto.AbortWithError(c, err)
		return
	}

	in := req.ToInput()
	out, err := h.svc.AllProductContent(c.Request.Context(), in)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAllProductContentResponse(in, out))
}

// Package listing 提供商品上架内容生成：caption、描述、AI 商品经理内容与商品图片
package listing

import (
	"context"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"shopee-seller-ai-api/internal/workflow/chain"
	wfmodel "shopee-seller-ai-api/internal/workflow/model"
	"shopee-seller-ai-api/internal/workflow/normalize"
	workflowport "shopee-seller-ai-api/internal/workflow/port"
	"shopee-seller-ai-api/pkg/errors"
	"shopee-seller-ai-api/pkg/logger"
)

const (
	captionCount = 3
	featureCount = 5

	// MaxImages 单次请求最多生成的图片数
	MaxImages = 5
)

// 生成失败时返回给前端的提示
const (
	MsgCaptionFailed     = "Không thể tạo caption sản phẩm"
	MsgDescriptionFailed = "Không thể tạo mô tả sản phẩm"
	MsgContentFailed     = "Không thể tạo nội dung sản phẩm"
	MsgImageFailed       = "Không thể tạo hình ảnh sản phẩm"
)

// 参数校验提示
const (
	MsgMissingName        = "Missing product name"
	MsgMissingDescription = "Missing product description"
	MsgInvalidProductName = "Missing or invalid 'productName' field"
	MsgInvalidCategory    = "Missing or invalid 'category' field"
	MsgInvalidContentType = "Missing or invalid 'type' field. Must be one of: description, shortDescription, features"
)

// Service 商品内容生成服务
type Service struct {
	captions     *chain.CaptionChain
	descriptions *chain.DescriptionChain
	content      *chain.ProductContentChain
	images       *chain.ImageChain
}

func NewService(factory workflowport.ChatModelFactory, router chain.ProviderRouter, images workflowport.ImageGenerator) *Service {
	return &Service{
		captions:     chain.NewCaptionChain(factory, router),
		descriptions: chain.NewDescriptionChain(factory, router),
		content:      chain.NewProductContentChain(factory, router),
		images:       chain.NewImageChain(images),
	}
}

// Captions 生成最多 3 条 caption
func (s *Service) Captions(ctx context.Context, in *wfmodel.CaptionInput) ([]string, error) {
	if in == nil || strings.TrimSpace(in.Name) == "" {
		return nil, errors.Invalid(MsgMissingName)
	}

	out, err := s.captions.Invoke(ctx, in)
	if err != nil {
		return nil, upstream(ctx, err, MsgCaptionFailed)
	}
	return normalize.Normalize(out.Content, normalize.TextList(captionCount, "captions")).Items, nil
}

// Description 生成 Shopee SEO 描述
func (s *Service) Description(ctx context.Context, in *wfmodel.DescriptionInput) (string, error) {
	if in == nil || strings.TrimSpace(in.Name) == "" {
		return "", errors.Invalid(MsgMissingName)
	}

	out, err := s.descriptions.Invoke(ctx, in)
	if err != nil {
		return "", upstream(ctx, err, MsgDescriptionFailed)
	}
	return normalize.Normalize(out.Content, normalize.ScalarText(MsgDescriptionFailed)).Text, nil
}

// ProductContent 生成单一类型的商品内容
func (s *Service) ProductContent(ctx context.Context, in *wfmodel.ProductContentInput) (*wfmodel.ProductContent, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}
	if !in.Type.Valid() {
		return nil, errors.Invalid(MsgInvalidContentType)
	}

	out, err := s.content.Invoke(ctx, in)
	if err != nil {
		return nil, upstream(ctx, err, MsgContentFailed)
	}

	res := &wfmodel.ProductContent{Type: in.Type}
	if in.Type == wfmodel.ContentFeatures {
		res.Items = normalize.Normalize(out.Content, normalize.FeatureList(featureCount)).Items
	} else {
		res.Text = normalize.Normalize(out.Content, normalize.ScalarText(MsgContentFailed)).Text
	}
	return res, nil
}

// AllProductContent 并发生成三种内容，任一失败则整体失败
func (s *Service) AllProductContent(ctx context.Context, in *wfmodel.ProductContentInput) (*wfmodel.AllProductContent, error) {
	if err := validateProduct(in); err != nil {
		return nil, err
	}

	var (
		all wfmodel.AllProductContent
		mu  sync.Mutex
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, typ := range []wfmodel.ProductContentType{
		wfmodel.ContentDescription,
		wfmodel.ContentShortDescription,
		wfmodel.ContentFeatures,
	} {
		req := *in
		req.Type = typ
		g.Go(func() error {
			res, err := s.ProductContent(gctx, &req)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			switch typ {
			case wfmodel.ContentDescription:
				all.Description = res.Text
			case wfmodel.ContentShortDescription:
				all.ShortDescription = res.Text
			case wfmodel.ContentFeatures:
				all.Features = res.Items
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &all, nil
}

// SingleImage 生成一张商品图片
func (s *Service) SingleImage(ctx context.Context, in *wfmodel.ImageInput) (string, error) {
	if err := validateImage(in); err != nil {
		return "", err
	}
	url, err := s.images.Invoke(ctx, in)
	if err != nil {
		return "", upstream(ctx, err, MsgImageFailed)
	}
	return url, nil
}

// Images 并发生成 1..5 张图片；单张失败只记录日志，全部失败才返回错误
func (s *Service) Images(ctx context.Context, in *wfmodel.ImageInput) ([]string, error) {
	if err := validateImage(in); err != nil {
		return nil, err
	}

	count := ClampImageCount(in.Count)
	if count == 1 {
		url, err := s.SingleImage(ctx, in)
		if err != nil {
			return nil, err
		}
		return []string{url}, nil
	}

	slots := make([]string, count)
	var g errgroup.Group
	for i := 0; i < count; i++ {
		g.Go(func() error {
			url, err := s.images.Invoke(ctx, in)
			if err != nil {
				logger.Warn(ctx, "image generation skipped", "index", i, "error", err.Error())
				return nil
			}
			slots[i] = url
			return nil
		})
	}
	_ = g.Wait()

	urls := make([]string, 0, count)
	for _, u := range slots {
		if u != "" {
			urls = append(urls, u)
		}
	}
	if len(urls) == 0 {
		return nil, errors.New(errors.CodeImageFailed, MsgImageFailed)
	}
	return urls, nil
}

// ClampImageCount 将请求数量限制在 1..MaxImages
func ClampImageCount(n int) int {
	switch {
	case n < 1:
		return 1
	case n > MaxImages:
		return MaxImages
	default:
		return n
	}
}

func validateProduct(in *wfmodel.ProductContentInput) error {
	if in == nil || strings.TrimSpace(in.ProductName) == "" {
		return errors.Invalid(MsgInvalidProductName)
	}
	if strings.TrimSpace(in.Category) == "" {
		return errors.Invalid(MsgInvalidCategory)
	}
	return nil
}

func validateImage(in *wfmodel.ImageInput) error {
	if in == nil || strings.TrimSpace(in.Name) == "" {
		return errors.Invalid(MsgMissingName)
	}
	if strings.TrimSpace(in.Description) == "" {
		return errors.Invalid(MsgMissingDescription)
	}
	return nil
}

// upstream 记录模型调用失败并转换为 500
func upstream(ctx context.Context, err error, msg string) error {
	if errors.IsAppError(err) {
		return err
	}
	logger.Error(ctx, "generation failed", err, "message", msg)
	return errors.Wrap(err, errors.CodeLLMCallFailed, msg)
}

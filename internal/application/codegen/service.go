// Package codegen 提供按模板生成代码与批量生成
package codegen

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"shopee-seller-ai-api/internal/workflow/chain"
	wfmodel "shopee-seller-ai-api/internal/workflow/model"
	"shopee-seller-ai-api/internal/workflow/normalize"
	workflowport "shopee-seller-ai-api/internal/workflow/port"
	"shopee-seller-ai-api/pkg/errors"
	"shopee-seller-ai-api/pkg/logger"
	"shopee-seller-ai-api/pkg/metrics"
)

// MaxBatchSize 单个批量请求最多包含的生成项
const MaxBatchSize = 5

// MsgGenerateFailed 代码生成失败提示
const MsgGenerateFailed = "Không thể tạo code"

const (
	MsgEmptyBatch    = "Missing or invalid 'requests' field. Must be a non-empty array"
	MsgBatchTooLarge = "Too many requests. Maximum 5 requests per batch"
)

// Service 代码生成服务
type Service struct {
	chain *chain.CodeChain
}

func NewService(factory workflowport.ChatModelFactory, router chain.ProviderRouter) *Service {
	return &Service{chain: chain.NewCodeChain(factory, router)}
}

// Templates 返回全部可用模板
func (s *Service) Templates() []wfmodel.CodeTemplate {
	out := make([]wfmodel.CodeTemplate, 0, len(registry))
	for _, t := range registry {
		out = append(out, t.CodeTemplate)
	}
	return out
}

// TemplateIDs 返回全部模板 ID
func (s *Service) TemplateIDs() []string {
	ids := make([]string, 0, len(registry))
	for _, t := range registry {
		ids = append(ids, t.ID)
	}
	return ids
}

// IsValidTemplate 模板是否存在
func (s *Service) IsValidTemplate(id string) bool {
	_, ok := lookup(id)
	return ok
}

// InvalidTemplateMessage 单次生成的模板校验提示
func (s *Service) InvalidTemplateMessage() string {
	return "Missing or invalid 'template' field. Must be one of: " + strings.Join(s.TemplateIDs(), ", ")
}

// Generate 生成单个模板代码；componentName / props 为空时使用模板默认值
func (s *Service) Generate(ctx context.Context, in *wfmodel.CodeGenerateInput) (*wfmodel.CodeResult, error) {
	if in == nil {
		return nil, errors.Invalid(s.InvalidTemplateMessage())
	}
	tpl, ok := lookup(in.Template)
	if !ok {
		return nil, errors.Invalid(s.InvalidTemplateMessage())
	}

	req := *in
	if strings.TrimSpace(req.ComponentName) == "" {
		req.ComponentName = tpl.defaultName
	}
	if strings.TrimSpace(req.Props) == "" {
		req.Props = tpl.defaultProps
	}

	out, err := s.chain.Invoke(ctx, &req, tpl.CodeTemplate)
	if err != nil {
		logger.Error(ctx, "code generation failed", err, "template", tpl.ID)
		return nil, errors.Wrap(err, errors.CodeLLMCallFailed, MsgGenerateFailed)
	}

	code := normalize.Normalize(out.Content, normalize.CodeBlock(tpl.Language)).Text
	return &wfmodel.CodeResult{
		Code:        code,
		Template:    tpl.ID,
		Language:    tpl.Language,
		Description: tpl.Description,
	}, nil
}

// ValidateBatch 在任何生成开始前校验整个批次
func (s *Service) ValidateBatch(reqs []wfmodel.CodeGenerateInput) error {
	if len(reqs) == 0 {
		return errors.Invalid(MsgEmptyBatch)
	}
	if len(reqs) > MaxBatchSize {
		return errors.Invalid(MsgBatchTooLarge)
	}
	for i, r := range reqs {
		if !s.IsValidTemplate(r.Template) {
			return errors.Invalid(fmt.Sprintf("Invalid template in request %d. Must be one of: %s",
				i+1, strings.Join(s.TemplateIDs(), ", ")))
		}
	}
	return nil
}

// GenerateBatch 并发生成；单项失败以 Success=false 内联返回，不影响其他项
func (s *Service) GenerateBatch(ctx context.Context, reqs []wfmodel.CodeGenerateInput) ([]wfmodel.BatchItemResult, error) {
	if err := s.ValidateBatch(reqs); err != nil {
		return nil, err
	}

	results := make([]wfmodel.BatchItemResult, len(reqs))
	var g errgroup.Group
	for i := range reqs {
		g.Go(func() error {
			res, err := s.Generate(ctx, &reqs[i])
			if err != nil {
				metrics.CodegenBatchItems.WithLabelValues(reqs[i].Template, "error").Inc()
				results[i] = wfmodel.BatchItemResult{
					Index:    i,
					Error:    errors.AsAppError(err).Message,
					Template: reqs[i].Template,
				}
				return nil
			}
			metrics.CodegenBatchItems.WithLabelValues(reqs[i].Template, "success").Inc()
			results[i] = wfmodel.BatchItemResult{Index: i, Success: true, Result: res}
			return nil
		})
	}
	_ = g.Wait()
	return results, nil
}

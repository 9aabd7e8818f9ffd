package chain

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	wfmodel "shopee-seller-ai-api/internal/workflow/model"
	workflowport "shopee-seller-ai-api/internal/workflow/port"
	workflowprompt "shopee-seller-ai-api/internal/workflow/prompt"
)

// CodeChain 按模板生成代码
type CodeChain struct {
	base
}

func NewCodeChain(factory workflowport.ChatModelFactory, router ProviderRouter) *CodeChain {
	return &CodeChain{base: newBase(factory, router)}
}

// Invoke 调用方负责解析模板并填充默认的 ComponentName / Props
func (c *CodeChain) Invoke(ctx context.Context, in *wfmodel.CodeGenerateInput, tpl wfmodel.CodeTemplate) (*schema.Message, error) {
	if in == nil {
		return nil, fmt.Errorf("input is nil")
	}
	if strings.TrimSpace(tpl.ID) == "" {
		return nil, fmt.Errorf("template is required")
	}

	method := "GET"
	if v, ok := in.AdditionalParams["method"].(string); ok && strings.TrimSpace(v) != "" {
		method = strings.ToUpper(strings.TrimSpace(v))
	}
	vars := map[string]any{
		"template":             tpl.ID,
		"template_description": tpl.Description,
		"name":                 strings.TrimSpace(in.ComponentName),
		"props":                strings.TrimSpace(in.Props),
		"method":               method,
	}
	return c.generate(ctx, WorkflowCodeGenerate, workflowprompt.PromptCodeGenerateV1, vars, in.CallOptions)
}

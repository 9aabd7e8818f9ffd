package model

// CodeTemplate 代码生成模板
type CodeTemplate struct {
	ID          string `json:"id"`
	Language    string `json:"language"`
	Description string `json:"description"`
}

// CodeGenerateInput 代码生成请求
type CodeGenerateInput struct {
	Template      string
	ComponentName string
	Props         string
	// AdditionalParams 模板附加参数，例如 api-endpoint 的 method
	AdditionalParams map[string]any

	CallOptions
}

// CodeResult 代码生成结果
type CodeResult struct {
	Code        string
	Template    string
	Language    string
	Description string
}

// BatchItemResult 批量生成中的单项结果；失败时 Error 非空
type BatchItemResult struct {
	Index   int
	Success bool
	Result  *CodeResult
	Error   string
	// Template 失败项回显模板 ID
	Template string
}

package codegen

import (
	wfmodel "shopee-seller-ai-api/internal/workflow/model"
)

// 模板 ID
const (
	TemplateReactComponent  = "react-component"
	TemplateReactHook       = "react-hook"
	TemplateAPIEndpoint     = "api-endpoint"
	TemplateDatabaseModel   = "database-model"
	TemplateComponentTest   = "component-test"
	TemplateUtilityFunction = "utility-function"
)

type templateSpec struct {
	wfmodel.CodeTemplate
	defaultName  string
	defaultProps string
}

// registry 顺序即 /templates 返回顺序
var registry = []templateSpec{
	{
		CodeTemplate: wfmodel.CodeTemplate{ID: TemplateReactComponent, Language: "tsx", Description: "React functional component with TypeScript"},
		defaultName:  "MyComponent",
		defaultProps: "Không có props cụ thể",
	},
	{
		CodeTemplate: wfmodel.CodeTemplate{ID: TemplateReactHook, Language: "ts", Description: "Custom React hook with TypeScript"},
		defaultName:  "useCustomHook",
		defaultProps: "Hook tùy chỉnh",
	},
	{
		CodeTemplate: wfmodel.CodeTemplate{ID: TemplateAPIEndpoint, Language: "ts", Description: "Next.js API route handler"},
		defaultName:  "/api/example",
		defaultProps: "API endpoint cơ bản",
	},
	{
		CodeTemplate: wfmodel.CodeTemplate{ID: TemplateDatabaseModel, Language: "prisma", Description: "Prisma database model schema"},
		defaultName:  "Example",
		defaultProps: "id, name, createdAt",
	},
	{
		CodeTemplate: wfmodel.CodeTemplate{ID: TemplateComponentTest, Language: "ts", Description: "Jest test for React components"},
		defaultName:  "MyComponent",
		defaultProps: "Render, props handling, user interactions",
	},
	{
		CodeTemplate: wfmodel.CodeTemplate{ID: TemplateUtilityFunction, Language: "ts", Description: "TypeScript utility function"},
		defaultName:  "utilityFunction",
		defaultProps: "Utility function cơ bản",
	},
}

func lookup(id string) (templateSpec, bool) {
	for _, t := range registry {
		if t.ID == id {
			return t, true
		}
	}
	return templateSpec{}, false
}

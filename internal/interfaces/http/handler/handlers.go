package handler

// Handlers 路由需要的全部处理器
type Handlers struct {
	Health         *HealthHandler
	Product        *ProductHandler
	Description    *DescriptionHandler
	Caption        *CaptionHandler
	Image          *ImageHandler
	ProductManager *ProductManagerHandler
	CodeGenerator  *CodeGeneratorHandler
}

// Package handler 提供 HTTP 请求处理器
package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shopee-seller-ai-api/internal/application/assistant"
	"shopee-seller-ai-api/internal/application/codegen"
	"shopee-seller-ai-api/internal/interfaces/http/dto"
)

var (
	batchMessages   = dto.FieldMessages{"requests": codegen.MsgEmptyBatch}
	chatMessages    = dto.FieldMessages{"messages": assistant.MsgMissingMessages}
	codeMessages    = dto.FieldMessages{"code": assistant.MsgMissingCode, "language": assistant.MsgMissingLanguage}
	generateMessage = dto.FieldMessages{
		"componentName": "Invalid 'componentName' field. Must be a string",
		"props":         "Invalid 'props' field. Must be a string",
	}
)

// CodeGeneratorHandler 代码生成与 AI 编程助手处理器
type CodeGeneratorHandler struct {
	codegen   *codegen.Service
	assistant *assistant.Service
	now       func() time.Time
}

func NewCodeGeneratorHandler(codegenSvc *codegen.Service, assistantSvc *assistant.Service) *CodeGeneratorHandler {
	return &CodeGeneratorHandler{
		codegen:   codegenSvc,
		assistant: assistantSvc,
		now:       time.Now,
	}
}

// Templates 列出可用模板
// @Summary 代码生成模板列表
// @Tags CodeGenerator
// @Produce json
// @Success 200 {object} dto.TemplatesResponse
// @Router /api/code-generator/templates [get]
func (h *CodeGeneratorHandler) Templates(c *gin.Context) {
	c.JSON(http.StatusOK, dto.TemplatesResponse{
		Success:   true,
		Templates: h.codegen.Templates(),
	})
}

// Generate 按模板生成代码
// @Summary 按模板生成代码
// @Tags CodeGenerator
// @Accept json
// @Produce json
// @Param body body dto.CodeGenerateRequest true "模板与参数"
// @Success 200 {object} dto.CodeResultResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/code-generator/generate [post]
func (h *CodeGeneratorHandler) Generate(c *gin.Context) {
	msgs := dto.FieldMessages{"template": h.codegen.InvalidTemplateMessage()}
	for k, v := range generateMessage {
		msgs[k] = v
	}

	var req dto.CodeGenerateRequest
	if err := dto.BindJSON(c, &req, msgs); err != nil {
		if dto.BindErrorMessage(err, msgs) == msgs["template"] {
			h.abortInvalidTemplate(c)
			return
		}
		dto.AbortWithError(c, err)
		return
	}
	if !h.codegen.IsValidTemplate(req.Template) {
		h.abortInvalidTemplate(c)
		return
	}

	in := req.ToInput()
	res, err := h.codegen.Generate(c.Request.Context(), &in)
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCodeResultResponse(res, h.now()))
}

func (h *CodeGeneratorHandler) abortInvalidTemplate(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:              h.codegen.InvalidTemplateMessage(),
		AvailableTemplates: h.codegen.TemplateIDs(),
	})
}

// Batch 批量生成，单项失败内联返回
// @Summary 批量代码生成
// @Tags CodeGenerator
// @Accept json
// @Produce json
// @Param body body dto.CodeBatchRequest true "最多 5 个生成请求"
// @Success 200 {object} dto.BatchResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/code-generator/batch [post]
func (h *CodeGeneratorHandler) Batch(c *gin.Context) {
	var req dto.CodeBatchRequest
	if err := dto.BindJSON(c, &req, batchMessages); err != nil {
		dto.AbortWithError(c, err)
		return
	}

	results, err := h.codegen.GenerateBatch(c.Request.Context(), req.ToInputs())
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBatchResponse(results, h.now()))
}

// Chat 通用对话
// @Summary AI 助手对话
// @Tags CodeGenerator
// @Accept json
// @Produce json
// @Param body body dto.ChatRequest true "对话消息"
// @Success 200 {object} dto.ChatResponse
// @Router /api/code-generator/chat [post]
func (h *CodeGeneratorHandler) Chat(c *gin.Context) {
	var req dto.ChatRequest
	if err := dto.BindJSON(c, &req, chatMessages); err != nil {
		dto.AbortWithError(c, err)
		return
	}

	reply, err := h.assistant.Chat(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChatResponse(reply, h.now()))
}

// CodeChat 编程对话
// @Summary AI 编程对话
// @Tags CodeGenerator
// @Accept json
// @Produce json
// @Param body body dto.CodeChatRequest true "对话消息与代码上下文"
// @Success 200 {object} dto.ChatResponse
// @Router /api/code-generator/code-chat [post]
func (h *CodeGeneratorHandler) CodeChat(c *gin.Context) {
	var req dto.CodeChatRequest
	if err := dto.BindJSON(c, &req, chatMessages); err != nil {
		dto.AbortWithError(c, err)
		return
	}

	reply, err := h.assistant.CodeChat(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCodeChatResponse(reply, h.now()))
}

// ExplainCode 解释代码
// @Summary 解释代码
// @Tags CodeGenerator
// @Accept json
// @Produce json
// @Param body body dto.ExplainRequest true "代码、语言与可选问题"
// @Success 200 {object} dto.ChatResponse
// @Router /api/code-generator/explain-code [post]
func (h *CodeGeneratorHandler) ExplainCode(c *gin.Context) {
	var req dto.ExplainRequest
	if err := dto.BindJSON(c, &req, codeMessages); err != nil {
		dto.AbortWithError(c, err)
		return
	}

	reply, err := h.assistant.Explain(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChatResponse(reply, h.now()))
}

// ReviewCode 审查代码
// @Summary 审查代码
// @Tags CodeGenerator
// @Accept json
// @Produce json
// @Param body body dto.ReviewRequest true "代码与语言"
// @Success 200 {object} dto.ChatResponse
// @Router /api/code-generator/review-code [post]
func (h *CodeGeneratorHandler) ReviewCode(c *gin.Context) {
	var req dto.ReviewRequest
	if err := dto.BindJSON(c, &req, codeMessages); err != nil {
		dto.AbortWithError(c, err)
		return
	}

	reply, err := h.assistant.Review(c.Request.Context(), req.ToInput())
	if err != nil {
		dto.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToChatResponse(reply, h.now()))
}

// Health 代码生成模块健康检查
// @Summary 代码生成模块健康检查
// @Tags CodeGenerator
// @Produce json
// @Success 200 {object} dto.CodeGeneratorHealthResponse
// @Router /api/code-generator/health [get]
func (h *CodeGeneratorHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.CodeGeneratorHealthResponse{
		Status:    "healthy",
		Service:   "code-generator",
		Timestamp: dto.Timestamp(h.now()),
	})
}

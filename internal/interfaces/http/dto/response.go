// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shopee-seller-ai-api/pkg/errors"
	"shopee-seller-ai-api/pkg/logger"
)

// internalErrorText 500 响应中 error 字段的固定文案
const internalErrorText = "Internal Server Error"

// ErrorResponse 错误响应结构，与前端约定的 {error, message?} 保持一致
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	// AvailableTemplates 模板校验失败时回显可用模板
	AvailableTemplates []string `json:"availableTemplates,omitempty"`
	TraceID            string   `json:"trace_id,omitempty"`
}

// BadRequest 返回 400 错误
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		Error:   message,
		TraceID: c.GetString("trace_id"),
	})
}

// Unauthorized 返回 401 错误
func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Error:   message,
		TraceID: c.GetString("trace_id"),
	})
}

// TooManyRequests 返回 429 错误
func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   errors.ErrTooManyRequests.Message,
		TraceID: c.GetString("trace_id"),
	})
}

// InternalError 返回 500 错误；message 为空时只返回 error
func InternalError(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Error:   internalErrorText,
		Message: message,
		TraceID: c.GetString("trace_id"),
	})
}

// AbortWithError 按 AppError 的 HTTP 状态码输出错误响应
// 非 AppError 一律视为 500，且不向前端暴露底层错误信息
func AbortWithError(c *gin.Context, err error) {
	appErr := errors.AsAppError(err)

	switch appErr.HTTPStatus {
	case http.StatusBadRequest:
		BadRequest(c, appErr.Message)
	case http.StatusUnauthorized:
		Unauthorized(c, appErr.Message)
	case http.StatusTooManyRequests:
		TooManyRequests(c)
	default:
		logger.Error(c.Request.Context(), "request failed", err,
			"path", c.Request.URL.Path,
			"code", string(appErr.Code),
		)
		message := appErr.Message
		if appErr.Code == errors.CodeUnknown {
			message = ""
		}
		InternalError(c, message)
	}
}

// Timestamp 返回与前端一致的 ISO-8601 毫秒时间戳
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

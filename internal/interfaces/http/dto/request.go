// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"shopee-seller-ai-api/pkg/errors"
)

// MsgBodyTooLarge 请求体超过上限
const MsgBodyTooLarge = "Request body too large"

// FieldMessages 字段名（json tag）到前端提示的映射
type FieldMessages map[string]string

var tagNameOnce sync.Once

// useJSONTagNames 让 validator 报错时使用 json 字段名
func useJSONTagNames() {
	tagNameOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			switch name {
			case "-":
				return ""
			case "":
				return fld.Name
			}
			return name
		})
	})
}

// BindJSON 绑定并校验 JSON 请求体
// 空请求体按 {} 处理，以便返回具体字段的缺失提示
func BindJSON(c *gin.Context, req any, msgs FieldMessages) error {
	useJSONTagNames()

	err := c.ShouldBindJSON(req)
	if stderrors.Is(err, io.EOF) {
		err = binding.Validator.ValidateStruct(req)
	}
	if err == nil {
		return nil
	}

	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return errors.Invalid(MsgBodyTooLarge)
	}
	return errors.Invalid(BindErrorMessage(err, msgs)).WithError(err)
}

// BindErrorMessage 将绑定错误转换为指明字段的提示
func BindErrorMessage(err error, msgs FieldMessages) string {
	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		field := verrs[0].Field()
		if m, ok := msgs[field]; ok {
			return m
		}
		return fmt.Sprintf("Missing or invalid '%s' field", field)
	}

	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) {
		field := rootField(typeErr.Field)
		if m, ok := msgs[field]; ok {
			return m
		}
		if field == "" {
			return "Invalid request body"
		}
		return fmt.Sprintf("Invalid '%s' field", field)
	}

	return "Invalid JSON body"
}

// rootField 取嵌套路径的第一段，例如 messages.0.role -> messages
func rootField(path string) string {
	if i := strings.IndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return path
}

// StringList 兼容字符串数组与逗号分隔字符串两种写法
// 其他类型按空列表处理
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var out []string
	switch v := raw.(type) {
	case string:
		for _, part := range strings.Split(v, ",") {
			if s := strings.TrimSpace(part); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range v {
			if item == nil {
				continue
			}
			if s := strings.TrimSpace(fmt.Sprint(item)); s != "" {
				out = append(out, s)
			}
		}
	}
	*l = out
	return nil
}

// LooseInt 接受数字或数字字符串；字符串取开头的整数部分（"2.7" 为 2），无法解析时为 0
type LooseInt int

var leadingInt = regexp.MustCompile(`^[+-]?\d+`)

func (n *LooseInt) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		*n = LooseInt(v)
	case string:
		i, err := strconv.Atoi(leadingInt.FindString(strings.TrimSpace(v)))
		if err != nil {
			*n = 0
			return nil
		}
		*n = LooseInt(i)
	default:
		*n = 0
	}
	return nil
}

package dto

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	wfmodel "shopee-seller-ai-api/internal/workflow/model"
	"shopee-seller-ai-api/pkg/errors"
)

func TestStringList(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{`["a", "b", ""]`, []string{"a", "b"}},
		{`[1, null, "x"]`, []string{"1", "x"}},
		{`"thoáng mát, giá rẻ ,"`, []string{"thoáng mát", "giá rẻ"}},
		{`""`, nil},
		{`42`, nil},
		{`null`, nil},
	}
	for _, tt := range tests {
		var l StringList
		require.NoError(t, json.Unmarshal([]byte(tt.raw), &l), tt.raw)
		assert.Equal(t, tt.want, []string(l), tt.raw)
	}
}

func TestLooseInt(t *testing.T) {
	tests := map[string]int{
		`3`: 3, `"4"`: 4, `"abc"`: 0, `true`: 0, `2.9`: 2,
		`"2.7"`: 2, `" 3 ảnh"`: 3, `"-1"`: -1, `""`: 0,
	}
	for raw, want := range tests {
		var n LooseInt
		require.NoError(t, json.Unmarshal([]byte(raw), &n), raw)
		assert.Equal(t, want, int(n), raw)
	}
}

func TestBindErrorMessage(t *testing.T) {
	msgs := FieldMessages{"name": "Missing product name"}

	var typed struct {
		Name string `json:"name"`
	}
	err := json.Unmarshal([]byte(`{"name": 1}`), &typed)
	assert.Equal(t, "Missing product name", BindErrorMessage(err, msgs))

	var nested struct {
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
	}
	err = json.Unmarshal([]byte(`{"messages": [{"role": 1}]}`), &nested)
	assert.Equal(t, "Invalid 'messages' field", BindErrorMessage(err, msgs))

	assert.Equal(t, "Invalid JSON body", BindErrorMessage(stderrors.New("unexpected EOF"), msgs))
}

func TestBindJSON_RequiredUsesJSONName(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	c.Request.Header.Set("Content-Type", "application/json")

	var req ProductContentRequest
	err := BindJSON(c, &req, FieldMessages{"productName": "Missing or invalid 'productName' field"})
	require.Error(t, err)
	assert.Equal(t, "Missing or invalid 'productName' field", errors.AsAppError(err).Message)
}

func TestAbortWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"validation", errors.Invalid("Missing product name"), http.StatusBadRequest, `{"error":"Missing product name"}`},
		{"upstream", errors.Wrap(stderrors.New("quota"), errors.CodeLLMCallFailed, "Không thể tạo code"),
			http.StatusInternalServerError, `{"error":"Internal Server Error","message":"Không thể tạo code"}`},
		{"unknown", stderrors.New("boom"), http.StatusInternalServerError, `{"error":"Internal Server Error"}`},
		{"rate limited", errors.ErrTooManyRequests, http.StatusTooManyRequests,
			`{"error":"Too many requests, please upgrade to Pro or try again later."}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

			AbortWithError(c, tt.err)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestToBatchResponse(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 6_000_000, time.UTC)
	resp := ToBatchResponse([]wfmodel.BatchItemResult{
		{Index: 0, Success: true, Result: &wfmodel.CodeResult{Code: "x", Template: "react-hook", Language: "typescript"}},
		{Index: 1, Template: "api-endpoint"},
	}, now)

	require.Len(t, resp.Results, 2)
	assert.Equal(t, "react-hook", resp.Results[0].Template)
	assert.Equal(t, "x", resp.Results[0].Code)
	assert.False(t, resp.Results[1].Success)
	assert.Equal(t, "Generation failed", resp.Results[1].Error)
	assert.Equal(t, "api-endpoint", resp.Results[1].Template)
	assert.Equal(t, "2026-01-02T03:04:05.006Z", resp.Timestamp)
}

func TestCaptionRequest_AlternateShape(t *testing.T) {
	var req CaptionRequest
	require.NoError(t, json.Unmarshal([]byte(`{"topic":"Áo thun","tone":"vui nhộn","platform":"shopee","keywords":"a, b"}`), &req))

	in := req.ToInput()
	assert.Equal(t, "Áo thun", in.Name)
	assert.Equal(t, "vui nhộn", in.Style)
	assert.Equal(t, "shopee", in.Platform)
	assert.Equal(t, []string{"a", "b"}, in.Keywords)
}

package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopee-seller-ai-api/internal/application/assistant"
	"shopee-seller-ai-api/internal/application/catalog"
	"shopee-seller-ai-api/internal/application/codegen"
	"shopee-seller-ai-api/internal/application/listing"
	"shopee-seller-ai-api/internal/config"
	"shopee-seller-ai-api/internal/infrastructure/llm"
	"shopee-seller-ai-api/internal/infrastructure/persistence/redis"
	"shopee-seller-ai-api/internal/infrastructure/shopee"
	"shopee-seller-ai-api/internal/interfaces/http/handler"
	"shopee-seller-ai-api/pkg/utils"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "shopee-caption-backend", Env: "test"},
		Server: config.ServerConfig{HTTP: config.HTTPServerConfig{
			MaxBodyBytes: 4096,
		}},
		LLM: config.LLMConfig{
			DefaultProvider: "mock",
			Providers: map[string]config.ProviderConfig{
				"mock": {Kind: "mock"},
			},
		},
		Image: config.ImageConfig{
			PlaceholderURL: "https://picsum.photos/seed/%s/1024/1024",
		},
		Shopee: config.ShopeeConfig{MockToken: "test_token"},
		Observability: config.ObservabilityConfig{
			Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		},
		Security: config.SecurityConfig{
			JWT: config.JWTConfig{Secret: "dev_jwt_secret", Issuer: "shopee-seller-ai"},
			RateLimit: config.RateLimitConfig{
				Enabled:       true,
				WindowMinutes: 60,
				MaxFree:       1000,
				KeyPrefix:     "ratelimit",
			},
		},
	}
}

func newTestEngine(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	factory := llm.NewEinoFactory(cfg)
	t.Cleanup(func() { _ = factory.Close() })

	listingSvc := listing.NewService(factory, cfg.LLM, llm.NewImageClient(cfg))
	codegenSvc := codegen.NewService(factory, cfg.LLM)
	assistantSvc := assistant.NewService(factory, cfg.LLM)
	catalogSvc := catalog.NewService(cfg, shopee.NewMockCatalog(), shopee.NewMockCatalog())

	handlers := &handler.Handlers{
		Health:         handler.NewHealthHandler(cfg, nil),
		Product:        handler.NewProductHandler(catalogSvc),
		Description:    handler.NewDescriptionHandler(listingSvc),
		Caption:        handler.NewCaptionHandler(listingSvc),
		Image:          handler.NewImageHandler(listingSvc),
		ProductManager: handler.NewProductManagerHandler(listingSvc),
		CodeGenerator:  handler.NewCodeGeneratorHandler(codegenSvc, assistantSvc),
	}

	limiter, err := redis.NewRateLimiter(cfg.Security.RateLimit, nil)
	require.NoError(t, err)

	return New(cfg, handlers, limiter).Engine()
}

func do(t *testing.T, e *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)

	var out map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

func TestRouter_SystemEndpoints(t *testing.T) {
	e := newTestEngine(t, testConfig())

	w, body := do(t, e, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "shopee-caption-backend", body["name"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w, body = do(t, e, http.MethodGet, "/ready", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	checks := body["checks"].(map[string]any)
	assert.Equal(t, "disabled", checks["redis"].(map[string]any)["status"])

	w, _ = do(t, e, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, body = do(t, e, http.MethodGet, "/api/code-generator/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "code-generator", body["service"])
	_, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	assert.NoError(t, err)
}

func TestRouter_ValidationErrors(t *testing.T) {
	e := newTestEngine(t, testConfig())

	tests := []struct {
		name    string
		path    string
		body    any
		wantErr string
	}{
		{"caption empty body", "/api/caption", "", "Missing product name"},
		{"caption name not string", "/api/caption", map[string]any{"name": 42}, "Missing product name"},
		{"description missing name", "/api/generate-description", map[string]any{"features": "a,b"}, "Missing product name"},
		{"image missing description", "/api/image", map[string]any{"name": "Áo thun"}, "Missing product description"},
		{"single image missing name", "/api/image/single", map[string]any{"description": "cotton"}, "Missing product name"},
		{"content missing category", "/api/ai-product-manager/content",
			map[string]any{"productName": "Áo thun", "type": "features"}, "Missing or invalid 'category' field"},
		{"content bad type", "/api/ai-product-manager/content",
			map[string]any{"productName": "Áo thun", "category": "Thời trang", "type": "poem"},
			"Missing or invalid 'type' field. Must be one of: description, shortDescription, features"},
		{"all missing product name", "/api/ai-product-manager/all", map[string]any{"category": "x"},
			"Missing or invalid 'productName' field"},
		{"generate bad component name", "/api/code-generator/generate",
			map[string]any{"template": "react-hook", "componentName": 1}, "Invalid 'componentName' field. Must be a string"},
		{"batch empty", "/api/code-generator/batch", map[string]any{"requests": []any{}},
			"Missing or invalid 'requests' field. Must be a non-empty array"},
		{"batch not array", "/api/code-generator/batch", map[string]any{"requests": "x"},
			"Missing or invalid 'requests' field. Must be a non-empty array"},
		{"chat bad role", "/api/code-generator/chat",
			map[string]any{"messages": []any{map[string]any{"role": "robot", "content": "hi"}}},
			"Invalid role at index 0. Must be 'user', 'assistant', or 'system'"},
		{"chat missing content", "/api/code-generator/code-chat",
			map[string]any{"messages": []any{map[string]any{"role": "user"}}},
			"Invalid message format at index 0. Must have 'role' and 'content' fields"},
		{"explain missing language", "/api/code-generator/explain-code", map[string]any{"code": "x := 1"},
			"Missing or invalid 'language' field. Must be a string"},
		{"review missing code", "/api/code-generator/review-code", map[string]any{"language": "go"},
			"Missing or invalid 'code' field. Must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := do(t, e, http.MethodPost, tt.path, tt.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, tt.wantErr, body["error"])
		})
	}
}

func TestRouter_Listing(t *testing.T) {
	e := newTestEngine(t, testConfig())

	w, body := do(t, e, http.MethodPost, "/api/caption", map[string]any{
		"name":     "Áo thun cotton",
		"keywords": "thoáng mát, giá rẻ",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	captions := body["captions"].([]any)
	assert.Len(t, captions, 3)

	// 备用请求格式
	w, body = do(t, e, http.MethodPost, "/api/caption", map[string]any{
		"topic": "Áo thun cotton", "tone": "vui nhộn", "platform": "shopee",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, body["captions"])

	w, body = do(t, e, http.MethodPost, "/api/generate-description", map[string]any{
		"name": "Áo thun", "features": []string{"cotton", "co giãn"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, body["description"])

	w, body = do(t, e, http.MethodPost, "/api/image", map[string]any{
		"name": "Áo thun", "description": "cotton trắng", "count": "9",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, body["images"], 5)
	assert.EqualValues(t, 5, body["count"])
	assert.Equal(t, "Áo thun", body["productName"])

	w, body = do(t, e, http.MethodPost, "/api/image/single", map[string]any{
		"name": "Áo thun", "description": "cotton trắng",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, body["image"], "picsum.photos")

	w, body = do(t, e, http.MethodPost, "/api/ai-product-manager/content", map[string]any{
		"productName": "Áo thun", "category": "Thời trang", "type": "features",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "features", body["type"])
	assert.Len(t, body["content"], 5)

	w, body = do(t, e, http.MethodPost, "/api/ai-product-manager/all", map[string]any{
		"productName": "Áo thun", "category": "Thời trang", "keywords": []string{"cotton"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, body["description"])
	assert.NotEmpty(t, body["shortDescription"])
	assert.Len(t, body["features"], 5)
	assert.Equal(t, "Thời trang", body["category"])
}

func TestRouter_Products(t *testing.T) {
	e := newTestEngine(t, testConfig())

	w, body := do(t, e, http.MethodGet, "/api/products?shopId=123&token=test_token", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Nil(t, body["error"])
	assert.Equal(t, "Success", body["message"])
	resp := body["response"].(map[string]any)
	assert.Len(t, resp["item"], 3)
	assert.EqualValues(t, 3, resp["total_count"])

	w, body = do(t, e, http.MethodGet, "/api/products?shopId=abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid 'shopId' query parameter", body["error"])
}

func TestRouter_CodeGenerator(t *testing.T) {
	e := newTestEngine(t, testConfig())

	w, body := do(t, e, http.MethodGet, "/api/code-generator/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["templates"], 6)

	w, body = do(t, e, http.MethodPost, "/api/code-generator/generate", map[string]any{"template": "cobol-program"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "Missing or invalid 'template' field")
	assert.Len(t, body["availableTemplates"], 6)

	w, body = do(t, e, http.MethodPost, "/api/code-generator/generate", map[string]any{
		"template": "react-component", "componentName": "ProductCard",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "react-component", body["template"])
	assert.Contains(t, body["code"], "mock")
	assert.NotEmpty(t, body["timestamp"])

	w, body = do(t, e, http.MethodPost, "/api/code-generator/batch", map[string]any{
		"requests": []any{
			map[string]any{"template": "react-hook"},
			map[string]any{"template": "nope"},
		},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, body["error"], "Invalid template in request 2")

	six := make([]any, 6)
	for i := range six {
		six[i] = map[string]any{"template": "react-hook"}
	}
	w, body = do(t, e, http.MethodPost, "/api/code-generator/batch", map[string]any{"requests": six})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Too many requests. Maximum 5 requests per batch", body["error"])

	w, body = do(t, e, http.MethodPost, "/api/code-generator/batch", map[string]any{
		"requests": []any{
			map[string]any{"template": "react-hook"},
			map[string]any{"template": "utility-function"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	results := body["results"].([]any)
	require.Len(t, results, 2)
	for i, r := range results {
		item := r.(map[string]any)
		assert.EqualValues(t, i, item["index"])
		assert.Equal(t, true, item["success"])
	}
}

func TestRouter_Assistant(t *testing.T) {
	e := newTestEngine(t, testConfig())

	w, body := do(t, e, http.MethodPost, "/api/code-generator/chat", map[string]any{
		"messages": []any{map[string]any{"role": "user", "content": "Xin chào"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, body["success"])
	msg := body["message"].(map[string]any)
	assert.Equal(t, "assistant", msg["role"])
	assert.NotEmpty(t, msg["content"])
	assert.True(t, strings.HasPrefix(body["conversationId"].(string), "conv_"))

	w, body = do(t, e, http.MethodPost, "/api/code-generator/code-chat", map[string]any{
		"messages":    []any{map[string]any{"role": "user", "content": "Log something"}},
		"codeContext": map[string]any{"language": "ts"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	sg := body["suggestions"].(map[string]any)
	assert.Contains(t, sg["code"], "console.log")
	assert.NotEmpty(t, sg["explanation"])

	w, body = do(t, e, http.MethodPost, "/api/code-generator/explain-code", map[string]any{
		"code": "x := 1", "language": "go", "question": "What is x?",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, body["message"])

	w, _ = do(t, e, http.MethodPost, "/api/code-generator/review-code", map[string]any{
		"code": "x := 1", "language": "go",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRouter_RateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.Security.RateLimit.MaxFree = 2
	e := newTestEngine(t, cfg)

	payload := map[string]any{"name": "Áo thun"}
	for i := 0; i < 2; i++ {
		w, _ := do(t, e, http.MethodPost, "/api/caption", payload)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("RateLimit-Limit"))
	}

	w, body := do(t, e, http.MethodPost, "/api/caption", payload)
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "Too many requests, please upgrade to Pro or try again later.", body["error"])
	assert.Equal(t, "0", w.Header().Get("RateLimit-Remaining"))

	// 不限流的接口不受影响
	w, _ = do(t, e, http.MethodGet, "/api/code-generator/templates", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_BodyLimit(t *testing.T) {
	e := newTestEngine(t, testConfig())

	big := map[string]any{"name": strings.Repeat("a", 8192)}
	w, body := do(t, e, http.MethodPost, "/api/caption", big)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Request body too large", body["error"])
}

func TestRouter_RequiredAuth(t *testing.T) {
	cfg := testConfig()
	cfg.Security.JWT.Required = true
	e := newTestEngine(t, cfg)

	w, body := do(t, e, http.MethodGet, "/api/code-generator/templates", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Missing auth token", body["error"])

	tok, err := utils.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer).
		GenerateToken("u-1", "", "free", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/code-generator/templates", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	w, _ = do(t, e, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

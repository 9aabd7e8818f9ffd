package middleware

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopee-seller-ai-api/internal/infrastructure/persistence/redis"
	"shopee-seller-ai-api/pkg/utils"
)

const testSecret = "dev_jwt_secret"

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(mw...)
	e.GET("/who", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserIDFromGin(c), "plan": GetPlanFromGin(c)})
	})
	return e
}

func get(e *gin.Engine, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	tok, err := utils.NewJWTManager(testSecret, "shopee-seller-ai").GenerateToken("u-42", "", "pro", time.Hour)
	require.NoError(t, err)

	optional := newEngine(Auth(AuthConfig{Secret: testSecret, Issuer: "shopee-seller-ai"}))
	required := newEngine(Auth(AuthConfig{Secret: testSecret, Issuer: "shopee-seller-ai", Required: true}))

	tests := []struct {
		name     string
		engine   *gin.Engine
		header   string
		wantCode int
		wantBody string
	}{
		{"optional anonymous", optional, "", http.StatusOK, `"user_id":""`},
		{"optional invalid token ignored", optional, "Bearer garbage", http.StatusOK, `"user_id":""`},
		{"optional valid token", optional, "Bearer " + tok, http.StatusOK, `"user_id":"u-42"`},
		{"required missing", required, "", http.StatusUnauthorized, `"error":"Missing auth token"`},
		{"required invalid", required, "Bearer garbage", http.StatusUnauthorized, `"error":"Invalid token"`},
		{"required valid", required, "Bearer " + tok, http.StatusOK, `"plan":"pro"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(tt.engine, tt.header)
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

type stubLimiter struct {
	keys  []string
	quota redis.Quota
	err   error
}

func (s *stubLimiter) Take(_ context.Context, key string) (redis.Quota, error) {
	s.keys = append(s.keys, key)
	return s.quota, s.err
}

func TestRateLimit(t *testing.T) {
	t.Run("rejects when reached", func(t *testing.T) {
		lim := &stubLimiter{quota: redis.Quota{Limit: 20, Remaining: 0, Reset: time.Now().Add(time.Minute).Unix(), Reached: true}}
		w := get(newEngine(RateLimit(RateLimitConfig{Enabled: true}, lim)), "")

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Contains(t, w.Body.String(), "Too many requests, please upgrade to Pro or try again later.")
		assert.Equal(t, "20", w.Header().Get("RateLimit-Limit"))
		assert.Equal(t, "0", w.Header().Get("RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("RateLimit-Reset"))
		require.Len(t, lim.keys, 1)
		assert.Equal(t, "ip:192.0.2.1", lim.keys[0])
	})

	t.Run("keys by user when authenticated", func(t *testing.T) {
		tok, err := utils.NewJWTManager(testSecret, "").GenerateToken("u-7", "", "", time.Hour)
		require.NoError(t, err)
		lim := &stubLimiter{quota: redis.Quota{Limit: 20, Remaining: 19}}
		e := newEngine(Auth(AuthConfig{Secret: testSecret}), RateLimit(RateLimitConfig{Enabled: true}, lim))

		w := get(e, "Bearer "+tok)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"user:u-7"}, lim.keys)
	})

	t.Run("fails open on limiter error", func(t *testing.T) {
		lim := &stubLimiter{err: stderrors.New("redis down")}
		w := get(newEngine(RateLimit(RateLimitConfig{Enabled: true}, lim)), "")
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("disabled", func(t *testing.T) {
		lim := &stubLimiter{quota: redis.Quota{Reached: true}}
		w := get(newEngine(RateLimit(RateLimitConfig{Enabled: false}, lim)), "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, lim.keys)
	})
}

func TestRequestID(t *testing.T) {
	e := newEngine(RequestID())

	req := httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/who", nil)
	req.Header.Set(RequestIDHeader, "bad id\twith spaces")
	w = httptest.NewRecorder()
	e.ServeHTTP(w, req)
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	e := gin.New()
	e.Use(Recovery())
	e.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
}

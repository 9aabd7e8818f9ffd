package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoad_DefaultsWithoutFiles(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("APP_ENV", "")
	t.Setenv("NODE_ENV", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "shopee-caption-backend", cfg.App.Name)
	assert.Equal(t, 4000, cfg.Server.HTTP.Port)
	assert.Equal(t, int64(1<<20), cfg.Server.HTTP.MaxBodyBytes)
	assert.Equal(t, "gemini", cfg.LLM.DefaultProvider)
	assert.Equal(t, "openai", cfg.LLM.ProviderFor("description"))
	assert.Equal(t, "gemini", cfg.LLM.ProviderFor("caption"))
	assert.Equal(t, int64(20), cfg.Security.RateLimit.MaxFree)
	assert.Equal(t, time.Hour, cfg.Security.RateLimit.Window())
	assert.Equal(t, 60*time.Second, cfg.LLM.Providers["gemini"].Timeout)
	assert.Equal(t, "test_token", cfg.Shopee.MockToken)
	assert.False(t, cfg.Security.JWT.Required)
}

func TestLoad_FileWithPlaceholders(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CONFIG_DIR", dir)
	t.Setenv("APP_ENV", "staging")
	t.Setenv("SELLER_REDIS_HOST", "redis.internal")

	writeConfig(t, dir, "config.yaml", `
app:
  name: seller-api
cache:
  redis:
    enabled: true
    host: ${SELLER_REDIS_HOST:localhost}
    port: ${SELLER_REDIS_PORT:6380}
`)
	writeConfig(t, dir, "config.staging.yaml", `
security:
  jwt:
    required: true
  rate_limit:
    max_free: 7
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "seller-api", cfg.App.Name)
	assert.Equal(t, "staging", cfg.App.Env)
	assert.True(t, cfg.Cache.Redis.Enabled)
	assert.Equal(t, "redis.internal", cfg.Cache.Redis.Host)
	assert.Equal(t, 6380, cfg.Cache.Redis.Port)
	assert.Equal(t, int64(7), cfg.Security.RateLimit.MaxFree)
	assert.True(t, cfg.Security.JWT.Required)
}

func TestLoad_LegacyEnvNames(t *testing.T) {
	t.Setenv("CONFIG_DIR", t.TempDir())
	t.Setenv("APP_ENV", "")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("RATE_LIMIT_WINDOW_MIN", "15")
	t.Setenv("RATE_LIMIT_MAX_FREE", "3")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("GEMINI_API_KEY", "g-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, 8080, cfg.Server.HTTP.Port)
	assert.Equal(t, "s3cret", cfg.Security.JWT.Secret)
	assert.Equal(t, 15*time.Minute, cfg.Security.RateLimit.Window())
	assert.Equal(t, int64(3), cfg.Security.RateLimit.MaxFree)
	assert.Equal(t, "sk-test", cfg.LLM.Providers["openai"].APIKey)
	assert.Equal(t, "g-test", cfg.LLM.Providers["gemini"].APIKey)
	assert.Equal(t, "sk-test", cfg.Image.APIKey)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("SELLER_SET", "on")

	assert.Equal(t, "a=on", expandEnv("a=${SELLER_SET}"))
	assert.Equal(t, "b=fallback", expandEnv("b=${SELLER_UNSET_X:fallback}"))
	assert.Equal(t, "c=", expandEnv("c=${SELLER_UNSET_X:}"))
	assert.Equal(t, "d=${SELLER_UNSET_X}", expandEnv("d=${SELLER_UNSET_X}"))
}

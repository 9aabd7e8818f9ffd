// Package config 提供配置加载功能
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

// envPlaceholder 匹配 ${VAR} 或 ${VAR:default}
// g1: 变量名, g2: 默认值部分（含冒号）, g3: 默认值内容
var envPlaceholder = regexp.MustCompile(`\${(\w+)(:([^}]*))?}`)

// Load 加载配置文件
// 按优先级加载：默认值 -> configs/config.yaml -> configs/config.<env>.yaml -> 环境变量
// 配置目录可通过 CONFIG_DIR 覆盖；两个文件都是可选的，缺失时完全依赖默认值与环境变量。
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		dir = "configs"
	}

	// 1. 加载默认配置
	if err := loadConfigFile(v, filepath.Join(dir, "config.yaml")); err != nil {
		return nil, err
	}

	// 2. 加载环境特定配置
	env := firstEnv("APP_ENV", "NODE_ENV")
	if env == "" {
		env = "development"
	}
	if err := loadConfigFile(v, filepath.Join(dir, fmt.Sprintf("config.%s.yaml", env))); err != nil {
		return nil, err
	}

	// 3. 绑定环境变量 (直接覆盖)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := bindLegacyEnv(v); err != nil {
		return nil, err
	}

	// 设置默认值 (兜底)
	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// loadConfigFile 读取文件，执行环境变量替换，并合并到 viper；文件不存在时跳过
func loadConfigFile(v *viper.Viper, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expanded := expandEnv(string(content))
	if err := v.MergeConfig(strings.NewReader(expanded)); err != nil {
		return fmt.Errorf("failed to merge processed config %s: %w", path, err)
	}
	return nil
}

// expandEnv 替换字符串中的 ${VAR:default} 占位符
func expandEnv(s string) string {
	return envPlaceholder.ReplaceAllStringFunc(s, func(match string) string {
		submatch := envPlaceholder.FindStringSubmatch(match)
		key := submatch[1]
		hasDefault := submatch[2] != ""
		defVal := submatch[3]

		if val, ok := os.LookupEnv(key); ok {
			return val
		}
		if hasDefault {
			return defVal
		}
		// 保留原样以便识别未定义的变量
		return match
	})
}

// bindLegacyEnv 兼容前端部署沿用的环境变量名（PORT、JWT_SECRET、RATE_LIMIT_* 等）
func bindLegacyEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"app.env":                            {"APP_ENV", "NODE_ENV"},
		"server.http.port":                   {"PORT"},
		"security.jwt.secret":                {"JWT_SECRET"},
		"security.rate_limit.window_minutes": {"RATE_LIMIT_WINDOW_MIN"},
		"security.rate_limit.max_free":       {"RATE_LIMIT_MAX_FREE"},
		"llm.providers.gemini.api_key":       {"GEMINI_API_KEY"},
		"llm.providers.openai.api_key":       {"OPENAI_API_KEY"},
		"image.api_key":                      {"OPENAI_API_KEY"},
	}
	for key, envs := range bindings {
		args := append([]string{key}, envs...)
		if err := v.BindEnv(args...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}

// MustLoad 加载配置，失败时 panic
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// setDefaults 设置配置默认值
func setDefaults(v *viper.Viper) {
	// 应用默认值
	v.SetDefault("app.name", "shopee-caption-backend")
	v.SetDefault("app.version", "v0.0.0")
	v.SetDefault("app.env", "development")

	// HTTP 服务器默认值
	v.SetDefault("server.http.host", "0.0.0.0")
	v.SetDefault("server.http.port", 4000)
	v.SetDefault("server.http.read_timeout", "30s")
	v.SetDefault("server.http.write_timeout", "120s")
	v.SetDefault("server.http.idle_timeout", "120s")
	v.SetDefault("server.http.max_body_bytes", 1<<20)

	// Redis 默认值
	v.SetDefault("cache.redis.enabled", false)
	v.SetDefault("cache.redis.host", "localhost")
	v.SetDefault("cache.redis.port", 6379)
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.pool_size", 20)
	v.SetDefault("cache.redis.min_idle_conns", 2)
	v.SetDefault("cache.redis.dial_timeout", "5s")
	v.SetDefault("cache.redis.read_timeout", "3s")
	v.SetDefault("cache.redis.write_timeout", "3s")

	// LLM 默认值
	v.SetDefault("llm.default_provider", "gemini")
	v.SetDefault("llm.workflows.description", "openai")
	v.SetDefault("llm.providers.gemini.kind", "gemini")
	v.SetDefault("llm.providers.gemini.model", "gemini-1.5-flash")
	v.SetDefault("llm.providers.gemini.max_tokens", 2048)
	v.SetDefault("llm.providers.gemini.temperature", 0.7)
	v.SetDefault("llm.providers.gemini.timeout", "60s")
	v.SetDefault("llm.providers.openai.kind", "openai")
	v.SetDefault("llm.providers.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.providers.openai.max_tokens", 2048)
	v.SetDefault("llm.providers.openai.temperature", 0.7)
	v.SetDefault("llm.providers.openai.timeout", "60s")
	v.SetDefault("llm.providers.mock.kind", "mock")

	// 图片生成默认值
	v.SetDefault("image.base_url", "https://api.openai.com/v1")
	v.SetDefault("image.model", "dall-e-3")
	v.SetDefault("image.size", "1024x1024")
	v.SetDefault("image.timeout", "90s")
	v.SetDefault("image.placeholder_url", "https://picsum.photos/seed/%s/1024/1024")

	// Shopee 默认值
	v.SetDefault("shopee.base_url", "https://partner.shopeemobile.com/api/v2")
	v.SetDefault("shopee.page_size", 50)
	v.SetDefault("shopee.timeout", "15s")
	v.SetDefault("shopee.mock_token", "test_token")

	// 可观测性默认值
	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "json")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.endpoint", "localhost:4317")
	v.SetDefault("observability.tracing.insecure", true)
	v.SetDefault("observability.tracing.sample_rate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.path", "/metrics")

	// 安全默认值
	v.SetDefault("security.jwt.secret", "dev_jwt_secret")
	v.SetDefault("security.jwt.issuer", "shopee-seller-ai")
	v.SetDefault("security.jwt.required", false)
	v.SetDefault("security.rate_limit.enabled", true)
	v.SetDefault("security.rate_limit.window_minutes", 60)
	v.SetDefault("security.rate_limit.max_free", 20)
	v.SetDefault("security.rate_limit.key_prefix", "ratelimit")
	v.SetDefault("security.cors.allowed_origins", []string{"*"})
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 2*time.Minute, cfg.Server.Timeout)
	assert.Equal(t, 50, cfg.Server.ThrottleLimit)
	assert.Equal(t, int64(10<<20), cfg.Upload.MaxBytes)
	assert.Equal(t, "image", cfg.Upload.FieldName)
	assert.Equal(t, ProviderGemini, cfg.Translator.Provider)
	assert.Equal(t, 60*time.Second, cfg.Translator.Timeout)
	assert.Equal(t, "test-key", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "redis:6379", cfg.RedisConfig.Addr)
	assert.Equal(t, 10*time.Minute, cfg.RedisConfig.TTL)
	assert.False(t, cfg.CacheEnable)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TRANSLATOR_PROVIDER", ProviderOpenAI)
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("UPLOAD_MAX_BYTES", "1024")
	t.Setenv("INFERENCE_TIMEOUT", "5s")
	t.Setenv("CACHE_ENABLE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderOpenAI, cfg.Translator.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, int64(1024), cfg.Upload.MaxBytes)
	assert.Equal(t, 5*time.Second, cfg.Translator.Timeout)
	assert.True(t, cfg.CacheEnable)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:     ServerConfig{ThrottleLimit: 1},
			Upload:     UploadConfig{MaxBytes: 1, FieldName: "image"},
			Translator: TranslatorConfig{Provider: ProviderGemini},
			Gemini:     GeminiConfig{APIKey: "k"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "missing gemini key",
			mutate:  func(c *Config) { c.Gemini.APIKey = "" },
			wantErr: "GEMINI_API_KEY",
		},
		{
			name:   "openai without gemini key",
			mutate: func(c *Config) { c.Translator.Provider = ProviderOpenAI; c.Gemini.APIKey = "" },
		},
		{
			name: "openai without key",
			mutate: func(c *Config) {
				c.Translator.Provider = ProviderOpenAI
				c.Gemini.APIKey = ""
				c.OpenAI.APIKey = ""
			},
		},
		{
			name:    "unknown provider",
			mutate:  func(c *Config) { c.Translator.Provider = "llama" },
			wantErr: "unknown translator provider",
		},
		{
			name:    "zero upload limit",
			mutate:  func(c *Config) { c.Upload.MaxBytes = 0 },
			wantErr: "UPLOAD_MAX_BYTES",
		},
		{
			name:    "zero throttle",
			mutate:  func(c *Config) { c.Server.ThrottleLimit = 0 },
			wantErr: "SERVER_THROTTLE_LIMIT",
		},
		{
			name:    "empty field",
			mutate:  func(c *Config) { c.Upload.FieldName = "" },
			wantErr: "UPLOAD_FIELD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

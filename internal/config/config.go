package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Server      ServerConfig
	Upload      UploadConfig
	Translator  TranslatorConfig
	Gemini      GeminiConfig
	OpenAI      OpenAIConfig
	RedisConfig RedisConfig
	CacheEnable bool   `env:"CACHE_ENABLE"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
}

type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:"redis:6379"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"10m"`
}

type ServerConfig struct {
	Port            string        `env:"SERVER_PORT" envDefault:"8080"`
	Timeout         time.Duration `env:"SERVER_TIMEOUT" envDefault:"2m"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ThrottleLimit   int           `env:"SERVER_THROTTLE_LIMIT" envDefault:"50"`
}

// UploadConfig bounds the multipart body accepted by /api/upload.
type UploadConfig struct {
	MaxBytes  int64  `env:"UPLOAD_MAX_BYTES" envDefault:"10485760"`
	FieldName string `env:"UPLOAD_FIELD" envDefault:"image"`
}

type TranslatorConfig struct {
	Provider string        `env:"TRANSLATOR_PROVIDER" envDefault:"gemini"`
	Timeout  time.Duration `env:"INFERENCE_TIMEOUT" envDefault:"60s"`
}

type GeminiConfig struct {
	APIKey  string `env:"GEMINI_API_KEY"`
	Model   string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`
	BaseURL string `env:"GEMINI_BASE_URL"`
}

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	BaseURL string `env:"OPENAI_BASE_URL" envDefault:"http://localhost:8000/v1"`
	Model   string `env:"OPENAI_MODEL" envDefault:"default"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Translator.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for provider %q", ProviderGemini)
		}
	case ProviderOpenAI:
		// OPENAI_API_KEY is optional: local OpenAI-compatible servers run without one.
	default:
		return fmt.Errorf("unknown translator provider %q", c.Translator.Provider)
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", c.Upload.MaxBytes)
	}
	if c.Upload.FieldName == "" {
		return fmt.Errorf("UPLOAD_FIELD is empty")
	}
	if c.Server.ThrottleLimit <= 0 {
		return fmt.Errorf("SERVER_THROTTLE_LIMIT must be positive, got %d", c.Server.ThrottleLimit)
	}
	return nil
}

package config

import (
	"errors"
	"time"
)

// ErrMissingAPIKey is returned by LLMConfig.RequireAPIKey when no Gemini API
// key has been configured.
var ErrMissingAPIKey = errors.New("gemini API key is not set")

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	LLM    LLMConfig    `mapstructure:"llm"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`

	// MaxBodyBytes caps the size of request bodies accepted by the API.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" validate:"gt=0"`

	// RateLimitRequests is the number of generation requests a single client
	// IP may make per RateLimitWindow. Zero disables rate limiting.
	RateLimitRequests int           `mapstructure:"rate_limit_requests" validate:"gte=0"`
	RateLimitWindow   time.Duration `mapstructure:"rate_limit_window"   validate:"gt=0"`

	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	// GeminiAPIKey is optional at load time so that commands which never call
	// the model can run without credentials. See RequireAPIKey.
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name" validate:"required"`

	// PromptTemplatePath overrides the embedded flashcard prompt.
	PromptTemplatePath string `mapstructure:"prompt_template_path" validate:"omitempty,file"`

	// RequestTimeout bounds a single generation request end to end.
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
}

// RequireAPIKey returns ErrMissingAPIKey if no API key is configured.
func (c LLMConfig) RequireAPIKey() error {
	if c.GeminiAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

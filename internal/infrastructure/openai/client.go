// Package openai adapts the upstream generation provider to the application
// layer's generator ports.
package openai

import (
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"loreforge/internal/infrastructure/config"
	"loreforge/internal/shared/errors"
)

// NewClient builds the shared API client. A missing key is a configuration
// error surfaced before any upstream call is attempted.
func NewClient(cfg *config.OpenAIConfig) (*openai.Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigurationError("openai api_key is not configured")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout: cfg.RequestTimeout,
	}

	return openai.NewClientWithConfig(clientConfig), nil
}

package recipe

import (
	"testing"
	"time"

	"github.com/socialchef/leftovers/internal/config"
)

func TestNewProvider(t *testing.T) {
	cfg := config.RecipeConfig{
		Endpoint:  "https://api.x.ai/v1/chat/completions",
		Model:     "grok-4",
		MaxTokens: 500,
		Timeout:   30 * time.Second,
	}

	provider := NewProvider(cfg, "test-grok-key")

	if provider.endpoint != cfg.Endpoint {
		t.Errorf("Expected endpoint %s, got %s", cfg.Endpoint, provider.endpoint)
	}
	if provider.model != "grok-4" {
		t.Errorf("Expected model grok-4, got %s", provider.model)
	}
	if provider.maxTokens != 500 {
		t.Errorf("Expected max tokens 500, got %d", provider.maxTokens)
	}
	if provider.httpClient.Timeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", provider.httpClient.Timeout)
	}
}

func TestNewProvider_DefaultTimeout(t *testing.T) {
	provider := NewProvider(config.RecipeConfig{}, "key")

	if provider.httpClient.Timeout != 30*time.Second {
		t.Errorf("Expected default 30s timeout, got %v", provider.httpClient.Timeout)
	}
}

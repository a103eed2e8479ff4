package recipe

import (
	"github.com/socialchef/leftovers/internal/config"
)

// NewProvider builds the chat provider described by cfg.
func NewProvider(cfg config.RecipeConfig, apiKey string) *ChatProvider {
	return NewChatProvider(apiKey, cfg.Endpoint, cfg.Model, cfg.MaxTokens, cfg.Timeout)
}

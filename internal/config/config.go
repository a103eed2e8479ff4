package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	GrokKey   string
	OpenAIKey string

	SessionSecret string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string

	Port string

	Recipe RecipeConfig
	Image  ImageConfig
}

// RecipeConfig controls the chat-completion call that writes the recipe.
type RecipeConfig struct {
	Endpoint  string        `yaml:"endpoint"`
	Model     string        `yaml:"model"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`
}

// ImageConfig controls the image-generation call that draws the dish.
type ImageConfig struct {
	BaseURL string        `yaml:"base_url"`
	Model   string        `yaml:"model"`
	Size    string        `yaml:"size"`
	Timeout time.Duration `yaml:"timeout"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		GrokKey:                  os.Getenv("GROK_API_KEY"),
		OpenAIKey:                os.Getenv("OPENAI_API_KEY"),
		SessionSecret:            os.Getenv("SESSION_SECRET"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		Port:                     os.Getenv("PORT"),
	}

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if err := cfg.LoadFromYAML(path); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "leftovers"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.SetGenerationDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Recipe RecipeConfig `yaml:"recipe"`
		Image  ImageConfig  `yaml:"image"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlConfig.Recipe.Endpoint != "" {
		c.Recipe.Endpoint = yamlConfig.Recipe.Endpoint
	}
	if yamlConfig.Recipe.Model != "" {
		c.Recipe.Model = yamlConfig.Recipe.Model
	}
	if yamlConfig.Recipe.MaxTokens > 0 {
		c.Recipe.MaxTokens = yamlConfig.Recipe.MaxTokens
	}
	if yamlConfig.Recipe.Timeout > 0 {
		c.Recipe.Timeout = yamlConfig.Recipe.Timeout
	}

	if yamlConfig.Image.BaseURL != "" {
		c.Image.BaseURL = yamlConfig.Image.BaseURL
	}
	if yamlConfig.Image.Model != "" {
		c.Image.Model = yamlConfig.Image.Model
	}
	if yamlConfig.Image.Size != "" {
		c.Image.Size = yamlConfig.Image.Size
	}
	if yamlConfig.Image.Timeout > 0 {
		c.Image.Timeout = yamlConfig.Image.Timeout
	}

	return nil
}

func (c *Config) SetGenerationDefaults() {
	if c.Recipe.Endpoint == "" {
		c.Recipe.Endpoint = "https://api.x.ai/v1/chat/completions"
	}
	if c.Recipe.Model == "" {
		c.Recipe.Model = "grok-4"
	}
	if c.Recipe.MaxTokens <= 0 {
		c.Recipe.MaxTokens = 500
	}
	if c.Recipe.Timeout <= 0 {
		c.Recipe.Timeout = 30 * time.Second
	}

	if c.Image.Model == "" {
		c.Image.Model = "gpt-image-1"
	}
	if c.Image.Size == "" {
		c.Image.Size = "1024x1024"
	}
	if c.Image.Timeout <= 0 {
		c.Image.Timeout = 30 * time.Second
	}
}

func (c *Config) validate() error {
	if c.GrokKey == "" {
		return fmt.Errorf("GROK_API_KEY is required")
	}
	if c.OpenAIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.Env == "production" && c.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET is required in production")
	}
	return nil
}

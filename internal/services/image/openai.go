package image

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/socialchef/leftovers/internal/config"
	"github.com/socialchef/leftovers/internal/httpclient"
	"github.com/socialchef/leftovers/internal/metrics"
)

// ErrEmptyResponse is returned when the endpoint answers without any image entry.
var ErrEmptyResponse = errors.New("image response contained no data")

// OpenAIProvider implements Provider with the OpenAI Images API.
type OpenAIProvider struct {
	client openai.Client
	model  string
	size   string
}

// NewOpenAIProvider creates a provider from cfg. SDK retries are disabled:
// each generation is exactly one request bounded by cfg.Timeout.
func NewOpenAIProvider(cfg config.ImageConfig, apiKey string, httpClient *http.Client) *OpenAIProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	if httpClient == nil {
		httpClient = httpclient.NewInstrumentedClient(timeout)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
		option.WithRequestTimeout(timeout),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-image-1"
	}
	size := cfg.Size
	if size == "" {
		size = "1024x1024"
	}

	return &OpenAIProvider{
		client: openai.NewClient(opts...),
		model:  model,
		size:   size,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (*Payload, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", "openai-images")}
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	resp, err := p.client.Images.Generate(httpclient.WithProvider(ctx, "OpenAI"), openai.ImageGenerateParams{
		Prompt: prompt,
		Model:  openai.ImageModel(p.model),
		N:      openai.Int(1),
		Size:   openai.ImageGenerateParamsSize(p.size),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, ErrEmptyResponse
	}

	return &Payload{
		URL:     resp.Data[0].URL,
		B64JSON: resp.Data[0].B64JSON,
	}, nil
}

package recipe

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/socialchef/leftovers/internal/httpclient"
	"github.com/socialchef/leftovers/internal/metrics"
)

// ChatProvider implements Provider for OpenAI-compatible chat completion
// endpoints such as x.ai's Grok.
type ChatProvider struct {
	apiKey     string
	endpoint   string
	model      string
	maxTokens  int
	name       string
	httpClient *http.Client
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ErrNoChoices is returned when the response carries an empty choices array.
var ErrNoChoices = errors.New("response contained an empty choices list")

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// NewChatProvider creates a chat provider. A zero timeout falls back to 30s.
func NewChatProvider(apiKey, endpoint, model string, maxTokens int, timeout time.Duration) *ChatProvider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChatProvider{
		apiKey:     apiKey,
		endpoint:   endpoint,
		model:      model,
		maxTokens:  maxTokens,
		name:       "Grok",
		httpClient: httpclient.NewInstrumentedClient(timeout),
	}
}

// Complete posts prompt as a single user message. A response without a
// choices key or without content yields NoContent rather than an error.
func (p *ChatProvider) Complete(ctx context.Context, prompt string) (string, error) {
	startTime := time.Now()
	defer func() {
		duration := time.Since(startTime).Seconds()
		attrs := []attribute.KeyValue{attribute.String("provider", p.name)}
		metrics.ExternalAPIDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
		metrics.ExternalAPICallsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	}()

	req := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens: p.maxTokens,
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	httpReq, err := http.NewRequestWithContext(httpclient.WithProvider(ctx, p.name), http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{Provider: p.name, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decoding %s response: %w", p.name, err)
	}

	// A missing choices key falls back to NoContent; an empty array has no
	// first choice to read and is a failure.
	if chatResp.Choices == nil {
		return NoContent, nil
	}
	if len(chatResp.Choices) == 0 {
		return "", ErrNoChoices
	}
	if chatResp.Choices[0].Message.Content == nil {
		return NoContent, nil
	}

	return *chatResp.Choices[0].Message.Content, nil
}

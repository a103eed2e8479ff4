package image

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "github.com/socialchef/leftovers/internal/errors"
	"github.com/socialchef/leftovers/internal/httpclient"
	"github.com/socialchef/leftovers/internal/logger"
	"github.com/socialchef/leftovers/internal/metrics"
	"github.com/socialchef/leftovers/internal/sentry"
	"github.com/socialchef/leftovers/internal/services/ai"
)

// ErrorPrefix starts every image failure notification.
const ErrorPrefix = "❌ Error generating image: "

// Result is the outcome of one image generation. A nil Image with a nil Err
// means the endpoint returned neither a URL nor inline data.
type Result struct {
	Image *Image
	Err   error
}

// Message is the user-facing notification for a failed result, or "".
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	cause := r.Err
	var appErr *apperrors.AppError
	if errors.As(cause, &appErr) && appErr.Err != nil {
		cause = appErr.Err
	}
	return ErrorPrefix + cause.Error()
}

// Generator turns a dish title into a decoded image.
type Generator struct {
	provider   Provider
	httpClient *http.Client
}

// NewGenerator creates a generator. downloadTimeout bounds the follow-up GET
// when the endpoint answers with a URL.
func NewGenerator(provider Provider, downloadTimeout time.Duration) *Generator {
	if downloadTimeout <= 0 {
		downloadTimeout = 30 * time.Second
	}
	return &Generator{
		provider:   provider,
		httpClient: httpclient.NewInstrumentedClient(downloadTimeout),
	}
}

// Generate requests one image of dishTitle and resolves it to decoded bytes.
func (g *Generator) Generate(ctx context.Context, dishTitle string) Result {
	result := g.generate(ctx, dishTitle)

	outcome := "ok"
	switch {
	case result.Err != nil:
		outcome = "error"
		slog.WarnContext(ctx, "Image generation failed", "dish_title", dishTitle, "error", result.Err, logger.WithTraceContext(ctx))
		sentry.CaptureError(result.Err, map[string]string{"stage": "image"})
	case result.Image == nil:
		outcome = "empty"
		slog.WarnContext(ctx, "Image response had neither url nor b64_json", "dish_title", dishTitle)
	default:
		slog.InfoContext(ctx, "Image generated", "dish_title", dishTitle, "format", result.Image.Format, "bytes", len(result.Image.Data))
	}
	metrics.ImageGenerationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))

	return result
}

func (g *Generator) generate(ctx context.Context, dishTitle string) Result {
	payload, err := g.provider.Generate(ctx, ai.BuildImagePrompt(dishTitle))
	if err != nil {
		return Result{Err: apperrors.NewImageGenerationError("image request failed", "IMAGE_REQUEST_FAILED", err)}
	}

	switch {
	case payload == nil:
		return Result{}
	case payload.URL != "":
		data, err := httpclient.Download(httpclient.WithProvider(ctx, "ImageDownload"), g.httpClient, payload.URL)
		if err != nil {
			return Result{Err: apperrors.NewImageGenerationError("image download failed", "IMAGE_DOWNLOAD_FAILED", err)}
		}
		img, err := Decode(data)
		if err != nil {
			return Result{Err: apperrors.NewImageGenerationError("image decode failed", "IMAGE_DECODE_FAILED", err)}
		}
		return Result{Image: img}
	case payload.B64JSON != "":
		img, err := DecodeBase64(payload.B64JSON)
		if err != nil {
			return Result{Err: apperrors.NewImageGenerationError("image decode failed", "IMAGE_DECODE_FAILED", err)}
		}
		return Result{Image: img}
	default:
		return Result{}
	}
}

// GenerateImage returns the decoded image or nil. Failures are reported to
// notifier rather than returned; an empty response is silently nil.
func (g *Generator) GenerateImage(ctx context.Context, dishTitle string, notifier Notifier) *Image {
	result := g.Generate(ctx, dishTitle)
	if result.Err != nil && notifier != nil {
		notifier.Notify(result.Message())
	}
	return result.Image
}

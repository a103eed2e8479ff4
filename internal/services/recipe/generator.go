package recipe

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	apperrors "github.com/socialchef/leftovers/internal/errors"
	"github.com/socialchef/leftovers/internal/ingredient"
	"github.com/socialchef/leftovers/internal/logger"
	"github.com/socialchef/leftovers/internal/metrics"
	"github.com/socialchef/leftovers/internal/services/ai"
)

// ErrorPrefix starts every recipe failure shown in place of a recipe.
const ErrorPrefix = "❌ Error generating recipe: "

// Result is the outcome of one recipe generation: text on success, Err on failure.
type Result struct {
	Text string
	Err  error
}

// OK reports whether the generation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// String renders the result the way it is displayed: the recipe text, or
// the failure glyph followed by the underlying error.
func (r Result) String() string {
	if r.Err == nil {
		return r.Text
	}
	cause := r.Err
	var appErr *apperrors.AppError
	if errors.As(cause, &appErr) && appErr.Err != nil {
		cause = appErr.Err
	}
	return ErrorPrefix + cause.Error()
}

// Generator turns an ingredient list into recipe text.
type Generator struct {
	provider Provider
}

func NewGenerator(provider Provider) *Generator {
	return &Generator{provider: provider}
}

// Generate makes exactly one provider call. Failures are carried in the Result.
func (g *Generator) Generate(ctx context.Context, ingredients ingredient.List) Result {
	prompt := ai.BuildRecipePrompt(ingredients)

	text, err := g.provider.Complete(ctx, prompt)
	if err != nil {
		class := ClassifyError(err)
		metrics.RecipeGenerationsTotal.Add(ctx, 1, metric.WithAttributes(
			attribute.String("outcome", "error"),
			attribute.String("failure", class),
		))
		slog.WarnContext(ctx, "Recipe generation failed",
			"error", err,
			"failure", class,
			"ingredients", len(ingredients),
			logger.WithTraceContext(ctx),
		)
		return Result{Err: apperrors.NewRecipeGenerationError("recipe request failed", "RECIPE_"+strings.ToUpper(class), err)}
	}

	metrics.RecipeGenerationsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "ok")))
	slog.InfoContext(ctx, "Recipe generated", "ingredients", len(ingredients), "chars", len(text))
	return Result{Text: text}
}

// GenerateRecipe returns the recipe text, or an error marker string that
// embeds the failure. It never returns an error value.
func (g *Generator) GenerateRecipe(ctx context.Context, ingredients ingredient.List) string {
	return g.Generate(ctx, ingredients).String()
}

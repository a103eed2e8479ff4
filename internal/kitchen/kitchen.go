// Package kitchen sequences recipe generation and image generation for a session.
package kitchen

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/socialchef/leftovers/internal/ingredient"
	"github.com/socialchef/leftovers/internal/metrics"
	"github.com/socialchef/leftovers/internal/services/ai"
	"github.com/socialchef/leftovers/internal/services/image"
	"github.com/socialchef/leftovers/internal/telemetry"
)

const (
	WarningNoIngredients = "⚠️ Please add at least one ingredient."
	WarningFillAllItems  = "⚠️ Please fill in all ingredient items."
)

// RecipeGenerator produces recipe text; failures come back as marker text.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, ingredients ingredient.List) string
}

// ImageGenerator produces the dish photo or nil, reporting failures to notifier.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, dishTitle string, notifier image.Notifier) *image.Image
}

// Kitchen runs the generate action.
type Kitchen struct {
	recipes  RecipeGenerator
	images   ImageGenerator
	observer Observer
	tracer   trace.Tracer
}

type Option func(*Kitchen)

// WithObserver registers an observer for state transitions.
func WithObserver(o Observer) Option {
	return func(k *Kitchen) { k.observer = o }
}

func New(recipes RecipeGenerator, images ImageGenerator, opts ...Option) *Kitchen {
	k := &Kitchen{
		recipes: recipes,
		images:  images,
		tracer:  telemetry.Tracer("leftovers/kitchen"),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Generate runs Idle → Validating → GeneratingRecipe → GeneratingImage →
// Displaying → Idle for s, storing and returning the outcome. Validation
// failures return to Idle with a warning and make no calls.
// The caller must hold the session lock.
func (k *Kitchen) Generate(ctx context.Context, s *Session) *Outcome {
	ctx, span := k.tracer.Start(ctx, "kitchen.Generate")
	defer span.End()

	start := time.Now()
	outcome := &Outcome{}
	s.Outcome = outcome

	k.transition(ctx, s, StateValidating)
	if !s.Ingredients.HasContent() {
		return k.reject(ctx, s, outcome, WarningNoIngredients)
	}
	if !s.Ingredients.AllItemsFilled() {
		return k.reject(ctx, s, outcome, WarningFillAllItems)
	}

	k.transition(ctx, s, StateGeneratingRecipe)
	outcome.Recipe = k.recipes.GenerateRecipe(ctx, s.Ingredients.Clone())
	outcome.DishTitle = ai.DishTitle(outcome.Recipe)
	span.SetAttributes(attribute.String("dish_title", outcome.DishTitle))

	k.transition(ctx, s, StateGeneratingImage)
	outcome.Image = k.images.GenerateImage(ctx, outcome.DishTitle, &outcome.Notices)

	k.transition(ctx, s, StateDisplaying)
	outcome.Generated = true
	outcome.State = StateDisplaying

	metrics.GenerationDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.Bool("has_image", outcome.Image != nil)))
	slog.InfoContext(ctx, "Generation finished",
		"session_id", s.ID,
		"dish_title", outcome.DishTitle,
		"has_image", outcome.Image != nil,
		"notices", len(outcome.Notices),
		"duration", time.Since(start),
	)

	k.transition(ctx, s, StateIdle)
	return outcome
}

func (k *Kitchen) reject(ctx context.Context, s *Session, outcome *Outcome, warning string) *Outcome {
	outcome.Warning = warning
	outcome.State = StateIdle
	metrics.ValidationWarnings.Add(ctx, 1)
	slog.InfoContext(ctx, "Generation rejected", "session_id", s.ID, "warning", warning)
	k.transition(ctx, s, StateIdle)
	return outcome
}

func (k *Kitchen) transition(ctx context.Context, s *Session, to State) {
	from := s.State
	s.State = to
	trace.SpanFromContext(ctx).AddEvent("state", trace.WithAttributes(
		attribute.String("from", from.String()),
		attribute.String("to", to.String()),
	))
	slog.DebugContext(ctx, "State transition", "session_id", s.ID, "from", from.String(), "to", to.String())
	if k.observer != nil {
		k.observer.Transition(from, to)
	}
}

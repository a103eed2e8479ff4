package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	_ "github.com/joho/godotenv/autoload"

	"github.com/socialchef/leftovers/internal/api"
	"github.com/socialchef/leftovers/internal/config"
	"github.com/socialchef/leftovers/internal/kitchen"
	"github.com/socialchef/leftovers/internal/logger"
	"github.com/socialchef/leftovers/internal/metrics"
	"github.com/socialchef/leftovers/internal/middleware"
	"github.com/socialchef/leftovers/internal/sentry"
	"github.com/socialchef/leftovers/internal/services/image"
	"github.com/socialchef/leftovers/internal/services/recipe"
	"github.com/socialchef/leftovers/internal/session"
	"github.com/socialchef/leftovers/internal/telemetry"
)

func main() {
	defer sentry.Recover()

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize telemetry
	shutdown, err := telemetry.InitTelemetry(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Env,
		cfg.OtelExporterOTLPEndpoint, telemetry.ParseHeaders(cfg.OtelExporterOTLPHeaders))
	if err != nil {
		slog.Warn("Failed to init telemetry", "error", err)
	} else {
		defer shutdown(ctx)
	}

	// Initialize Sentry
	if err := sentry.Init(cfg.SentryDSN, cfg.Env, cfg.ServiceName, cfg.ServiceVersion); err != nil {
		slog.Warn("Failed to init Sentry", "error", err)
	} else if cfg.SentryDSN != "" {
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize business metrics
	if err := metrics.Init(); err != nil {
		slog.Warn("Failed to init business metrics", "error", err)
	}

	// Initialize logger with OTel support
	logger := logger.New(cfg.Env)
	slog.SetDefault(logger) // Set as default so slog.Info() uses our handler

	// Generators
	recipes := recipe.NewGenerator(recipe.NewProvider(cfg.Recipe, cfg.GrokKey))
	images := image.NewGenerator(image.NewOpenAIProvider(cfg.Image, cfg.OpenAIKey, nil), cfg.Image.Timeout)

	k := kitchen.New(recipes, images, kitchen.WithObserver(kitchen.ObserverFunc(func(from, to kitchen.State) {
		logger.Debug("Kitchen state", "from", from.String(), "to", to.String())
	})))

	// Sessions
	secret := cfg.SessionSecret
	if secret == "" {
		secret = uuid.New().String()
		slog.Warn("SESSION_SECRET not set, sessions will not survive a restart")
	}
	store := session.NewStore(session.DefaultTTL)
	go store.Run(ctx, 10*time.Minute)
	sessions := middleware.NewSessions(secret, store, cfg.Env == "production")

	apiServer := api.NewServer(k)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           api.NewRouter(cfg.ServiceName, apiServer, sessions),
		ReadHeaderTimeout: 10 * time.Second,
		// Generation runs two upstream calls back to back.
		WriteTimeout: cfg.Recipe.Timeout + cfg.Image.Timeout + 30*time.Second,
	}

	slog.Info("Starting server", "port", cfg.Port)

	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

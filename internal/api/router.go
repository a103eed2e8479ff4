package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/riandyrn/otelchi"
	otelchimetric "github.com/riandyrn/otelchi/metric"
	"go.opentelemetry.io/otel"

	"github.com/socialchef/leftovers/internal/middleware"
	"github.com/socialchef/leftovers/internal/sentry"
)

// NewRouter mounts the health check, the stateless JSON API and the
// cookie-session browser form.
func NewRouter(serviceName string, s *Server, sessions *middleware.Sessions) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(sentry.HTTPMiddleware)
	r.Use(otelchi.Middleware(serviceName,
		otelchi.WithChiRoutes(r),
		otelchi.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	))

	// HTTP metrics
	metricCfg := otelchimetric.NewBaseConfig(serviceName, otelchimetric.WithMeterProvider(otel.GetMeterProvider()))
	r.Use(otelchimetric.NewRequestDurationMillis(metricCfg))
	r.Use(otelchimetric.NewRequestInFlight(metricCfg))
	r.Use(otelchimetric.NewResponseSizeBytes(metricCfg))

	r.NotFound(s.HandleNotFound)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Group(func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
		}))
		r.Post("/api/generate", s.HandleGenerate)
	})

	r.Group(func(r chi.Router) {
		r.Use(sessions.Middleware)
		r.Use(middleware.RequireSession)
		r.Get("/", s.HandleIndex)
		r.Post("/ingredients", s.HandleIngredients)
	})

	return r
}

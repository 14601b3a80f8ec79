package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/atomslab/lead-intake-api/internal/http/handlers"
	httpmiddleware "github.com/atomslab/lead-intake-api/internal/http/middleware"
	"github.com/atomslab/lead-intake-api/internal/leads"
	"github.com/atomslab/lead-intake-api/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	LeadsHandler   *leads.Handler
	DebugStore     *handlers.DebugStoreHandler
	MetricsHandler http.Handler

	AllowedOrigins []string
	MaxBodyBytes   int64
	AdminToken     string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware: the origin gate runs before anything that could touch
	// business logic.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(httpmiddleware.CORS(cfg.AllowedOrigins))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", handlers.Health)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		api.With(httpmiddleware.BodyLimit(cfg.MaxBodyBytes)).
			Post("/lead", cfg.LeadsHandler.Submit)

		// Operator diagnostic; never mounted without an admin token.
		if cfg.DebugStore != nil && cfg.AdminToken != "" {
			api.With(httpmiddleware.RequireAdminToken(cfg.AdminToken)).
				Get("/debug-db", cfg.DebugStore.Check)
		}
	})

	return r
}

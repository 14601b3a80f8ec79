package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atomslab/lead-intake-api/internal/api/router"
	appconfig "github.com/atomslab/lead-intake-api/internal/config"
	"github.com/atomslab/lead-intake-api/internal/http/handlers"
	"github.com/atomslab/lead-intake-api/internal/leads"
	"github.com/atomslab/lead-intake-api/internal/notify"
	"github.com/atomslab/lead-intake-api/internal/observability/metrics"
	"github.com/atomslab/lead-intake-api/pkg/logging"
)

func main() {
	// .env is a dev convenience; absence is fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting lead-intake-api",
		"env", cfg.Env,
		"port", cfg.Port,
		"origins", cfg.AllowedOrigins,
	)
	if len(cfg.AllowedOrigins) == 0 {
		logger.Warn("no ALLOWED_ORIGINS configured, origin enforcement disabled")
	}

	// Store
	var repo leads.Repository
	if cfg.UseMemoryStore {
		logger.Warn("using in-memory lead store, submissions will not survive restarts")
		repo = leads.NewInMemoryRepository()
	} else {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		repo = leads.NewPostgresRepository(pool)
	}

	// Notifier
	intakeMetrics := metrics.NewIntakeMetrics(nil)
	var sender notify.EmailSender
	if sg := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.NotifyFrom,
		FromName:  cfg.NotifyFromName,
	}, logger); sg != nil {
		sender = sg
	} else {
		logger.Warn("SENDGRID_API_KEY not set, lead notifications disabled")
		sender = notify.NewStubEmailSender(logger)
	}
	notifier := notify.NewLeadNotifier(sender, cfg.NotifyTo, cfg.NotifyTimeout, intakeMetrics, logger)

	// Handlers and router
	leadsHandler := leads.NewHandler(repo, notifier, intakeMetrics, cfg.StoreTimeout, logger)
	r := router.New(&router.Config{
		Logger:         logger,
		LeadsHandler:   leadsHandler,
		DebugStore:     handlers.NewDebugStoreHandler(repo, logger),
		MetricsHandler: promhttp.Handler(),
		AllowedOrigins: cfg.AllowedOrigins,
		MaxBodyBytes:   cfg.MaxBodyBytes,
		AdminToken:     cfg.AdminToken,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	// Wait for an interrupt signal or a listener failure, then shut down
	// gracefully so deferred cleanup and the notifier drain still run.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-serveErr:
		logger.Error("server error", "error", err)
	}

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	// Drain in-flight notification sends before exiting.
	notifier.Wait()

	logger.Info("server stopped")
}

// Package app wires configuration, logging, services and the HTTP router
// into a runnable dashboard backend.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sailcli/internal/config"
	apierrors "sailcli/internal/errors"
	"sailcli/internal/middleware"
	"sailcli/internal/services"
	transporthttp "sailcli/internal/transport/http"
)

// Version is the build version injected via ldflags.
var Version = "dev"

// App is the assembled dashboard backend.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
}

// New assembles the application from its configuration.
func New(cfg *config.Config, logger *slog.Logger) *App {
	errorHandler := apierrors.NewErrorHandler(logger)
	reportService := services.NewReportService(cfg.Pipeline, logger)
	reportHandler := transporthttp.NewReportHandler(reportService, logger, errorHandler, cfg.Server.MaxUploadBytes)
	healthHandler := transporthttp.NewHealthHandler(Version)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.StructuredLogger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.RateLimit(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst))

	r.Mount("/healthz", healthHandler.Routes())
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/api", func(r chi.Router) {
		r.Mount("/", reportHandler.Routes())
	})

	return &App{
		cfg:    cfg,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
			Handler:      r,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
	}
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server listening", slog.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}

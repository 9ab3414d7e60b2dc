package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clinicore/agenda-engine/internal/api/router"
	"github.com/clinicore/agenda-engine/internal/availability"
	"github.com/clinicore/agenda-engine/internal/booking"
	appconfig "github.com/clinicore/agenda-engine/internal/config"
	"github.com/clinicore/agenda-engine/internal/observability/metrics"
	"github.com/clinicore/agenda-engine/internal/planner"
	"github.com/clinicore/agenda-engine/pkg/logging"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting agenda-engine API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"horizon_days", cfg.HorizonDays,
	)

	registry := prometheus.NewRegistry()
	engineMetrics := metrics.NewEngineMetrics(registry)

	// Engine services
	gapService := availability.NewService(cfg.MinGapMinutes, logger, engineMetrics)
	validator := booking.NewValidator(logger, engineMetrics)
	scheduler := planner.NewScheduler(planner.Config{
		HorizonDays:             cfg.HorizonDays,
		StepMinutes:             cfg.StepMinutes,
		DefaultDurationMinutes:  cfg.DefaultDurationMinutes,
		HighPrioritySpacingDays: cfg.HighPrioritySpacingDays,
		DefaultSpacingDays:      cfg.DefaultSpacingDays,
	}, gapService, validator, logger, engineMetrics)

	// Setup router
	r := router.New(&router.Config{
		Logger:              logger,
		AvailabilityHandler: availability.NewHandler(gapService, logger),
		BookingHandler:      booking.NewHandler(validator, logger),
		PlannerHandler:      planner.NewHandler(scheduler, logger),
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitRPS:        cfg.RateLimitRPS,
		RateLimitBurst:      cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"uenvalidator/internal/pages"
	"uenvalidator/internal/platform/config"
	"uenvalidator/internal/platform/health"
	"uenvalidator/internal/platform/httpserver"
	"uenvalidator/internal/platform/logger"
	"uenvalidator/internal/platform/tracing"
	httptransport "uenvalidator/internal/transport/http"
	uenhandler "uenvalidator/internal/uen/handler"
	uenmetrics "uenvalidator/internal/uen/metrics"
	"uenvalidator/internal/uen/service"
	"uenvalidator/internal/uen/tracer"
	"uenvalidator/internal/uen/validator"
	"uenvalidator/pkg/platform/middleware/metadata"
	"uenvalidator/pkg/platform/middleware/request"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Validation rules live in internal/uen/validator.
func main() {
	configPath := flag.String("config", "", "config file (default: $UEN_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.New("error").Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level)

	if err := run(cfg, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	log.Info("initializing uen validator",
		"addr", cfg.Server.Addr,
		"environment", cfg.App.Environment,
		"version", health.Version,
		"tracing", cfg.Tracing.Enabled,
	)

	provider, err := tracing.NewProvider(tracing.Config{
		Enabled:    cfg.Tracing.Enabled,
		Exporter:   cfg.Tracing.Exporter,
		SampleRate: cfg.Tracing.SampleRate,
	})
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}

	trustedProxies, err := metadata.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return fmt.Errorf("parsing trusted proxies: %w", err)
	}

	svc := service.New(
		service.WithLogger(log),
		service.WithMetrics(uenmetrics.New()),
		service.WithTracer(tracer.NewOTel(tracer.WithOTelTracer(provider.TracerProvider().Tracer("uenvalidator/uen")))),
	)

	healthHandler := health.New(cfg.App.Environment)
	healthHandler.RegisterCheck("engine", validator.SelfCheck)

	router := httptransport.NewRouter(
		httptransport.Config{
			RequestTimeout: cfg.Server.RequestTimeout,
			MaxBodyBytes:   cfg.Server.MaxBodyBytes,
			Metadata:       &metadata.Config{TrustedProxies: trustedProxies},
		},
		log,
		request.NewMetrics(),
		promhttp.Handler(),
		uenhandler.New(svc, log),
		pages.New(log),
		healthHandler,
	)

	srv := httpserver.New(cfg.Server.Addr, router, cfg.Server.ReadHeaderTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := httpserver.Run(ctx, srv, nil, cfg.Server.ShutdownTimeout, log)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := provider.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to flush traces", "error", err)
	}

	return runErr
}

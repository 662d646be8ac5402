package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/patient-intake-gateway/internal/api/router"
	appconfig "github.com/wolfman30/patient-intake-gateway/internal/config"
	"github.com/wolfman30/patient-intake-gateway/internal/demo"
	"github.com/wolfman30/patient-intake-gateway/internal/intake"
	"github.com/wolfman30/patient-intake-gateway/internal/observability/metrics"
	"github.com/wolfman30/patient-intake-gateway/internal/stats"
	"github.com/wolfman30/patient-intake-gateway/internal/webhook"
	"github.com/wolfman30/patient-intake-gateway/internal/widget"
	"github.com/wolfman30/patient-intake-gateway/pkg/logging"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting patient-intake-gateway API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// Initialize metrics
	registry := prometheus.NewRegistry()
	intakeMetrics, metricsHandler := setupMetrics(registry)

	// Resolve the webhook target; demo mode serves its own receiver
	webhookURL, demoReceiver := resolveWebhook(cfg, logger)
	if demoReceiver != nil {
		logger.Info("demo mode enabled", "webhook_url", webhookURL)
	}

	submitter := newWebhookClient(webhookURL, cfg, logger, intakeMetrics)

	// Initialize handlers
	intakeHandler := intake.NewHandler(submitter, intakeMetrics, logger)
	statsHandler := stats.NewHandler(registry, logger)

	// Setup router
	routerCfg := &router.Config{
		Logger:         logger,
		IntakeHandler:  intakeHandler,
		StatsHandler:   statsHandler,
		WidgetHandler:  widget.NewHandler(),
		DemoReceiver:   demoReceiver,
		MetricsHandler: metricsHandler,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimitRPS:   float64(cfg.RateLimitRPS),
		RateLimitBurst: cfg.RateLimitBurst,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
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

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// setupMetrics registers the gateway collectors on the registry and returns
// them along with a /metrics handler backed by the same registry.
func setupMetrics(registry *prometheus.Registry) (*metrics.IntakeMetrics, http.Handler) {
	m := metrics.NewIntakeMetrics(registry)
	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m, handler
}

// resolveWebhook picks the outbound target and, in demo mode, the local
// receiver that serves it. An explicit WEBHOOK_URL wins even in demo mode so
// the receiver can be kept around for manual poking while real submissions
// go elsewhere.
func resolveWebhook(cfg *appconfig.Config, logger *logging.Logger) (string, *demo.Receiver) {
	url := cfg.WebhookURL
	var receiver *demo.Receiver
	if cfg.DemoMode {
		receiver = demo.NewReceiver(logger)
		if url == "" {
			url = fmt.Sprintf("http://127.0.0.1:%s/demo/webhook", cfg.Port)
		}
	}
	return url, receiver
}

func newWebhookClient(url string, cfg *appconfig.Config, logger *logging.Logger, m *metrics.IntakeMetrics) *webhook.Client {
	opts := []webhook.ClientOption{
		webhook.WithLogger(logger),
		webhook.WithMetrics(m),
	}
	if cfg.WebhookTimeout > 0 {
		opts = append(opts, webhook.WithTimeout(cfg.WebhookTimeout))
	}
	return webhook.NewClient(url, opts...)
}

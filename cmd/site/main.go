package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/rollerup-site/cmd/mainconfig"
	"github.com/wolfman30/rollerup-site/internal/api/router"
	"github.com/wolfman30/rollerup-site/internal/app/bootstrap"
	appconfig "github.com/wolfman30/rollerup-site/internal/config"
	"github.com/wolfman30/rollerup-site/internal/content"
	"github.com/wolfman30/rollerup-site/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/rollerup-site/internal/http/middleware"
	"github.com/wolfman30/rollerup-site/internal/leadexport"
	"github.com/wolfman30/rollerup-site/internal/leads"
	"github.com/wolfman30/rollerup-site/internal/notify"
	"github.com/wolfman30/rollerup-site/internal/observability/metrics"
	"github.com/wolfman30/rollerup-site/pkg/logging"
)

func main() {
	cfg, dotenv := mainconfig.LoadConfig()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting rollerup site",
		"env", cfg.Env,
		"port", cfg.Port,
		"dotenv", dotenv,
	)

	ctx := context.Background()
	app, err := buildApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      app.handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		app.Close()
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

type app struct {
	handler http.Handler
	store   *bootstrap.StoreRuntime
	limiter *httpmiddleware.RateLimiter
	alerter *notify.FallbackAlerter
}

func (a *app) Close() {
	if a.limiter != nil {
		a.limiter.Close()
	}
	a.alerter.Wait()
	a.store.Close()
}

func buildApp(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (*app, error) {
	metricsHandler, leadMetrics := setupMetrics()

	storeRT, err := bootstrap.BuildLeadStore(ctx, cfg, mainconfig.LoadAWSConfig, logger, leadMetrics)
	if err != nil {
		return nil, err
	}

	sender, err := bootstrap.BuildEmailSender(ctx, cfg, mainconfig.LoadAWSConfig, logger)
	if err != nil {
		storeRT.Close()
		return nil, err
	}
	alerter := notify.NewFallbackAlerter(sender, cfg.SalesEmail, logger)

	var limiter *httpmiddleware.RateLimiter
	if cfg.FormRateLimitRPS > 0 {
		limiter = httpmiddleware.NewRateLimiter(cfg.FormRateLimitRPS, cfg.FormRateLimitBurst)
	}

	formHandler := handlers.NewLeadFormHandler(handlers.LeadFormConfig{
		Transport:  leads.NewHTTPTransport(cfg.LeadsWebhookURL, cfg.LeadsWebhookTimeout),
		Store:      storeRT.Store,
		Logger:     logger.Component("lead_form"),
		Metrics:    leadMetrics,
		OnFallback: alerter.LeadFallback,
	})
	exporter := leadexport.NewExporter(storeRT.Store, logger.Component("leadexport"), leadMetrics)

	handler := router.New(&router.Config{
		Logger:             logger,
		LeadForm:           formHandler,
		AdminLeads:         handlers.NewAdminLeadsHandler(storeRT.Store, exporter, logger),
		Content:            handlers.NewContentHandler(content.Default(cfg.SalesEmail)),
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		FormRateLimiter:    limiter,
	})

	logger.Info("lead form ready",
		"webhook", cfg.LeadsWebhookURL,
		"store", storeRT.Backend,
		"rate_limit_rps", cfg.FormRateLimitRPS,
	)
	return &app{handler: handler, store: storeRT, limiter: limiter, alerter: alerter}, nil
}

func setupMetrics() (http.Handler, *metrics.LeadMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), metrics.NewLeadMetrics(reg)
}

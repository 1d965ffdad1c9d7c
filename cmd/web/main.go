package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"pehlione.com/admin/internal/apiclient"
	"pehlione.com/admin/internal/config"
	apphttp "pehlione.com/admin/internal/http"
	"pehlione.com/admin/internal/http/flash"
	"pehlione.com/admin/internal/http/session"
	"pehlione.com/admin/internal/modules/orders"
	"pehlione.com/admin/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := telemetry.NewLogger(os.Stdout, cfg.LogLevel)
	if cfg.InsecureSecret() {
		logger.Warn("SESSION_SECRET not set, using the development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := telemetry.SetupTracer(ctx, telemetry.TracerConfig{
		Enabled:     cfg.OTelEnabled,
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTelEndpoint,
	})
	if err != nil {
		logger.Error("failed to initialise tracer", "error", err)
		os.Exit(1)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(sctx); err != nil {
			logger.Error("tracer shutdown error", "error", err)
		}
	}()

	client, err := apiclient.New(cfg.APIBaseURL, apiclient.ContextToken{Fallback: cfg.APIToken},
		apiclient.WithLogger(logger))
	if err != nil {
		logger.Error("invalid API client", "error", err)
		os.Exit(1)
	}

	if cfg.AdminServiceMode {
		logger.Warn("ADMIN_SERVICE_MODE on, the admin pages are open without a login")
	}
	secret := []byte(cfg.SessionSecret)

	gin.SetMode(gin.ReleaseMode)
	r := apphttp.NewRouter(apphttp.Deps{
		Logger:       logger,
		Orders:       orders.NewService(client),
		Flash:        flash.NewCodec(secret, "admin_flash", cfg.CookieSecure),
		Session:      session.New(secret, "admin_session", cfg.CookieSecure),
		ServiceAdmin: cfg.ServiceAdmin(),
		PageSize:     cfg.OrdersPageSize,
		ServiceName:  serviceNameIf(cfg.OTelEnabled, cfg.ServiceName),
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("admin web listening", "addr", cfg.HTTPAddr, "api", cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func serviceNameIf(enabled bool, name string) string {
	if !enabled {
		return ""
	}
	return name
}

// Package main запускает страницу участников организации
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"members-service/internal/config"
	"members-service/internal/console"
	"members-service/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := config.LoadEnvFiles(config.DefaultEnvFiles...); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.LoadConsole()
	if err != nil {
		log.Fatal(err)
	}

	logger := config.NewLogger(os.Stdout, cfg.LogLevel)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTELEndpoint, cfg.ServiceName)
	if err != nil {
		logger.Warn("tracing disabled", slog.Any("err", err))
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("tracing shutdown error", slog.Any("err", err))
		}
	}()

	app, err := console.NewApp(cfg, logger)
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	// Список загружается сразу, чтобы первая страница не ждала roster API
	go app.Workspace.Mount(ctx)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(app.Handler(logger).Router(), cfg.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting http server",
			slog.String("addr", server.Addr),
			slog.String("org_id", cfg.OrgID),
			slog.String("roster_api", cfg.RosterAPIURL),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("err", err))
			cancel()
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server shutdown error", slog.Any("err", err))
	}

	logger.Info("server stopped")
}

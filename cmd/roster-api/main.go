// Package main запускает roster API: участники организаций поверх PostgreSQL
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
	httpapi "members-service/internal/http"
	"members-service/internal/repository"
	"members-service/internal/service"
	"members-service/internal/telemetry"
)

func main() {
	// Контекст для корректного завершения
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Чтение конфигурации из .env и ENV
	if _, err := config.LoadEnvFiles(config.DefaultEnvFiles...); err != nil {
		log.Fatal(err)
	}
	cfg, err := config.LoadRosterAPI()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
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

	// Подключение к БД
	db, err := repository.NewPostgres(ctx, cfg.DSN)
	if err != nil {
		log.Fatalf("failed to init postgres: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to prepare schema: %v", err)
	}

	memberRepo := repository.NewMemberRepo(db)
	txManager := repository.NewTransactionManager(db)
	memberService := service.NewMemberService(memberRepo, txManager)

	handler := httpapi.NewHandler(memberService, logger)
	handler.CORSOrigins = cfg.CORSOrigins

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           otelhttp.NewHandler(handler.Router(), cfg.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		logger.Info("starting http server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("err", err))
			cancel()
		}
	}()

	// Graceful Shutdown
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

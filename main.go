package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"okultedarik/internal/config"
	"okultedarik/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.App.LogLevel, "okultedarik")
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	zlog.Info("configuration loaded", zap.Stringer("config", cfg))

	ctx := context.Background()
	app, err := newApp(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize application", zap.Error(err))
	}
	if err := app.bootstrap(ctx); err != nil {
		zlog.Fatal("failed to bootstrap application", zap.Error(err))
	}

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		zlog.Info("starting server", zap.String("port", cfg.App.Port))
		if err := app.http.Listen(cfg.App.Port); err != nil {
			zlog.Fatal("server failed to start", zap.Error(err))
		}
	}()

	<-quit
	zlog.Info("shutting down server")

	if err := app.http.ShutdownWithTimeout(shutdownTimeout); err != nil {
		zlog.Error("error during fiber shutdown", zap.Error(err))
	}
	if err := app.close(); err != nil {
		zlog.Error("error closing resources", zap.Error(err))
	}
	zlog.Info("server gracefully stopped")
}

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"order-console/internal/app"
	"order-console/internal/core/config"
	"order-console/internal/core/logger"

	"go.uber.org/zap"
)

// @title Order Console API
// @version 1.0
// @description Console over the order management API: orders, AI recommendations and the client session.
// @contact.name API Support
// @contact.email support@orderconsole.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
		zap.String("api_base_url", cfg.API.BaseURL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		l.Fatal("Failed to initialize application", zap.Error(err))
	}
	defer func() {
		if err := a.Close(); err != nil {
			l.Warn("Failed to close application", zap.Error(err))
		}
	}()

	srv := a.Server()

	go func() {
		<-ctx.Done()
		l.Info("Shutting down server")
		if err := srv.Shutdown(); err != nil {
			l.Error("Server shutdown failed", zap.Error(err))
		}
	}()

	if err := srv.Run(); err != nil {
		l.Error("Server failed", zap.Error(err))
	}
}

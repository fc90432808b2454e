// @title Safety Portal API
// @version 1.0
// @description API портала закупок продукции для безопасности дорожного движения: справочники, заказы, извлечение полей из PDF, напоминания об отгрузке.

// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"safetyportal/internal/config"
	"safetyportal/internal/container"
	"safetyportal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	level, err := server.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger := server.NewLogger(os.Stdout, level, cfg.LogFormat)
	slog.SetDefault(logger)

	if level > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("starting safety portal",
		"version", container.Version,
		"port", cfg.Port,
		"database", cfg.DatabasePath,
		"duplicate_threshold", cfg.DuplicateThreshold,
		"duplicate_check_strict", cfg.DuplicateCheckStrict,
	)

	c, err := container.NewContainer(cfg, logger)
	if err != nil {
		return err
	}
	if err := c.Initialize(); err != nil {
		return err
	}
	defer func() {
		if err := c.Shutdown(); err != nil {
			logger.Error("failed to shut down container", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.EnsureAdmin(ctx); err != nil {
		return err
	}

	c.StartWorkers(ctx)

	listener, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Addr(), err)
	}

	srv := server.New(server.Config{Addr: cfg.Addr()}, c.Router, logger)
	return srv.Run(ctx, listener)
}

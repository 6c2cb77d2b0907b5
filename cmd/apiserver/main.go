// API server entry point for the exoplanet inference service.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/app"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/config"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/infrastructure/monitoring/logging"
	httpserver "github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/interfaces/http"
)

func main() {
	configPath := flag.String("config", "", "path to YAML configuration file (empty: environment variables only)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		os.Exit(1)
	}
	logging.SetDefault(logger)

	ctx := context.Background()
	application, err := app.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to build application", logging.Err(err))
		os.Exit(1)
	}
	application.WarmUp(ctx)

	if *configPath != "" {
		config.Watch(*configPath, func(next *config.Config) {
			application.ApplyReloadable(next)
			logger.Info("configuration file reloaded; non-reloadable changes need a restart")
		})
	}

	server := httpserver.NewServer(cfg.Server, application.Handler, logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server failed", logging.Err(err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", logging.String("signal", sig.String()))
	}

	if err := server.Stop(ctx); err != nil {
		logger.Error("graceful shutdown failed", logging.Err(err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.LoadFromEnv()
	}
	return config.Load(path)
}

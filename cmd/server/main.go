package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/adapters/handler"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/adapters/repository"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/config"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/services"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/logger"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	// Initialize Repository
	store, err := repository.Open(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open store")
	}
	defer store.Close()

	// Initialize Services
	opts := []services.Option{
		services.WithCodeLength(cfg.ShortCodeLength),
		services.WithMaxAttempts(cfg.ShortCodeMaxAttempts),
	}
	links := services.NewLinkService(store, opts...)
	tracking := services.NewTrackingService(store, store, opts...)
	analytics := services.NewAnalyticsService(store, store, opts...)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.NewRouter(links, tracking, analytics),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("storage", cfg.StorageDriver).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Shutdown failed")
	}
	logger.Info().Msg("Server stopped")
}

package handler

import (
	"net/http"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/adapters/handler"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/adapters/repository"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/config"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/core/services"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/logger"
)

var mux http.Handler

func init() {
	cfg := config.Load()
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	// Note: On Vercel the memory store and a local db.sqlite are per-instance.
	// Use STORAGE_DRIVER=sqlite with a Turso URL in DATABASE_URL to persist.
	store, err := repository.Open(cfg)
	if err != nil {
		panic(err)
	}

	opts := []services.Option{
		services.WithCodeLength(cfg.ShortCodeLength),
		services.WithMaxAttempts(cfg.ShortCodeMaxAttempts),
	}
	mux = handler.NewRouter(
		services.NewLinkService(store, opts...),
		services.NewTrackingService(store, store, opts...),
		services.NewAnalyticsService(store, store, opts...),
	)
}

// Handler is the entrypoint for Vercel
func Handler(w http.ResponseWriter, r *http.Request) {
	mux.ServeHTTP(w, r)
}

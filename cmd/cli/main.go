package main

import (
	"os"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/adapters/repository"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/config"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/logger"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/ports"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.AppEnv, cfg.LogLevel)

	if cfg.StorageDriver == config.DriverMemory {
		logger.Warn().Msg("STORAGE_DRIVER is memory, nothing will persist across runs")
	}

	root := newRootCmd(cfg, func() (ports.Store, error) {
		return repository.Open(cfg)
	})
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

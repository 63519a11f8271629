package repository

import (
	"fmt"

	"github.com/wadjakorntonsri/go-click-tracker/pkg/adapters/repository/memory"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/config"
	"github.com/wadjakorntonsri/go-click-tracker/pkg/ports"
)

// Open returns the store selected by cfg.StorageDriver
func Open(cfg *config.Config) (ports.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory, "":
		return memory.NewRepository(), nil
	case config.DriverSQLite:
		repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

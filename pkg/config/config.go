package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

type Config struct {
	Port                 string
	AppEnv               string
	BaseURL              string
	LogLevel             string
	StorageDriver        string
	DatabaseURL          string
	ShortCodeLength      int
	ShortCodeMaxAttempts int
}

func Load() *Config {
	_ = godotenv.Load() // Ignore error if .env not found (e.g. prod)

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		AppEnv:               getEnv("APP_ENV", "local"),
		BaseURL:              getEnv("BASE_URL", "http://localhost:8080"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		StorageDriver:        getEnv("STORAGE_DRIVER", DriverMemory),
		DatabaseURL:          getEnv("DATABASE_URL", "file:db.sqlite"),
		ShortCodeLength:      getEnvInt("SHORT_CODE_LENGTH", 6),
		ShortCodeMaxAttempts: getEnvInt("SHORT_CODE_MAX_ATTEMPTS", 10),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

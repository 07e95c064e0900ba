package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	HTTPPort          string
	DatabaseURL       string
	AppMode           string
	LogLevel          string
	FiberPrefork      bool
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	WorkerBufferSize  int
	WorkerBatchSize   int
	WorkerFlushEvery  time.Duration
	FutureTolerance   time.Duration
}

// Load reads configuration from environment variables with sane defaults.
func Load() (*Config, error) {
	cfg := &Config{
		HTTPPort:          getEnv("HTTP_PORT", ":8080"),
		AppMode:           strings.ToLower(getEnv("APP_MODE", "dev")),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		FiberPrefork:      parseBoolEnv("FIBER_PREFORK", false),
		DBMaxOpenConns:    parseIntEnv("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns:    parseIntEnv("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: parseDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		WorkerBufferSize:  parseIntEnv("WORKER_BUFFER_SIZE", 10000),
		WorkerBatchSize:   parseIntEnv("WORKER_BATCH_SIZE", 1000),
		WorkerFlushEvery:  parseDurationEnv("WORKER_FLUSH_EVERY", 2*time.Second),
		FutureTolerance:   parseDurationEnv("FUTURE_TOLERANCE", 5*time.Minute),
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseBoolEnv(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseIntEnv(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func parseDurationEnv(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}

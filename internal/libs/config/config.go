// Package config provides application configuration management from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	InspectHost string
	InspectPort string
	LogLevel    string
	RunHistory  int // retained entries in the inspect run log
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		InspectHost: getEnv("INSPECT_HOST", "0.0.0.0"),
		InspectPort: getEnv("INSPECT_PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	history := getEnv("RUN_HISTORY", "64")
	n, err := strconv.Atoi(history)
	if err != nil || n <= 0 {
		return nil, fmt.Errorf("invalid RUN_HISTORY %q", history)
	}
	cfg.RunHistory = n

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

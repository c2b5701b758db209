package config

import (
	"fmt"
	"os"
	"strconv"
)

// ServerConfig holds runtime configuration for the HTTP server and its
// backing stores.
type ServerConfig struct {
	Port                 int
	DatabaseURL          string
	RedisURL             string // optional; empty disables the recommendation cache
	SweepIntervalMinutes int    // how often expired postings are deactivated
}

// NewServerConfig reads server configuration from environment variables.
// DATABASE_URL is required; REDIS_URL is optional.
func NewServerConfig() (*ServerConfig, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required but not set")
	}

	port := 8080
	if s := os.Getenv("PORT"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 || v > 65535 {
			return nil, fmt.Errorf("invalid PORT: %q", s)
		}
		port = v
	}

	sweep := 30
	if s := os.Getenv("SWEEP_INTERVAL_MINUTES"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("SWEEP_INTERVAL_MINUTES must be a positive integer, got %q", s)
		}
		sweep = v
	}

	return &ServerConfig{
		Port:                 port,
		DatabaseURL:          databaseURL,
		RedisURL:             os.Getenv("REDIS_URL"),
		SweepIntervalMinutes: sweep,
	}, nil
}

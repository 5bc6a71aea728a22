package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	APIKey      string
	APIBaseURL  string
	BulkBaseURL string
	HTTPTimeout time.Duration
}

// Load reads environment variables into a Config with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		APIKey:      strings.TrimSpace(os.Getenv("ZEROBOUNCE_API_KEY")),
		APIBaseURL:  strings.TrimSpace(os.Getenv("ZEROBOUNCE_API_URL")),
		BulkBaseURL: strings.TrimSpace(os.Getenv("ZEROBOUNCE_BULK_API_URL")),
	}

	seconds, err := parseIntEnv("HTTP_TIMEOUT_SECONDS", 60)
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_TIMEOUT_SECONDS: %w", err)
	}
	cfg.HTTPTimeout = time.Duration(seconds) * time.Second

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("ZEROBOUNCE_API_KEY is required")
	}
	if c.HTTPTimeout <= 0 {
		return errors.New("HTTP_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

func parseIntEnv(key string, defaultVal int) (int, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

// Package common provides shared utilities for RiskSheet
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for RiskSheet
type Config struct {
	Environment string        `toml:"environment"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Clients     ClientsConfig `toml:"clients"`
	Market      MarketConfig  `toml:"market"`
	Logging     LoggingConfig `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig selects the persistence backend and its location.
// Exactly one backend is active at a time.
type StorageConfig struct {
	Backend string `toml:"backend"` // "badger" (default) or "memory"
	Path    string `toml:"path"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Yahoo YahooConfig `toml:"yahoo"`
}

// YahooConfig holds Yahoo Finance API configuration
type YahooConfig struct {
	BaseURL   string `toml:"base_url"`
	RateLimit int    `toml:"rate_limit"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// MarketConfig holds risk model parameters.
type MarketConfig struct {
	ProxyTicker  string  `toml:"proxy_ticker"`   // benchmark for beta and CAPM, default "SPY"
	RiskFreeRate float64 `toml:"risk_free_rate"` // annualized, default 0.0488
	Workers      int     `toml:"workers"`        // evaluation worker pool size
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Backend: "badger",
			Path:    "data/risksheet",
		},
		Clients: ClientsConfig{
			Yahoo: YahooConfig{
				BaseURL:   "https://query1.finance.yahoo.com",
				RateLimit: 5,
				Timeout:   "30s",
			},
		},
		Market: MarketConfig{
			ProxyTicker:  "SPY",
			RiskFreeRate: 0.0488,
			Workers:      4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Apply environment overrides
	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("RISKSHEET_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("RISKSHEET_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("RISKSHEET_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("RISKSHEET_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if backend := os.Getenv("RISKSHEET_STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = backend
	}

	if path := os.Getenv("RISKSHEET_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if proxy := os.Getenv("RISKSHEET_MARKET_PROXY"); proxy != "" {
		config.Market.ProxyTicker = strings.ToUpper(proxy)
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

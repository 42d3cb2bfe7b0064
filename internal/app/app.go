// Package app wires configuration, storage, clients, and services into
// one application core shared by entrypoints.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/NawraaSayed/RiskSheet/internal/clients/yahoo"
	"github.com/NawraaSayed/RiskSheet/internal/common"
	"github.com/NawraaSayed/RiskSheet/internal/interfaces"
	"github.com/NawraaSayed/RiskSheet/internal/risk"
	"github.com/NawraaSayed/RiskSheet/internal/storage"
)

// App holds all initialized services, clients, and storage.
type App struct {
	Config      *common.Config
	Logger      *common.Logger
	Storage     interfaces.StorageManager
	MarketData  interfaces.MarketDataProvider
	Evaluator   interfaces.EvaluationService
	StartupTime time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, storage, the market data
// client, and the evaluation service. configPath may be empty, in which
// case RISKSHEET_CONFIG, then the binary directory, then a development
// fallback are tried.
func NewApp(configPath string) (*App, error) {
	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("RISKSHEET_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "risksheet.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/risksheet.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Resolve relative storage path to binary directory
	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	marketData := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
		yahoo.WithLogger(logger),
	)

	evaluator := risk.NewEvaluator(marketData, logger,
		risk.WithProxyTicker(config.Market.ProxyTicker),
		risk.WithRiskFreeRate(config.Market.RiskFreeRate),
		risk.WithWorkers(config.Market.Workers),
	)

	logger.Info().
		Str("environment", config.Environment).
		Str("storage", config.Storage.Backend).
		Str("proxy", config.Market.ProxyTicker).
		Msg("Application initialized")

	return &App{
		Config:      config,
		Logger:      logger,
		Storage:     storageManager,
		MarketData:  marketData,
		Evaluator:   evaluator,
		StartupTime: time.Now(),
	}, nil
}

// Close releases application resources.
func (a *App) Close() {
	if a.Storage != nil {
		if err := a.Storage.Close(); err != nil {
			a.Logger.Error().Err(err).Msg("Storage close failed")
		}
	}
}

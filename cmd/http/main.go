package main

import (
	"context"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"tradesim/config"
	coingeckoadapter "tradesim/internal/adapters/coingecko"
	coinloreadapter "tradesim/internal/adapters/coinlore"
	"tradesim/internal/adapters/ethwallet"
	httpserver "tradesim/internal/adapters/http/server"
	loggeradapter "tradesim/internal/adapters/logger"
	"tradesim/internal/adapters/prefs"
	"tradesim/internal/application/feed"
	"tradesim/internal/application/ratelimiter"
	"tradesim/internal/application/selector"
	"tradesim/internal/application/swap"
	walletservice "tradesim/internal/application/wallet"
	domainPrice "tradesim/internal/domain/price"
	"tradesim/internal/domain/token"
	domainWallet "tradesim/internal/domain/wallet"
)

func main() {
	// A missing .env is fine; the environment still applies
	_ = godotenv.Load()

	cfg := config.Load()

	if err := validateConfig(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}

	isDevelopment := cfg.App.Environment == "development"
	logger, err := loggeradapter.NewLogger(isDevelopment)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("Starting application",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", "1.0.0"),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Preferences storage
	if err := initializeStorage(cfg, logger); err != nil {
		logger.Fatal("Failed to initialize storage", zap.Error(err))
	}
	store, err := prefs.NewSQLiteStore(cfg.Storage.Path)
	if err != nil {
		logger.Fatal("Failed to open preferences store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Failed to close preferences store", zap.Error(err))
		}
	}()

	// Price feed
	httpClient := &http.Client{Timeout: cfg.Feed.RequestTimeout}
	primary, fallback := initializeProviders(cfg, httpClient, logger)

	limiter := ratelimiter.NewRateLimiter(cfg.Feed.RateLimitCalls, cfg.Feed.RateLimitWindow, nil)
	feed.NewLimiterGauge(registry, limiter.Remaining)

	feedService, err := feed.NewService(feed.Options{
		Seed:            token.Seed(),
		Primary:         primary,
		Fallback:        fallback,
		Limiter:         limiter,
		Metrics:         feed.NewMetrics(registry),
		Logger:          logger,
		RefreshInterval: cfg.Feed.RefreshInterval,
		DedupeInterval:  cfg.Feed.DedupeInterval,
		RetryCount:      cfg.Feed.RetryCount,
		RetryInterval:   cfg.Feed.RetryInterval,
		RequestTimeout:  cfg.Feed.RequestTimeout,
	})
	if err != nil {
		logger.Fatal("Failed to create price feed", zap.Error(err))
	}

	// Wallet session
	var connector domainWallet.Connector
	if ethConnector := initializeConnector(ctx, cfg, logger); ethConnector != nil {
		connector = ethConnector
		defer ethConnector.Close()
	}
	wallet := walletservice.NewService(connector, store, big.NewInt(cfg.Wallet.ChainID), logger)
	if address, err := wallet.Restore(ctx); err != nil {
		logger.Warn("Failed to restore wallet session", zap.Error(err))
	} else if address != "" {
		logger.Info("Wallet session restored", zap.String("address", domainWallet.ShortAddress(address)))
	}

	// Swap widget and token selector
	controller, err := swap.NewController(feedService.Catalog(), wallet, swap.Options{
		CycleCooldown:   cfg.Swap.CycleCooldown,
		SuccessDuration: cfg.Swap.SuccessDuration,
		WheelThreshold:  cfg.Swap.WheelThreshold,
		Logger:          logger,
	})
	if err != nil {
		logger.Fatal("Failed to create swap controller", zap.Error(err))
	}
	defer controller.Dispose()

	subscription := feedService.Subscribe(func(snap feed.Snapshot) {
		if err := controller.ApplyCatalog(snap.Catalog); err != nil {
			logger.Warn("Failed to apply catalog update", zap.Error(err))
		}
	})
	defer subscription.Dispose()

	dialog := selector.NewDialog(controller, controller, selector.NewFavorites(), logger)

	if err := feedService.Start(ctx); err != nil {
		logger.Fatal("Failed to start price feed", zap.Error(err))
	}
	defer feedService.Stop()

	handlerAdapter := httpserver.NewHandlerAdapter(
		feedService,
		controller,
		dialog,
		wallet,
		store,
		logger,
	)

	serverConfig := httpserver.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}

	server := httpserver.NewServer(serverConfig, handlerAdapter, registry, logger)

	logger.Info("Server configured",
		zap.String("host", cfg.Server.Host),
		zap.String("port", cfg.Server.Port),
		zap.String("feed_provider", primary.Name()),
		zap.Bool("feed_fallback", fallback != nil),
		zap.Bool("wallet_provider", connector != nil),
	)

	if err := server.StartWithGracefulShutdown(ctx); err != nil {
		logger.Error("Server failed", zap.Error(err))
	}

	logger.Info("Application stopped gracefully")
}

// validateConfig validates the configuration
func validateConfig(cfg *config.Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	if cfg.Storage.Path == "" {
		return fmt.Errorf("storage path is required")
	}

	if cfg.Feed.Provider != "coingecko" && cfg.Feed.Provider != "coinlore" {
		return fmt.Errorf("invalid feed provider: %s (must be 'coingecko' or 'coinlore')", cfg.Feed.Provider)
	}

	if cfg.Feed.RateLimitCalls <= 0 || cfg.Feed.RateLimitWindow <= 0 {
		return fmt.Errorf("feed rate limit must be positive")
	}

	if cfg.Wallet.ChainID <= 0 {
		return fmt.Errorf("invalid wallet chain id: %d", cfg.Wallet.ChainID)
	}

	return nil
}

// initializeStorage ensures the database directory exists
func initializeStorage(cfg *config.Config, logger *loggeradapter.Logger) error {
	dataDir := filepath.Dir(cfg.Storage.Path)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	logger.Info("Storage directory ready", zap.String("path", dataDir))
	return nil
}

// initializeProviders picks the configured quote source and, when enabled, the other
// one as fallback.
func initializeProviders(cfg *config.Config, httpClient *http.Client, logger *loggeradapter.Logger) (domainPrice.Provider, domainPrice.Provider) {
	if cfg.Feed.CoinGeckoAPIKey == "" {
		logger.Warn("CoinGecko API key not set, using the public rate limit")
	}

	coingeckoClient := coingeckoadapter.NewClient(httpClient, cfg.Feed.CoinGeckoBaseURL, cfg.Feed.CoinGeckoAPIKey)
	coingecko := coingeckoadapter.NewMarketsProvider(coingeckoClient, cfg.Feed.Limit)
	coinlore := coinloreadapter.NewProvider(httpClient, cfg.Feed.CoinLoreBaseURL, cfg.Feed.Limit)

	var primary, fallback domainPrice.Provider = coingecko, coinlore
	if cfg.Feed.Provider == "coinlore" {
		primary, fallback = coinlore, coingecko
	}

	if !cfg.Feed.FallbackEnabled {
		logger.Info("Price fallback disabled")
		return primary, nil
	}

	logger.Info("Price fallback enabled", zap.String("provider", fallback.Name()))
	return primary, fallback
}

// initializeConnector dials the wallet RPC endpoint. Without one the wallet provider
// is reported as missing.
func initializeConnector(ctx context.Context, cfg *config.Config, logger *loggeradapter.Logger) *ethwallet.Connector {
	if cfg.Wallet.RPCURL == "" {
		logger.Warn("Wallet RPC URL not set, wallet connection is unavailable")
		return nil
	}

	connector, err := ethwallet.Dial(ctx, cfg.Wallet.RPCURL)
	if err != nil {
		logger.Warn("Failed to dial wallet RPC endpoint", zap.Error(err))
		return nil
	}

	logger.Info("Wallet provider ready", zap.String("rpc_url", cfg.Wallet.RPCURL))
	return connector
}

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tradesim/config"
	"tradesim/internal/adapters/coingecko"
	"tradesim/internal/adapters/coinlore"
	loggeradapter "tradesim/internal/adapters/logger"
	"tradesim/internal/application/feed"
	"tradesim/internal/domain/token"
	httpports "tradesim/internal/ports/http"
)

// catalogFile is the on-disk snapshot format.
type catalogFile struct {
	Source      string            `json:"source"`
	GeneratedAt time.Time         `json:"generated_at"`
	Error       string            `json:"error,omitempty"`
	Tokens      []httpports.Token `json:"tokens"`
}

func main() {
	output := flag.String("out", "./static/catalog.json", "path of the catalog snapshot")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: .env file not found: %v\n", err)
	}
	cfg := config.Load()

	logger, err := loggeradapter.NewLogger(true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	httpClient := &http.Client{Timeout: 30 * time.Second}
	gecko := coingecko.NewMarketsProvider(
		coingecko.NewClient(httpClient, cfg.Feed.CoinGeckoBaseURL, cfg.Feed.CoinGeckoAPIKey),
		cfg.Feed.Limit,
	)
	lore := coinlore.NewProvider(httpClient, cfg.Feed.CoinLoreBaseURL, cfg.Feed.Limit)

	service, err := feed.NewService(feed.Options{
		Seed:           token.Seed(),
		Primary:        gecko,
		Fallback:       lore,
		Logger:         logger,
		RetryCount:     cfg.Feed.RetryCount,
		RetryInterval:  cfg.Feed.RetryInterval,
		RequestTimeout: cfg.Feed.RequestTimeout,
	})
	if err != nil {
		logger.Fatal("Failed to create price feed", zap.Error(err))
	}
	defer service.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	logger.Info("Fetching quotes")
	snap, err := service.Fetch(ctx)
	if err != nil {
		logger.Warn("Price feed unavailable, writing seed prices", zap.Error(err))
	}

	file := catalogFile{
		Source:      snap.Source,
		GeneratedAt: time.Now().UTC(),
		Tokens:      httpports.ToHTTPTokens(snap.Catalog),
	}
	if snap.Err != nil {
		file.Error = snap.Err.Error()
	}

	if err := writeJSON(*output, file); err != nil {
		logger.Fatal("Failed to write catalog", zap.Error(err))
	}

	logger.Info("Catalog written",
		zap.String("path", *output),
		zap.Int("tokens", len(file.Tokens)),
		zap.String("source", file.Source),
	)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return nil
}

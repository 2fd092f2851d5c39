package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	App     AppConfig
	Server  ServerConfig
	Feed    FeedConfig
	Swap    SwapConfig
	Wallet  WalletConfig
	Storage StorageConfig
}

type AppConfig struct {
	Environment string // "development" or "production"
}

type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type FeedConfig struct {
	Provider         string // "coingecko" or "coinlore"
	CoinGeckoBaseURL string
	CoinGeckoAPIKey  string
	CoinLoreBaseURL  string
	FallbackEnabled  bool
	Limit            int
	RefreshInterval  time.Duration
	DedupeInterval   time.Duration
	RequestTimeout   time.Duration
	RetryCount       int
	RetryInterval    time.Duration
	RateLimitCalls   int
	RateLimitWindow  time.Duration
}

type SwapConfig struct {
	CycleCooldown   time.Duration
	SuccessDuration time.Duration
	WheelThreshold  float64
}

type WalletConfig struct {
	RPCURL  string // empty leaves the wallet provider missing
	ChainID int64
}

type StorageConfig struct {
	Path string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "127.0.0.1"),
			Port:            getEnv("SERVER_PORT", "8080"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			IdleTimeout:     getDurationEnv("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Feed: FeedConfig{
			Provider:         getEnv("FEED_PROVIDER", "coingecko"),
			CoinGeckoBaseURL: getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3"),
			CoinGeckoAPIKey:  getEnv("COINGECKO_API_KEY", ""),
			CoinLoreBaseURL:  getEnv("COINLORE_BASE_URL", "https://api.coinlore.net/api"),
			FallbackEnabled:  getBoolEnv("FEED_FALLBACK_ENABLED", true),
			Limit:            getIntEnv("FEED_LIMIT", 100),
			RefreshInterval:  getDurationEnv("FEED_REFRESH_INTERVAL", 30*time.Second),
			DedupeInterval:   getDurationEnv("FEED_DEDUPE_INTERVAL", 15*time.Second),
			RequestTimeout:   getDurationEnv("FEED_REQUEST_TIMEOUT", 10*time.Second),
			RetryCount:       getIntEnv("FEED_RETRY_COUNT", 3),
			RetryInterval:    getDurationEnv("FEED_RETRY_INTERVAL", 5*time.Second),
			RateLimitCalls:   getIntEnv("FEED_RATE_LIMIT_CALLS", 10),
			RateLimitWindow:  getDurationEnv("FEED_RATE_LIMIT_WINDOW", time.Minute),
		},
		Swap: SwapConfig{
			CycleCooldown:   getDurationEnv("SWAP_CYCLE_COOLDOWN", 150*time.Millisecond),
			SuccessDuration: getDurationEnv("SWAP_SUCCESS_DURATION", 2*time.Second),
			WheelThreshold:  getFloatEnv("SWAP_WHEEL_THRESHOLD", 10),
		},
		Wallet: WalletConfig{
			RPCURL:  getEnv("WALLET_RPC_URL", ""),
			ChainID: int64(getIntEnv("WALLET_CHAIN_ID", 1)),
		},
		Storage: StorageConfig{
			Path: getEnv("STORAGE_PATH", "./data/tradesim.db"),
		},
	}
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

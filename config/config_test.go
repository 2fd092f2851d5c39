package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != "8080" || cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server = %s:%s", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Feed.RefreshInterval != 30*time.Second || cfg.Feed.DedupeInterval != 15*time.Second {
		t.Errorf("feed intervals = %v / %v", cfg.Feed.RefreshInterval, cfg.Feed.DedupeInterval)
	}
	if cfg.Swap.CycleCooldown != 150*time.Millisecond || cfg.Swap.SuccessDuration != 2*time.Second {
		t.Errorf("swap timings = %v / %v", cfg.Swap.CycleCooldown, cfg.Swap.SuccessDuration)
	}
	if cfg.Wallet.ChainID != 1 {
		t.Errorf("chain id = %d", cfg.Wallet.ChainID)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("FEED_PROVIDER", "coinlore")
	t.Setenv("FEED_RETRY_COUNT", "5")
	t.Setenv("FEED_FALLBACK_ENABLED", "false")
	t.Setenv("SWAP_CYCLE_COOLDOWN", "300ms")
	t.Setenv("SWAP_WHEEL_THRESHOLD", "25.5")
	t.Setenv("WALLET_CHAIN_ID", "11155111")

	cfg := Load()

	if cfg.Server.Port != "9090" {
		t.Errorf("port = %s", cfg.Server.Port)
	}
	if cfg.Feed.Provider != "coinlore" || cfg.Feed.RetryCount != 5 || cfg.Feed.FallbackEnabled {
		t.Errorf("feed = %+v", cfg.Feed)
	}
	if cfg.Swap.CycleCooldown != 300*time.Millisecond || cfg.Swap.WheelThreshold != 25.5 {
		t.Errorf("swap = %+v", cfg.Swap)
	}
	if cfg.Wallet.ChainID != 11155111 {
		t.Errorf("chain id = %d", cfg.Wallet.ChainID)
	}
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("FEED_LIMIT", "many")
	t.Setenv("FEED_REQUEST_TIMEOUT", "soon")
	t.Setenv("FEED_FALLBACK_ENABLED", "perhaps")

	cfg := Load()

	if cfg.Feed.Limit != 100 || cfg.Feed.RequestTimeout != 10*time.Second || !cfg.Feed.FallbackEnabled {
		t.Errorf("feed = %+v", cfg.Feed)
	}
}

package domain

import (
	"context"

	"tradesim/internal/domain/wallet"
)

type RateLimiterService interface {
	Allow(ctx context.Context) error
}

type Cache[K comparable, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V)
	Delete(ctx context.Context, key K)
}

// PreferencesStore persists local UI state: the onboarding flag and the wallet session.
type PreferencesStore interface {
	wallet.SessionStore
	HasSeenOnboarding(ctx context.Context) (bool, error)
	SetSeenOnboarding(ctx context.Context, seen bool) error
}

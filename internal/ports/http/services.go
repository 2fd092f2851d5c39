package http

import (
	"context"
	"math/big"

	"tradesim/internal/application/feed"
	"tradesim/internal/application/selector"
	"tradesim/internal/application/swap"
	"tradesim/internal/domain/catalog"
	"tradesim/internal/domain/token"
)

type FeedService interface {
	Snapshot() feed.Snapshot
	Refresh(ctx context.Context) (feed.Snapshot, error)
}

type SwapController interface {
	View() swap.View
	Catalog() catalog.Catalog
	SetAmount(text string) error
	Select(side swap.Side, id string) error
	Cycle(side swap.Side, dir int) (bool, error)
	Wheel(side swap.Side, deltaY float64) (bool, error)
	Swipe(side swap.Side, dir swap.SwipeDirection) (bool, error)
	Preview(side swap.Side) (swap.Preview, error)
	Confirm() (swap.Receipt, error)
}

type SelectorDialog interface {
	Open(side swap.Side) error
	Close()
	SetQuery(query string)
	SetCategory(category selector.Category) error
	State() selector.State
	Results(ctx context.Context) []token.Token
	ToggleFavorite(ctx context.Context, id string) (bool, error)
	Select(id string) error
	Favorites() *selector.Favorites
}

type WalletService interface {
	Connect(ctx context.Context) (string, error)
	Disconnect(ctx context.Context) error
	IsConnected() bool
	Address() string
	ChainID() *big.Int
}

type OnboardingStore interface {
	HasSeenOnboarding(ctx context.Context) (bool, error)
	SetSeenOnboarding(ctx context.Context, seen bool) error
}

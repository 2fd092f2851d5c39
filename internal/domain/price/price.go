package price

import (
	"context"
	"errors"
	"math"
)

// ErrFeedUnavailable marks a failed refresh. Callers keep working on stale or seed data.
var ErrFeedUnavailable = errors.New("price feed unavailable")

// Quote is one external market record for a single symbol, priced in USD.
type Quote struct {
	Symbol    string
	PriceUSD  float64
	Change24h float64
	Volume24h float64
}

// Provider fetches the latest market quotes from one upstream source.
type Provider interface {
	Name() string
	GetQuotes(ctx context.Context) ([]Quote, error)
}

// Finite reports whether v is a usable number, i.e. neither NaN nor an infinity.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FiniteOrZero maps NaN and infinities to zero.
func FiniteOrZero(v float64) float64 {
	if !Finite(v) {
		return 0
	}
	return v
}

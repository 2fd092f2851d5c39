package coingecko

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"tradesim/internal/domain/price"
)

// MarketRecord is one row of /coins/markets. Fields the feed does not use are omitted;
// nullable numbers are pointers so a missing value can be told apart from zero.
type MarketRecord struct {
	ID                       string   `json:"id"`
	Symbol                   string   `json:"symbol"`
	Name                     string   `json:"name"`
	CurrentPrice             *float64 `json:"current_price"`
	PriceChangePercentage24h *float64 `json:"price_change_percentage_24h"`
	TotalVolume              *float64 `json:"total_volume"`
}

// MarketsProvider implements price.Provider on top of the /coins/markets endpoint.
type MarketsProvider struct {
	client  *Client
	perPage int
}

func NewMarketsProvider(client *Client, perPage int) *MarketsProvider {
	if perPage <= 0 || perPage > 250 {
		perPage = 100
	}
	return &MarketsProvider{client: client, perPage: perPage}
}

func (p *MarketsProvider) Name() string { return "coingecko" }

func (p *MarketsProvider) GetQuotes(ctx context.Context) ([]price.Quote, error) {
	query := url.Values{}
	query.Set("vs_currency", "usd")
	query.Set("order", "market_cap_desc")
	query.Set("per_page", strconv.Itoa(p.perPage))
	query.Set("page", "1")
	query.Set("sparkline", "false")
	query.Set("price_change_percentage", "24h")

	var records []MarketRecord
	if err := p.client.Get(ctx, "coins/markets", query, &records); err != nil {
		return nil, fmt.Errorf("failed to fetch markets: %w", err)
	}

	return ToQuotes(records), nil
}

// ToQuotes keeps records that carry a symbol and a usable price.
func ToQuotes(records []MarketRecord) []price.Quote {
	quotes := make([]price.Quote, 0, len(records))
	for _, r := range records {
		symbol := strings.TrimSpace(r.Symbol)
		if symbol == "" || r.CurrentPrice == nil || !price.Finite(*r.CurrentPrice) || *r.CurrentPrice < 0 {
			continue
		}
		quotes = append(quotes, price.Quote{
			Symbol:    strings.ToUpper(symbol),
			PriceUSD:  *r.CurrentPrice,
			Change24h: valueOrZero(r.PriceChangePercentage24h),
			Volume24h: valueOrZero(r.TotalVolume),
		})
	}
	return quotes
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return price.FiniteOrZero(*v)
}

package coinlore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"tradesim/internal/domain/price"
)

const DefaultBaseURL = "https://api.coinlore.net/api"

// number accepts both "12.5" and 12.5. CoinLore quotes most numeric fields as strings.
// Anything that does not parse, null included, decodes as NaN and counts as missing.
type number float64

func (n *number) UnmarshalJSON(data []byte) error {
	v, err := strconv.ParseFloat(string(bytes.Trim(data, `"`)), 64)
	if err != nil {
		v = math.NaN()
	}
	*n = number(v)
	return nil
}

type Ticker struct {
	ID               string  `json:"id"`
	Symbol           string  `json:"symbol"`
	Name             string  `json:"name"`
	PriceUSD         *number `json:"price_usd"`
	PercentChange24h number  `json:"percent_change_24h"`
	Volume24         number  `json:"volume24"`
}

type tickersResponse struct {
	Data []Ticker `json:"data"`
}

// Provider is the fallback price.Provider backed by the CoinLore tickers endpoint.
type Provider struct {
	client  *http.Client
	baseURL string
	limit   int
}

func NewProvider(client *http.Client, baseURL string, limit int) *Provider {
	if client == nil {
		client = http.DefaultClient
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if limit <= 0 {
		limit = 100
	}
	return &Provider{client: client, baseURL: strings.TrimRight(baseURL, "/"), limit: limit}
}

func (p *Provider) Name() string { return "coinlore" }

func (p *Provider) GetQuotes(ctx context.Context) ([]price.Quote, error) {
	url := fmt.Sprintf("%s/tickers/?start=0&limit=%d", p.baseURL, p.limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tickers: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("CoinLore API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var payload tickersResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return toQuotes(payload.Data), nil
}

// toQuotes keeps tickers that carry a symbol and a usable price. Unusable change and
// volume figures become zero.
func toQuotes(tickers []Ticker) []price.Quote {
	quotes := make([]price.Quote, 0, len(tickers))
	for _, t := range tickers {
		symbol := strings.TrimSpace(t.Symbol)
		if symbol == "" || t.PriceUSD == nil {
			continue
		}
		usd := float64(*t.PriceUSD)
		if !price.Finite(usd) || usd < 0 {
			continue
		}
		quotes = append(quotes, price.Quote{
			Symbol:    strings.ToUpper(symbol),
			PriceUSD:  usd,
			Change24h: price.FiniteOrZero(float64(t.PercentChange24h)),
			Volume24h: price.FiniteOrZero(float64(t.Volume24)),
		})
	}
	return quotes
}

package coingecko

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tradesim/internal/domain/price"
)

const marketsBody = `[
  {"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":64123.5,"price_change_percentage_24h":-1.25,"total_volume":31000000000},
  {"id":"ethereum","symbol":"eth","name":"Ethereum","current_price":3012.1,"price_change_percentage_24h":null,"total_volume":null},
  {"id":"mystery","symbol":"","name":"No Symbol","current_price":1},
  {"id":"broken","symbol":"brk","name":"No Price","current_price":null},
  {"id":"tether","symbol":"usdt","name":"Tether","current_price":1.0002,"price_change_percentage_24h":0.01,"total_volume":52000000000,"market_cap":1}
]`

func TestMarketsProvider_GetQuotes(t *testing.T) {
	var gotPath, gotQuery, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotKey = r.Header.Get("x-cg-demo-api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(marketsBody))
	}))
	defer srv.Close()

	p := NewMarketsProvider(NewClient(srv.Client(), srv.URL+"/api/v3/", "demo-key"), 0)
	quotes, err := p.GetQuotes(context.Background())
	if err != nil {
		t.Fatalf("GetQuotes() error = %v", err)
	}

	if gotPath != "/api/v3/coins/markets" {
		t.Errorf("request path = %q", gotPath)
	}
	for _, part := range []string{"vs_currency=usd", "per_page=100", "price_change_percentage=24h", "order=market_cap_desc"} {
		if !strings.Contains(gotQuery, part) {
			t.Errorf("request query %q missing %q", gotQuery, part)
		}
	}
	if gotKey != "demo-key" {
		t.Errorf("api key header = %q, want demo-key", gotKey)
	}

	want := []price.Quote{
		{Symbol: "BTC", PriceUSD: 64123.5, Change24h: -1.25, Volume24h: 31000000000},
		{Symbol: "ETH", PriceUSD: 3012.1},
		{Symbol: "USDT", PriceUSD: 1.0002, Change24h: 0.01, Volume24h: 52000000000},
	}
	if len(quotes) != len(want) {
		t.Fatalf("GetQuotes() returned %d quotes, want %d: %+v", len(quotes), len(want), quotes)
	}
	for i := range want {
		if quotes[i] != want[i] {
			t.Errorf("GetQuotes()[%d] = %+v, want %+v", i, quotes[i], want[i])
		}
	}
}

func TestMarketsProvider_GetQuotes_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "rate limited", status: http.StatusTooManyRequests, body: `{"status":{"error_code":429}}`, wantErr: "status 429"},
		{name: "malformed body", status: http.StatusOK, body: `{"not":"an array"}`, wantErr: "failed to decode response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			p := NewMarketsProvider(NewClient(srv.Client(), srv.URL, ""), 50)
			_, err := p.GetQuotes(context.Background())
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("GetQuotes() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestClient_OmitsEmptyAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := r.Header["X-Cg-Demo-Api-Key"]; ok {
			t.Error("api key header sent without a key")
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	var out []MarketRecord
	if err := NewClient(srv.Client(), srv.URL, "").Get(context.Background(), "coins/markets", nil, &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
}

func TestToQuotes_DropsNonFinitePrices(t *testing.T) {
	f := func(v float64) *float64 { return &v }

	quotes := ToQuotes([]MarketRecord{
		{Symbol: "btc", CurrentPrice: f(math.NaN())},
		{Symbol: "eth", CurrentPrice: f(math.Inf(1))},
		{Symbol: "sol", CurrentPrice: f(150), PriceChangePercentage24h: f(math.NaN()), TotalVolume: f(math.Inf(-1))},
	})

	want := []price.Quote{{Symbol: "SOL", PriceUSD: 150}}
	if len(quotes) != len(want) || quotes[0] != want[0] {
		t.Errorf("ToQuotes() = %+v, want %+v", quotes, want)
	}
}

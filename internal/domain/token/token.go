package token

import (
	"slices"
	"strings"
)

// NumeraireSymbol is the symbol of the unit token. Its price is pinned to 1.
const NumeraireSymbol = "USD"

type Category string

const (
	CategoryStable   Category = "stable"
	CategoryTrending Category = "trending"
	CategoryHot      Category = "hot"
)

// Token is an immutable value record. Refreshes replace tokens, they never mutate them.
type Token struct {
	ID         string
	Symbol     string
	Name       string
	Icon       string
	PriceUSD   float64
	Change24h  float64
	Volume24h  float64
	Categories []Category
}

func (t Token) HasCategory(c Category) bool {
	return slices.Contains(t.Categories, c)
}

func (t Token) IsNumeraire() bool {
	return strings.EqualFold(t.Symbol, NumeraireSymbol)
}

// Clone returns a copy that does not share the category slice.
func (t Token) Clone() Token {
	t.Categories = slices.Clone(t.Categories)
	return t
}

var fiatIcons = map[string]string{
	"USD": "mdi:currency-usd",
	"EUR": "mdi:currency-eur",
	"GBP": "mdi:currency-gbp",
	"JPY": "mdi:currency-jpy",
	"CNY": "mdi:currency-cny",
	"AUD": "mdi:currency-aud",
	"CAD": "mdi:currency-cad",
	"CHF": "mdi:currency-chf",
	"TRY": "mdi:currency-try",
	"IRR": "mdi:cash",
}

var cryptoIcons = map[string]string{
	"BTC":   "cryptocurrency-color:btc",
	"ETH":   "cryptocurrency-color:eth",
	"SOL":   "cryptocurrency-color:sol",
	"USDT":  "cryptocurrency-color:usdt",
	"USDC":  "cryptocurrency-color:usdc",
	"BNB":   "cryptocurrency-color:bnb",
	"XRP":   "cryptocurrency-color:xrp",
	"ADA":   "cryptocurrency-color:ada",
	"DOGE":  "cryptocurrency-color:doge",
	"TRX":   "cryptocurrency-color:trx",
	"TON":   "cryptocurrency-color:ton",
	"DOT":   "cryptocurrency-color:dot",
	"AVAX":  "cryptocurrency-color:avax",
	"SHIB":  "cryptocurrency-color:shib",
	"MATIC": "cryptocurrency-color:matic",
	"DAI":   "cryptocurrency-color:dai",
	"TUSD":  "cryptocurrency-color:tusd",
	"BUSD":  "cryptocurrency-color:busd",
}

// IconName resolves the icon reference a front end should render for the token.
// An explicit "set:name" icon wins; remote URLs are ignored.
func (t Token) IconName() string {
	if strings.Contains(t.Icon, ":") && !strings.HasPrefix(t.Icon, "http") {
		return t.Icon
	}

	sym := strings.ToUpper(t.Symbol)
	if icon, ok := fiatIcons[sym]; ok {
		return icon
	}
	if icon, ok := cryptoIcons[sym]; ok {
		return icon
	}
	if sym != "" {
		return "cryptocurrency-color:" + strings.ToLower(sym)
	}
	return "mdi:currency-sign"
}

// Seed returns a fresh copy of the built-in token list. Its order is the catalog order.
func Seed() []Token {
	return []Token{
		{ID: "usd", Symbol: "USD", Name: "US Dollar", Icon: "mdi:currency-usd", PriceUSD: 1, Categories: []Category{CategoryStable}},
		{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin", Icon: "cryptocurrency-color:btc", PriceUSD: 60000, Change24h: 2.5, Volume24h: 28000000000, Categories: []Category{CategoryTrending, CategoryHot}},
		{ID: "ethereum", Symbol: "ETH", Name: "Ethereum", Icon: "cryptocurrency-color:eth", PriceUSD: 3500, Change24h: 1.8, Volume24h: 18000000000, Categories: []Category{CategoryTrending, CategoryHot}},
		{ID: "tether", Symbol: "USDT", Name: "Tether", Icon: "cryptocurrency-color:usdt", PriceUSD: 1, Change24h: 0.1, Volume24h: 50000000000, Categories: []Category{CategoryStable}},
		{ID: "usd-coin", Symbol: "USDC", Name: "USD Coin", Icon: "cryptocurrency-color:usdc", PriceUSD: 1, Change24h: 0.05, Volume24h: 3500000000, Categories: []Category{CategoryStable}},
		{ID: "solana", Symbol: "SOL", Name: "Solana", Icon: "cryptocurrency-color:sol", PriceUSD: 150, Change24h: 5.2, Volume24h: 2500000000, Categories: []Category{CategoryTrending, CategoryHot}},
		{ID: "cardano", Symbol: "ADA", Name: "Cardano", Icon: "cryptocurrency-color:ada", PriceUSD: 0.45, Change24h: -0.8, Volume24h: 800000000, Categories: []Category{CategoryTrending}},
		{ID: "ripple", Symbol: "XRP", Name: "Ripple", Icon: "cryptocurrency-color:xrp", PriceUSD: 0.52, Change24h: 1.2, Volume24h: 1200000000, Categories: []Category{CategoryTrending}},
		{ID: "dogecoin", Symbol: "DOGE", Name: "Dogecoin", Icon: "cryptocurrency-color:doge", PriceUSD: 0.12, Change24h: -2.3, Volume24h: 900000000, Categories: []Category{CategoryHot}},
		{ID: "polkadot", Symbol: "DOT", Name: "Polkadot", Icon: "cryptocurrency-color:dot", PriceUSD: 6.80, Change24h: 3.1, Volume24h: 700000000, Categories: []Category{CategoryTrending}},
		{ID: "avalanche", Symbol: "AVAX", Name: "Avalanche", Icon: "cryptocurrency-color:avax", PriceUSD: 35.20, Change24h: 4.5, Volume24h: 950000000, Categories: []Category{CategoryHot}},
	}
}

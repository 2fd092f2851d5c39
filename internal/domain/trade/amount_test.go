package trade

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"tradesim/internal/domain/token"
)

var (
	usdTok = token.Token{ID: "usd", Symbol: "USD", PriceUSD: 1}
	btcTok = token.Token{ID: "bitcoin", Symbol: "BTC", PriceUSD: 60000}
	ethTok = token.Token{ID: "ethereum", Symbol: "ETH", PriceUSD: 3500}
)

func TestValidAmountText(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"", true},
		{"12", true},
		{"12.", true},
		{".5", true},
		{".", true},
		{"0007", true},
		{"1.2.3", false},
		{"-1", false},
		{"1e5", false},
		{"abc", false},
		{" 1", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ValidAmountText(tt.text); got != tt.want {
				t.Errorf("ValidAmountText(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{text: "100", want: "100", wantOK: true},
		{text: "5.", want: "5", wantOK: true},
		{text: ".5", want: "0.5", wantOK: true},
		{text: "007", want: "7", wantOK: true},
		{text: "0", want: "0", wantOK: true},
		{text: "", wantOK: false},
		{text: ".", wantOK: false},
		{text: "1..2", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseAmount(tt.text)
			if ok != tt.wantOK {
				t.Fatalf("ParseAmount(%q) ok = %v, want %v", tt.text, ok, tt.wantOK)
			}
			if ok && !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.text, got, tt.want)
			}
		})
	}
}

func TestAmountTo(t *testing.T) {
	tests := []struct {
		name       string
		amountFrom string
		from       token.Token
		to         token.Token
		want       string
	}{
		{name: "usd to btc", amountFrom: "100", from: usdTok, to: btcTok, want: "0.001667"},
		{name: "usd to eth", amountFrom: "100", from: usdTok, to: ethTok, want: "0.028571"},
		{name: "btc to eth", amountFrom: "1", from: btcTok, to: ethTok, want: "17.142857"},
		{name: "trailing point", amountFrom: "2.", from: ethTok, to: usdTok, want: "7000.000000"},
		{name: "zero amount", amountFrom: "0", from: usdTok, to: btcTok, want: "0.000000"},
		{name: "empty amount", amountFrom: "", from: usdTok, to: btcTok, want: ""},
		{name: "lone point", amountFrom: ".", from: usdTok, to: btcTok, want: ""},
		{name: "garbage", amountFrom: "abc", from: usdTok, to: btcTok, want: ""},
		{name: "identical tokens", amountFrom: "10", from: btcTok, to: btcTok, want: ""},
		{name: "unpriced target", amountFrom: "10", from: btcTok, to: token.Token{ID: "x"}, want: ""},
		{name: "NaN source price", amountFrom: "1", from: token.Token{ID: "x", PriceUSD: math.NaN()}, to: usdTok, want: ""},
		{name: "infinite source price", amountFrom: "1", from: token.Token{ID: "x", PriceUSD: math.Inf(1)}, to: usdTok, want: ""},
		{name: "infinite target price", amountFrom: "1", from: btcTok, to: token.Token{ID: "x", PriceUSD: math.Inf(1)}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AmountTo(tt.amountFrom, tt.from, tt.to); got != tt.want {
				t.Errorf("AmountTo(%q, %s, %s) = %q, want %q", tt.amountFrom, tt.from.Symbol, tt.to.Symbol, got, tt.want)
			}
		})
	}
}

func TestUSDValue(t *testing.T) {
	if got := USDValue("0.5", btcTok); !got.Equal(decimal.NewFromInt(30000)) {
		t.Errorf("USDValue(0.5 BTC) = %s, want 30000", got)
	}
	if got := USDValue("", btcTok); !got.IsZero() {
		t.Errorf("USDValue(empty) = %s, want 0", got)
	}
	for _, p := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := USDValue("3", token.Token{ID: "x", PriceUSD: p}); !got.IsZero() {
			t.Errorf("USDValue(price %v) = %s, want 0", p, got)
		}
	}
}

func TestButtonLabel(t *testing.T) {
	tests := []struct {
		usd  string
		want string
	}{
		{"0", "B🫡y IT"},
		{"0.5", "B🫠y IT"},
		{"1", "B🥲y IT"},
		{"99.99", "B😬y IT"},
		{"999", "B😎y IT"},
		{"24999", "B🤑y IT"},
		{"299999", "B🧨💸 IT"},
		{"300000", "D🤣 💰💰💰 IT"},
		{"999999", "D🤣 💰💰💰💰💰💰 IT"},
		{"1000000", "B🤩y 🚀 IT"},
		{"7000000", "B🤯y IT"},
		{"10000000", "B💎y IT"},
	}

	for _, tt := range tests {
		t.Run(tt.usd, func(t *testing.T) {
			if got := ButtonLabel(decimal.RequireFromString(tt.usd)); got != tt.want {
				t.Errorf("ButtonLabel(%s) = %q, want %q", tt.usd, got, tt.want)
			}
		})
	}
}

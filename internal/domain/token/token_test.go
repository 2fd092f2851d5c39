package token

import "testing"

func TestToken_IconName(t *testing.T) {
	tests := []struct {
		name  string
		token Token
		want  string
	}{
		{
			name:  "explicit iconify name wins",
			token: Token{Symbol: "BTC", Icon: "custom:btc"},
			want:  "custom:btc",
		},
		{
			name:  "remote icon url falls back to symbol map",
			token: Token{Symbol: "eth", Icon: "https://example.com/eth.png"},
			want:  "cryptocurrency-color:eth",
		},
		{
			name:  "fiat symbol",
			token: Token{Symbol: "EUR"},
			want:  "mdi:currency-eur",
		},
		{
			name:  "unknown symbol derives from ticker",
			token: Token{Symbol: "PEPE"},
			want:  "cryptocurrency-color:pepe",
		},
		{
			name:  "no symbol",
			token: Token{},
			want:  "mdi:currency-sign",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.token.IconName(); got != tt.want {
				t.Errorf("IconName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSeed(t *testing.T) {
	seed := Seed()
	if len(seed) != 11 {
		t.Fatalf("Seed() len = %d, want 11", len(seed))
	}
	if !seed[0].IsNumeraire() || seed[0].PriceUSD != 1 {
		t.Errorf("Seed()[0] = %+v, want numeraire priced at 1", seed[0])
	}

	seen := make(map[string]bool)
	for _, tok := range seed {
		if seen[tok.ID] {
			t.Errorf("duplicate seed id %q", tok.ID)
		}
		seen[tok.ID] = true
	}

	// callers get their own copy
	seed[1].Categories[0] = CategoryStable
	if Seed()[1].Categories[0] != CategoryTrending {
		t.Error("Seed() returned shared category storage")
	}
}

func TestToken_Clone(t *testing.T) {
	orig := Token{ID: "bitcoin", Categories: []Category{CategoryHot}}
	c := orig.Clone()
	c.Categories[0] = CategoryStable

	if orig.Categories[0] != CategoryHot {
		t.Error("Clone() shares category storage with the original")
	}
	if !c.HasCategory(CategoryStable) || c.HasCategory(CategoryHot) {
		t.Errorf("HasCategory() mismatch on clone: %+v", c.Categories)
	}
}

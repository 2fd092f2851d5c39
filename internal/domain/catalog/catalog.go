package catalog

import (
	"strings"

	"tradesim/internal/domain/price"
	"tradesim/internal/domain/token"
)

// Catalog is the ordered list of tradable tokens. Its order is the seed order and
// defines cycling order; a refresh never reorders it.
type Catalog []token.Token

// Merge overlays quotes onto the seed list by case-insensitive symbol. The numeraire
// and tokens without a usable quote keep their seed values. Quotes with a negative or
// non-finite price are ignored. Inputs are not modified.
func Merge(seed []token.Token, quotes []price.Quote) Catalog {
	bySymbol := make(map[string]price.Quote, len(quotes))
	for _, q := range quotes {
		key := strings.ToUpper(strings.TrimSpace(q.Symbol))
		if key == "" || !price.Finite(q.PriceUSD) || q.PriceUSD < 0 {
			continue
		}
		// first record per symbol wins
		if _, ok := bySymbol[key]; !ok {
			bySymbol[key] = q
		}
	}

	out := make(Catalog, 0, len(seed))
	for _, t := range seed {
		merged := t.Clone()
		if !t.IsNumeraire() {
			if q, ok := bySymbol[strings.ToUpper(t.Symbol)]; ok {
				merged.PriceUSD = q.PriceUSD
				merged.Change24h = price.FiniteOrZero(q.Change24h)
				merged.Volume24h = price.FiniteOrZero(q.Volume24h)
			}
		}
		out = append(out, merged)
	}

	return out
}

// IndexOf returns the position of the token with the given id, or -1.
func (c Catalog) IndexOf(id string) int {
	for i, t := range c {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (c Catalog) Find(id string) (token.Token, bool) {
	i := c.IndexOf(id)
	if i < 0 {
		return token.Token{}, false
	}
	return c[i], true
}

// Step moves one position from index in direction dir (sign only), wrapping around
// and skipping the entry whose id is skipID. It returns index unchanged when no other
// entry is selectable.
func (c Catalog) Step(index, dir int, skipID string) int {
	n := len(c)
	if n == 0 {
		return index
	}
	switch {
	case dir > 0:
		dir = 1
	case dir < 0:
		dir = -1
	default:
		return index
	}

	next := index
	for k := 0; k < n; k++ {
		next = ((next+dir)%n + n) % n
		if next == index {
			return index
		}
		if c[next].ID != skipID {
			return next
		}
	}
	return index
}

// Neighbors returns the previous and next selectable positions around index.
func (c Catalog) Neighbors(index int, skipID string) (prev, next int) {
	return c.Step(index, -1, skipID), c.Step(index, 1, skipID)
}

// IDs lists token ids in catalog order.
func (c Catalog) IDs() []string {
	ids := make([]string, len(c))
	for i, t := range c {
		ids[i] = t.ID
	}
	return ids
}

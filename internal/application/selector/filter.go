package selector

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"tradesim/internal/adapters/cache"
	"tradesim/internal/domain/catalog"
	"tradesim/internal/domain/token"
)

var ErrUnknownCategory = errors.New("unknown category")

type Category string

const (
	CategoryAll       Category = "all"
	CategoryFavorites Category = "favorites"
	CategoryTrending  Category = "trending"
	CategoryHot       Category = "hot"
	CategoryStable    Category = "stable"
)

// Categories lists the dialog tabs in display order.
var Categories = []Category{CategoryAll, CategoryFavorites, CategoryTrending, CategoryHot, CategoryStable}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Categories, c) {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
	return c, nil
}

// Filter returns the catalog entries whose name or symbol contains query (case
// insensitive) and that belong to category. isFavorite is consulted only for the
// favorites category and may be nil otherwise.
func Filter(cat catalog.Catalog, query string, category Category, isFavorite func(id string) bool) []token.Token {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]token.Token, 0, len(cat))
	for _, t := range cat {
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Name), q) &&
			!strings.Contains(strings.ToLower(t.Symbol), q) {
			continue
		}
		if !inCategory(t, category, isFavorite) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func inCategory(t token.Token, category Category, isFavorite func(id string) bool) bool {
	switch category {
	case CategoryAll, "":
		return true
	case CategoryFavorites:
		return isFavorite != nil && isFavorite(t.ID)
	case CategoryTrending:
		return t.HasCategory(token.CategoryTrending)
	case CategoryHot:
		return t.HasCategory(token.CategoryHot)
	case CategoryStable:
		return t.HasCategory(token.CategoryStable)
	default:
		return false
	}
}

// Favorites is the session-local set of favorite token ids.
type Favorites struct {
	set *cache.Cache[string, struct{}]
}

func NewFavorites() *Favorites {
	return &Favorites{set: cache.NewCache[string, struct{}](16)}
}

// Toggle flips membership of id and reports whether it is a favorite afterwards.
func (f *Favorites) Toggle(ctx context.Context, id string) bool {
	return f.set.Toggle(ctx, id, struct{}{})
}

func (f *Favorites) Has(ctx context.Context, id string) bool {
	_, ok := f.set.Get(ctx, id)
	return ok
}

// IDs returns the favorite ids in sorted order.
func (f *Favorites) IDs(ctx context.Context) []string {
	ids := f.set.Keys(ctx)
	slices.Sort(ids)
	return ids
}

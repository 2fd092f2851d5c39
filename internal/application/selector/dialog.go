package selector

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"tradesim/internal/adapters/logger"
	"tradesim/internal/application/swap"
	"tradesim/internal/domain/catalog"
	"tradesim/internal/domain/token"
)

var ErrDialogClosed = errors.New("token selector is closed")

// CatalogSource supplies the catalog the dialog lists.
type CatalogSource interface {
	Catalog() catalog.Catalog
}

// Target receives the dialog's choice.
type Target interface {
	Select(side swap.Side, id string) error
}

// State is what the dialog currently shows.
type State struct {
	Open     bool
	Side     swap.Side
	Query    string
	Category Category
}

// Dialog is the token picker opened from one side of the swap widget.
type Dialog struct {
	mu sync.Mutex

	source    CatalogSource
	target    Target
	favorites *Favorites
	logger    *logger.Logger

	open     bool
	side     swap.Side
	query    string
	category Category
}

func NewDialog(source CatalogSource, target Target, favorites *Favorites, log *logger.Logger) *Dialog {
	if favorites == nil {
		favorites = NewFavorites()
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Dialog{
		source:    source,
		target:    target,
		favorites: favorites,
		logger:    log.Named("selector"),
		category:  CategoryAll,
	}
}

// Open shows the dialog for side with an empty search on the all tab.
func (d *Dialog) Open(side swap.Side) error {
	if _, err := swap.ParseSide(string(side)); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.open = true
	d.side = side
	d.query = ""
	d.category = CategoryAll
	return nil
}

func (d *Dialog) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = false
}

func (d *Dialog) SetQuery(query string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.query = query
}

func (d *Dialog) SetCategory(category Category) error {
	c, err := ParseCategory(string(category))
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.category = c
	return nil
}

func (d *Dialog) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return State{Open: d.open, Side: d.side, Query: d.query, Category: d.category}
}

// Results lists the tokens matching the current query and tab.
func (d *Dialog) Results(ctx context.Context) []token.Token {
	d.mu.Lock()
	query, category := d.query, d.category
	d.mu.Unlock()

	return Filter(d.source.Catalog(), query, category, func(id string) bool {
		return d.favorites.Has(ctx, id)
	})
}

// ToggleFavorite flips the favorite mark of a catalog token.
func (d *Dialog) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	if d.source.Catalog().IndexOf(id) < 0 {
		return false, fmt.Errorf("%w: %q", swap.ErrUnknownToken, id)
	}
	return d.favorites.Toggle(ctx, id), nil
}

func (d *Dialog) Favorites() *Favorites {
	return d.favorites
}

// Select hands id to the target for the side the dialog was opened for and closes
// the dialog. The dialog stays open when the target rejects the choice.
func (d *Dialog) Select(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return ErrDialogClosed
	}
	if err := d.target.Select(d.side, id); err != nil {
		return err
	}

	d.logger.Debug("token picked", zap.String("side", string(d.side)), zap.String("token", id))
	d.open = false
	return nil
}

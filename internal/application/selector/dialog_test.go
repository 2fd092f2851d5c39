package selector

import (
	"context"
	"errors"
	"slices"
	"testing"

	"tradesim/internal/application/swap"
	"tradesim/internal/domain/catalog"
)

type staticSource struct {
	cat catalog.Catalog
}

func (s staticSource) Catalog() catalog.Catalog { return s.cat }

type recordingTarget struct {
	calls []string
	err   error
}

func (r *recordingTarget) Select(side swap.Side, id string) error {
	r.calls = append(r.calls, string(side)+":"+id)
	return r.err
}

func TestDialog_OpenResetsSearch(t *testing.T) {
	d := NewDialog(staticSource{seedCatalog()}, &recordingTarget{}, nil, nil)

	if err := d.Open(swap.SideTo); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	d.SetQuery("btc")
	if err := d.SetCategory(CategoryHot); err != nil {
		t.Fatalf("SetCategory() error = %v", err)
	}
	d.Close()

	if err := d.Open(swap.SideFrom); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	want := State{Open: true, Side: swap.SideFrom, Query: "", Category: CategoryAll}
	if got := d.State(); got != want {
		t.Errorf("State() = %+v, want %+v", got, want)
	}

	if err := d.Open(swap.Side("left")); !errors.Is(err, swap.ErrUnknownSide) {
		t.Errorf("Open(left) error = %v, want ErrUnknownSide", err)
	}
}

func TestDialog_SetCategory(t *testing.T) {
	d := NewDialog(staticSource{seedCatalog()}, &recordingTarget{}, nil, nil)
	_ = d.Open(swap.SideFrom)

	if err := d.SetCategory(Category("nfts")); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("SetCategory(nfts) error = %v, want ErrUnknownCategory", err)
	}
	if got := d.State().Category; got != CategoryAll {
		t.Errorf("category after rejected change = %q, want all", got)
	}
}

func TestDialog_ResultsAndFavorites(t *testing.T) {
	ctx := context.Background()
	d := NewDialog(staticSource{seedCatalog()}, &recordingTarget{}, NewFavorites(), nil)
	_ = d.Open(swap.SideFrom)

	d.SetQuery("o")
	before := ids(d.Results(ctx))

	if on, err := d.ToggleFavorite(ctx, "polkadot"); err != nil || !on {
		t.Fatalf("ToggleFavorite(polkadot) = %v, %v", on, err)
	}
	if _, err := d.ToggleFavorite(ctx, "nope"); !errors.Is(err, swap.ErrUnknownToken) {
		t.Errorf("ToggleFavorite(nope) error = %v, want ErrUnknownToken", err)
	}

	// favorites do not change the other tabs
	if after := ids(d.Results(ctx)); !slices.Equal(before, after) {
		t.Errorf("results changed on the all tab: %v -> %v", before, after)
	}

	_ = d.SetCategory(CategoryFavorites)
	if got := ids(d.Results(ctx)); !slices.Equal(got, []string{"polkadot"}) {
		t.Errorf("favorites results = %v, want [polkadot]", got)
	}

	if on, _ := d.ToggleFavorite(ctx, "polkadot"); on {
		t.Error("second ToggleFavorite should remove")
	}
	if got := d.Results(ctx); len(got) != 0 {
		t.Errorf("favorites results after removal = %v", ids(got))
	}
}

func TestDialog_Select(t *testing.T) {
	tests := []struct {
		name      string
		open      bool
		targetErr error
		wantErr   error
		wantCalls int
		wantOpen  bool
	}{
		{name: "closed dialog", open: false, wantErr: ErrDialogClosed, wantCalls: 0, wantOpen: false},
		{name: "selection closes dialog", open: true, wantCalls: 1, wantOpen: false},
		{name: "rejected selection keeps dialog open", open: true, targetErr: swap.ErrUnknownToken, wantErr: swap.ErrUnknownToken, wantCalls: 1, wantOpen: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := &recordingTarget{err: tt.targetErr}
			d := NewDialog(staticSource{seedCatalog()}, target, nil, nil)
			if tt.open {
				_ = d.Open(swap.SideTo)
			}

			err := d.Select("cardano")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Select() error = %v, want %v", err, tt.wantErr)
			}
			if len(target.calls) != tt.wantCalls {
				t.Errorf("target calls = %v, want %d", target.calls, tt.wantCalls)
			}
			if tt.wantCalls > 0 && target.calls[0] != "to:cardano" {
				t.Errorf("target call = %q, want to:cardano", target.calls[0])
			}
			if got := d.State().Open; got != tt.wantOpen {
				t.Errorf("Open = %v, want %v", got, tt.wantOpen)
			}
		})
	}
}

func TestDialog_SelectDrivesController(t *testing.T) {
	ctrl, err := swap.NewController(seedCatalog(), nil, swap.Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer ctrl.Dispose()

	d := NewDialog(ctrl, ctrl, nil, nil)
	_ = d.Open(swap.SideTo)
	if err := d.Select("usd"); err != nil {
		t.Fatalf("Select(usd) error = %v", err)
	}

	v := ctrl.View()
	if v.To.ID != "usd" || v.From.ID != "bitcoin" {
		t.Errorf("selection = %s/%s, want bitcoin/usd", v.From.ID, v.To.ID)
	}
}

package http

import (
	"context"
	"math/big"

	"tradesim/internal/application/feed"
	"tradesim/internal/application/selector"
	"tradesim/internal/application/swap"
	"tradesim/internal/domain/token"
	"tradesim/internal/domain/wallet"
)

func ToHTTPToken(t token.Token) Token {
	categories := make([]string, len(t.Categories))
	for i, c := range t.Categories {
		categories[i] = string(c)
	}
	return Token{
		ID:         t.ID,
		Symbol:     t.Symbol,
		Name:       t.Name,
		Icon:       t.IconName(),
		PriceUSD:   t.PriceUSD,
		Change24h:  t.Change24h,
		Volume24h:  t.Volume24h,
		Categories: categories,
		Numeraire:  t.IsNumeraire(),
	}
}

func ToHTTPTokens(tokens []token.Token) []Token {
	result := make([]Token, len(tokens))
	for i, t := range tokens {
		result[i] = ToHTTPToken(t)
	}
	return result
}

func ToHTTPFeed(s feed.Snapshot) Feed {
	out := Feed{
		Loading: s.Loading,
		Source:  s.Source,
		Tokens:  ToHTTPTokens(s.Catalog),
	}
	if s.Err != nil {
		out.Error = s.Err.Error()
	}
	if !s.UpdatedAt.IsZero() {
		at := s.UpdatedAt
		out.UpdatedAt = &at
	}
	return out
}

func ToHTTPReceipt(r swap.Receipt) Receipt {
	return Receipt{
		ID:         r.ID,
		AmountFrom: r.AmountFrom,
		AmountTo:   r.AmountTo,
		FromSymbol: r.FromSymbol,
		ToSymbol:   r.ToSymbol,
		USDValue:   r.USDValue.StringFixed(2),
		At:         r.At,
	}
}

func ToHTTPSwap(v swap.View) Swap {
	out := Swap{
		State:           string(v.State),
		From:            ToHTTPToken(v.From),
		To:              ToHTTPToken(v.To),
		AmountFrom:      v.AmountFrom,
		AmountTo:        v.AmountTo,
		USDValue:        v.USDValue.StringFixed(2),
		ButtonLabel:     v.ButtonLabel,
		WalletConnected: v.WalletConnected,
	}
	if v.Receipt != nil {
		r := ToHTTPReceipt(*v.Receipt)
		out.Receipt = &r
	}
	return out
}

func ToHTTPPreview(p swap.Preview) Preview {
	return Preview{
		Previous: ToHTTPToken(p.Previous),
		Current:  ToHTTPToken(p.Current),
		Next:     ToHTTPToken(p.Next),
	}
}

func ToHTTPSelector(ctx context.Context, d SelectorDialog) Selector {
	state := d.State()

	categories := make([]string, len(selector.Categories))
	for i, c := range selector.Categories {
		categories[i] = string(c)
	}

	return Selector{
		Open:       state.Open,
		Side:       string(state.Side),
		Query:      state.Query,
		Category:   string(state.Category),
		Categories: categories,
		Favorites:  d.Favorites().IDs(ctx),
		Results:    ToHTTPTokens(d.Results(ctx)),
	}
}

// ToHTTPWallet reports the network the simulator expects, connected or not.
func ToHTTPWallet(connected bool, address string, chainID *big.Int) Wallet {
	out := Wallet{}
	if chainID != nil {
		out.ChainID = chainID.Int64()
	}
	if !connected {
		return out
	}
	out.Connected = true
	out.Address = address
	out.ShortAddress = wallet.ShortAddress(address)
	return out
}

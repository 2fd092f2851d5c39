package http

import "time"

type Token struct {
	ID         string   `json:"id"`
	Symbol     string   `json:"symbol"`
	Name       string   `json:"name"`
	Icon       string   `json:"icon"`
	PriceUSD   float64  `json:"price_usd"`
	Change24h  float64  `json:"change_24h"`
	Volume24h  float64  `json:"volume_24h"`
	Categories []string `json:"categories"`
	Numeraire  bool     `json:"numeraire,omitempty"`
}

type Feed struct {
	Loading   bool       `json:"loading"`
	Error     string     `json:"error,omitempty"`
	Source    string     `json:"source,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Tokens    []Token    `json:"tokens"`
}

type Receipt struct {
	ID         string    `json:"id"`
	AmountFrom string    `json:"amount_from"`
	AmountTo   string    `json:"amount_to"`
	FromSymbol string    `json:"from_symbol"`
	ToSymbol   string    `json:"to_symbol"`
	USDValue   string    `json:"usd_value"`
	At         time.Time `json:"at"`
}

type Swap struct {
	State           string   `json:"state"`
	From            Token    `json:"from"`
	To              Token    `json:"to"`
	AmountFrom      string   `json:"amount_from"`
	AmountTo        string   `json:"amount_to"`
	USDValue        string   `json:"usd_value"`
	ButtonLabel     string   `json:"button_label"`
	WalletConnected bool     `json:"wallet_connected"`
	Receipt         *Receipt `json:"receipt,omitempty"`
}

type Preview struct {
	Previous Token `json:"previous"`
	Current  Token `json:"current"`
	Next     Token `json:"next"`
}

type Selector struct {
	Open       bool     `json:"open"`
	Side       string   `json:"side,omitempty"`
	Query      string   `json:"query"`
	Category   string   `json:"category"`
	Categories []string `json:"categories"`
	Favorites  []string `json:"favorites"`
	Results    []Token  `json:"results"`
}

type Wallet struct {
	Connected    bool   `json:"connected"`
	ChainID      int64  `json:"chain_id"`
	Address      string `json:"address,omitempty"`
	ShortAddress string `json:"short_address,omitempty"`
}

type Onboarding struct {
	Seen bool `json:"seen"`
}

type AmountRequest struct {
	Amount string `json:"amount"`
}

type SelectRequest struct {
	TokenID string `json:"token_id"`
}

// CycleRequest carries exactly one of a direction, a wheel delta or a swipe.
type CycleRequest struct {
	Direction int      `json:"direction"`
	DeltaY    *float64 `json:"delta_y,omitempty"`
	Swipe     string   `json:"swipe,omitempty"`
}

type CycleResponse struct {
	Moved bool `json:"moved"`
	Swap  Swap `json:"swap"`
}

type QueryRequest struct {
	Query string `json:"query"`
}

type CategoryRequest struct {
	Category string `json:"category"`
}

type ConfirmResponse struct {
	Receipt Receipt `json:"receipt"`
	Swap    Swap    `json:"swap"`
}

type FavoriteResponse struct {
	TokenID  string `json:"token_id"`
	Favorite bool   `json:"favorite"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

package wallet

import (
	"context"
	"errors"
	"math/big"
)

var (
	ErrProviderMissing = errors.New("no wallet provider is installed")
	ErrWrongNetwork    = errors.New("wallet is on the wrong network")
	ErrNoAccounts      = errors.New("wallet returned no accounts")
	ErrInvalidAddress  = errors.New("wallet returned an invalid address")
)

// MainnetChainID is the only network the simulator accepts connections on.
var MainnetChainID = big.NewInt(1)

// Capability is the read-only view the swap controller needs.
type Capability interface {
	IsConnected() bool
}

// Connector talks to a browser-extension style wallet provider.
type Connector interface {
	ChainID(ctx context.Context) (*big.Int, error)
	RequestAccounts(ctx context.Context) ([]string, error)
}

// SessionStore persists the connected address between runs.
type SessionStore interface {
	LoadWallet(ctx context.Context) (string, error)
	SaveWallet(ctx context.Context, address string) error
	ClearWallet(ctx context.Context) error
}

// ShortAddress renders an address as 0x1234...abcd.
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}

package ethwallet

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// JSON-RPC "method not found"
const codeMethodNotFound = -32601

// Connector reads the network and accounts of an EVM wallet over JSON-RPC.
type Connector struct {
	rpc    *rpc.Client
	client *ethclient.Client
}

func Dial(ctx context.Context, rawURL string) (*Connector, error) {
	if rawURL == "" {
		return nil, errors.New("wallet RPC URL is empty")
	}

	rpcClient, err := rpc.DialContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC endpoint: %w", err)
	}

	return &Connector{rpc: rpcClient, client: ethclient.NewClient(rpcClient)}, nil
}

func (c *Connector) ChainID(ctx context.Context) (*big.Int, error) {
	return c.client.ChainID(ctx)
}

// RequestAccounts asks for account access. Plain nodes do not implement
// eth_requestAccounts, so eth_accounts is used when the method is missing.
func (c *Connector) RequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	err := c.rpc.CallContext(ctx, &accounts, "eth_requestAccounts")
	if err == nil {
		return accounts, nil
	}

	var rpcErr rpc.Error
	if !errors.As(err, &rpcErr) || rpcErr.ErrorCode() != codeMethodNotFound {
		return nil, err
	}

	accounts = nil
	if err := c.rpc.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *Connector) Close() {
	c.rpc.Close()
}

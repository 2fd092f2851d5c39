package wallet

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"tradesim/internal/adapters/logger"
	domainWallet "tradesim/internal/domain/wallet"
)

// Service holds the wallet session. The swap controller only reads IsConnected.
type Service struct {
	mu        sync.RWMutex
	connector domainWallet.Connector
	store     domainWallet.SessionStore
	chainID   *big.Int
	address   string
	logger    *logger.Logger
}

// NewService builds a session manager. A nil connector behaves like a browser without
// a wallet extension; a nil store keeps the session in memory only.
func NewService(connector domainWallet.Connector, store domainWallet.SessionStore, chainID *big.Int, log *logger.Logger) *Service {
	if chainID == nil {
		chainID = domainWallet.MainnetChainID
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Service{
		connector: connector,
		store:     store,
		chainID:   new(big.Int).Set(chainID),
		logger:    log.Named("wallet"),
	}
}

// Connect asks the provider for its network and accounts and keeps the first account.
func (s *Service) Connect(ctx context.Context) (string, error) {
	if s.connector == nil {
		return "", domainWallet.ErrProviderMissing
	}

	chainID, err := s.connector.ChainID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read chain id: %w", err)
	}
	if chainID == nil || chainID.Cmp(s.chainID) != 0 {
		return "", fmt.Errorf("%w: got chain %v, want %s", domainWallet.ErrWrongNetwork, chainID, s.chainID)
	}

	accounts, err := s.connector.RequestAccounts(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to request accounts: %w", err)
	}
	if len(accounts) == 0 {
		return "", domainWallet.ErrNoAccounts
	}
	if !common.IsHexAddress(accounts[0]) {
		return "", fmt.Errorf("%w: %q", domainWallet.ErrInvalidAddress, accounts[0])
	}
	address := common.HexToAddress(accounts[0]).Hex()

	s.mu.Lock()
	s.address = address
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.SaveWallet(ctx, address); err != nil {
			s.logger.Warn("failed to persist wallet session", zap.Error(err))
		}
	}

	s.logger.Info("wallet connected", zap.String("address", domainWallet.ShortAddress(address)))
	return address, nil
}

// Disconnect forgets the session, including its persisted copy.
func (s *Service) Disconnect(ctx context.Context) error {
	s.mu.Lock()
	s.address = ""
	s.mu.Unlock()

	if s.store != nil {
		if err := s.store.ClearWallet(ctx); err != nil {
			return fmt.Errorf("failed to clear wallet session: %w", err)
		}
	}

	s.logger.Info("wallet disconnected")
	return nil
}

// Restore loads a persisted session. A stored value that is not an address is dropped.
func (s *Service) Restore(ctx context.Context) (string, error) {
	if s.store == nil {
		return "", nil
	}

	stored, err := s.store.LoadWallet(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load wallet session: %w", err)
	}
	if stored == "" {
		return "", nil
	}
	if !common.IsHexAddress(stored) {
		s.logger.Warn("dropping invalid stored wallet address")
		if err := s.store.ClearWallet(ctx); err != nil {
			return "", fmt.Errorf("failed to clear wallet session: %w", err)
		}
		return "", nil
	}

	address := common.HexToAddress(stored).Hex()
	s.mu.Lock()
	s.address = address
	s.mu.Unlock()
	return address, nil
}

func (s *Service) IsConnected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.address != ""
}

func (s *Service) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.address
}

func (s *Service) ChainID() *big.Int {
	return new(big.Int).Set(s.chainID)
}
